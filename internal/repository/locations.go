package repository

import (
	"context"

	"github.com/kumarvvr/salesnisha-server/internal/database"
	"github.com/kumarvvr/salesnisha-server/internal/model"
	"github.com/kumarvvr/salesnisha-server/internal/sqlerr"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const locationColumns = `locid, name, description, address, contact, latitude, longitude,
	storecategory, locationcategory, storecategorynote, locationcategorynote,
	created_at, updated_at`

// LocationRepository provides typed queries over the locations relation.
type LocationRepository struct {
	db  *database.Database
	log zerolog.Logger
}

// GetByID returns the location or a not-found error.
func (r *LocationRepository) GetByID(ctx context.Context, locID string) (*model.Location, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	rows, err := pool.Query(ctx,
		"SELECT "+locationColumns+" FROM locations WHERE locid = $1", locID)
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	loc, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Location])
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	return &loc, nil
}

// List returns locations ordered by locid ascending with limit/offset
// pagination.
func (r *LocationRepository) List(ctx context.Context, limit, offset int) ([]model.Location, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	rows, err := pool.Query(ctx,
		"SELECT "+locationColumns+" FROM locations ORDER BY locid LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	locs, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Location])
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	return locs, nil
}

// Insert creates a new location and returns the materialized row.
func (r *LocationRepository) Insert(ctx context.Context, loc model.Location) (*model.Location, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	rows, err := pool.Query(ctx, `
		INSERT INTO locations (locid, name, description, address, contact, latitude, longitude,
			storecategory, locationcategory, storecategorynote, locationcategorynote)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+locationColumns,
		loc.LocID, loc.Name, loc.Description, loc.Address, loc.Contact,
		loc.Latitude, loc.Longitude, loc.StoreCategory, loc.LocationCategory,
		loc.StoreCategoryNote, loc.LocationCategoryNote)
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	inserted, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Location])
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	return &inserted, nil
}

// Update overwrites the mutable fields of an existing location and
// refreshes updated_at; a missing key is reported as not-found.
func (r *LocationRepository) Update(ctx context.Context, loc model.Location) (*model.Location, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	rows, err := pool.Query(ctx, `
		UPDATE locations
		SET name = $1, description = $2, address = $3, contact = $4,
		    latitude = $5, longitude = $6, storecategory = $7, locationcategory = $8,
		    storecategorynote = $9, locationcategorynote = $10, updated_at = now()
		WHERE locid = $11
		RETURNING `+locationColumns,
		loc.Name, loc.Description, loc.Address, loc.Contact,
		loc.Latitude, loc.Longitude, loc.StoreCategory, loc.LocationCategory,
		loc.StoreCategoryNote, loc.LocationCategoryNote, loc.LocID)
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Location])
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	return &updated, nil
}

// Upsert inserts the location or, on conflict with an existing locid,
// overwrites every mutable field wholesale. created_at survives from the
// original row; updated_at is refreshed.
func (r *LocationRepository) Upsert(ctx context.Context, loc model.Location) (*model.Location, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	rows, err := pool.Query(ctx, `
		INSERT INTO locations (locid, name, description, address, contact, latitude, longitude,
			storecategory, locationcategory, storecategorynote, locationcategorynote)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (locid) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    address = EXCLUDED.address,
		    contact = EXCLUDED.contact,
		    latitude = EXCLUDED.latitude,
		    longitude = EXCLUDED.longitude,
		    storecategory = EXCLUDED.storecategory,
		    locationcategory = EXCLUDED.locationcategory,
		    storecategorynote = EXCLUDED.storecategorynote,
		    locationcategorynote = EXCLUDED.locationcategorynote,
		    updated_at = now()
		RETURNING `+locationColumns,
		loc.LocID, loc.Name, loc.Description, loc.Address, loc.Contact,
		loc.Latitude, loc.Longitude, loc.StoreCategory, loc.LocationCategory,
		loc.StoreCategoryNote, loc.LocationCategoryNote)
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	upserted, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Location])
	if err != nil {
		return nil, sqlerr.Handle(err, "location")
	}
	return &upserted, nil
}

// Delete removes the location and reports whether exactly one row went
// away.
func (r *LocationRepository) Delete(ctx context.Context, locID string) (bool, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return false, sqlerr.Handle(err, "location")
	}
	tag, err := pool.Exec(ctx, "DELETE FROM locations WHERE locid = $1", locID)
	if err != nil {
		return false, sqlerr.Handle(err, "location")
	}
	return tag.RowsAffected() == 1, nil
}
