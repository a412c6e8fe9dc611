package repository

import (
	"context"

	"github.com/kumarvvr/salesnisha-server/internal/database"
	"github.com/kumarvvr/salesnisha-server/internal/model"
	"github.com/kumarvvr/salesnisha-server/internal/sqlerr"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const itemColumns = "itemid, name, description, unitofsale, created_at, updated_at"

// ItemRepository provides typed queries over the item relation.
type ItemRepository struct {
	db  *database.Database
	log zerolog.Logger
}

// GetByID returns the item or a not-found error; absence is a normal
// outcome, reported as errs.NotFound rather than a driver error.
func (r *ItemRepository) GetByID(ctx context.Context, itemID string) (*model.Item, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	rows, err := pool.Query(ctx,
		"SELECT "+itemColumns+" FROM item WHERE itemid = $1", itemID)
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	return &item, nil
}

// List returns items ordered by itemid ascending. Deterministic ordering
// keeps limit/offset pagination consistent between calls.
func (r *ItemRepository) List(ctx context.Context, limit, offset int) ([]model.Item, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	rows, err := pool.Query(ctx,
		"SELECT "+itemColumns+" FROM item ORDER BY itemid LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	return items, nil
}

// Insert creates a new item and returns the materialized row, including
// the server-assigned timestamps. Inserting an existing itemid yields a
// duplicate-key error.
func (r *ItemRepository) Insert(ctx context.Context, item model.Item) (*model.Item, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	rows, err := pool.Query(ctx, `
		INSERT INTO item (itemid, name, description, unitofsale)
		VALUES ($1, $2, $3, $4)
		RETURNING `+itemColumns,
		item.ItemID, item.Name, item.Description, item.UnitOfSale)
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	inserted, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	return &inserted, nil
}

// Update overwrites the mutable fields of an existing item and refreshes
// updated_at. A missing key is reported as not-found, not as an insert.
func (r *ItemRepository) Update(ctx context.Context, item model.Item) (*model.Item, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	rows, err := pool.Query(ctx, `
		UPDATE item
		SET name = $1, description = $2, unitofsale = $3, updated_at = now()
		WHERE itemid = $4
		RETURNING `+itemColumns,
		item.Name, item.Description, item.UnitOfSale, item.ItemID)
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	return &updated, nil
}

// Upsert inserts the item or, on a primary-key conflict, overwrites all
// mutable fields. created_at is preserved from the original row;
// updated_at is refreshed.
func (r *ItemRepository) Upsert(ctx context.Context, item model.Item) (*model.Item, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	rows, err := pool.Query(ctx, `
		INSERT INTO item (itemid, name, description, unitofsale)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (itemid) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    unitofsale = EXCLUDED.unitofsale,
		    updated_at = now()
		RETURNING `+itemColumns,
		item.ItemID, item.Name, item.Description, item.UnitOfSale)
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	upserted, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return nil, sqlerr.Handle(err, "item")
	}
	return &upserted, nil
}

// Delete removes the item and reports whether exactly one row went away.
func (r *ItemRepository) Delete(ctx context.Context, itemID string) (bool, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return false, sqlerr.Handle(err, "item")
	}
	tag, err := pool.Exec(ctx, "DELETE FROM item WHERE itemid = $1", itemID)
	if err != nil {
		return false, sqlerr.Handle(err, "item")
	}
	return tag.RowsAffected() == 1, nil
}
