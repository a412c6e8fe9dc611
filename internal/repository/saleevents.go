package repository

import (
	"context"

	"github.com/kumarvvr/salesnisha-server/internal/database"
	"github.com/kumarvvr/salesnisha-server/internal/model"
	"github.com/kumarvvr/salesnisha-server/internal/sqlerr"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const saleEventColumns = `id, locid, itemid, saleqty, year, month, day, hour, minute, second,
	event_timezone, created_at`

// saleEventInsertColumns is the column set callers supply; id and
// created_at are server-assigned.
var saleEventInsertColumns = []string{
	"locid", "itemid", "saleqty",
	"year", "month", "day", "hour", "minute", "second",
	"event_timezone",
}

// SaleEventRepository provides typed queries over the append-only
// sale_events relation. Events are inserted singly or in bulk and are
// never updated or deleted.
type SaleEventRepository struct {
	db  *database.Database
	log zerolog.Logger
}

// SaleEventFilter restricts sale-event queries by equality on the soft
// foreign keys. Zero values mean "no restriction".
type SaleEventFilter struct {
	LocID  string
	ItemID string
}

// GetByID returns the sale event or a not-found error.
func (r *SaleEventRepository) GetByID(ctx context.Context, id int64) (*model.SaleEvent, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "sale event")
	}
	rows, err := pool.Query(ctx,
		"SELECT "+saleEventColumns+" FROM sale_events WHERE id = $1", id)
	if err != nil {
		return nil, sqlerr.Handle(err, "sale event")
	}
	ev, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.SaleEvent])
	if err != nil {
		return nil, sqlerr.Handle(err, "sale event")
	}
	return &ev, nil
}

// List returns sale events, optionally filtered by location and item,
// ordered by id descending (newest first) with limit/offset pagination.
func (r *SaleEventRepository) List(ctx context.Context, filter SaleEventFilter, limit, offset int) ([]model.SaleEvent, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "sale event")
	}

	p := &predicates{}
	if filter.LocID != "" {
		p.and("locid = $%d", filter.LocID)
	}
	if filter.ItemID != "" {
		p.and("itemid = $%d", filter.ItemID)
	}
	sql := "SELECT " + saleEventColumns + " FROM sale_events" + p.where() +
		" ORDER BY id DESC LIMIT " + p.bind(limit) + " OFFSET " + p.bind(offset)

	rows, err := pool.Query(ctx, sql, p.args...)
	if err != nil {
		return nil, sqlerr.Handle(err, "sale event")
	}
	events, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.SaleEvent])
	if err != nil {
		return nil, sqlerr.Handle(err, "sale event")
	}
	return events, nil
}

// Insert records a single sale event and returns the materialized row
// with its server-assigned id and created_at.
func (r *SaleEventRepository) Insert(ctx context.Context, ev model.SaleEvent) (*model.SaleEvent, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "sale event")
	}
	rows, err := pool.Query(ctx, `
		INSERT INTO sale_events (locid, itemid, saleqty, year, month, day, hour, minute, second, event_timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+saleEventColumns,
		ev.LocID, ev.ItemID, ev.SaleQty,
		ev.Year, ev.Month, ev.Day, ev.Hour, ev.Minute, ev.Second,
		ev.EventTimezone)
	if err != nil {
		return nil, sqlerr.Handle(err, "sale event")
	}
	inserted, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.SaleEvent])
	if err != nil {
		return nil, sqlerr.Handle(err, "sale event")
	}
	return &inserted, nil
}

// BulkInsert records events as one atomic batch: the whole set commits
// or none of it does. The copy runs inside an explicit transaction, so a
// single bad tuple rolls back every row. Returns the number of rows
// submitted.
func (r *SaleEventRepository) BulkInsert(ctx context.Context, events []model.SaleEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return 0, sqlerr.Handle(err, "sale event")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, sqlerr.Handle(err, "sale event")
	}
	defer tx.Rollback(ctx)

	count, err := tx.CopyFrom(ctx,
		pgx.Identifier{"sale_events"},
		saleEventInsertColumns,
		pgx.CopyFromSlice(len(events), func(i int) ([]any, error) {
			ev := events[i]
			return []any{
				ev.LocID, ev.ItemID, ev.SaleQty,
				ev.Year, ev.Month, ev.Day, ev.Hour, ev.Minute, ev.Second,
				ev.EventTimezone,
			}, nil
		}))
	if err != nil {
		return 0, sqlerr.Handle(err, "sale event")
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, sqlerr.Handle(err, "sale event")
	}
	return count, nil
}

// RangeByDate returns all events whose decomposed date falls within the
// inclusive [start, end] range, optionally restricted by filter.
//
// There is no composite date column, so each bound is a three-level
// lexicographic comparison on (year, month, day) expressed as the OR of
// progressively coarser equality checks. Results are ordered ascending
// by (year, month, day, hour, minute, second).
func (r *SaleEventRepository) RangeByDate(ctx context.Context, start, end model.Date, filter SaleEventFilter) ([]model.SaleEvent, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Handle(err, "sale event")
	}

	p := &predicates{}
	p.and("(year > $%d OR (year = $%d AND month > $%d) OR (year = $%d AND month = $%d AND day >= $%d))",
		start.Year, start.Year, start.Month, start.Year, start.Month, start.Day)
	p.and("(year < $%d OR (year = $%d AND month < $%d) OR (year = $%d AND month = $%d AND day <= $%d))",
		end.Year, end.Year, end.Month, end.Year, end.Month, end.Day)
	if filter.LocID != "" {
		p.and("locid = $%d", filter.LocID)
	}
	if filter.ItemID != "" {
		p.and("itemid = $%d", filter.ItemID)
	}

	sql := "SELECT " + saleEventColumns + " FROM sale_events" + p.where() +
		" ORDER BY year, month, day, hour, minute, second"

	rows, err := pool.Query(ctx, sql, p.args...)
	if err != nil {
		return nil, sqlerr.Handle(err, "sale event")
	}
	events, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.SaleEvent])
	if err != nil {
		return nil, sqlerr.Handle(err, "sale event")
	}
	return events, nil
}
