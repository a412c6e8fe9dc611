// Package repository handles all interactions with the database.
//
// It contains the raw SQL and one typed method per entity per
// operation, abstracting query logic away from the sync and handler
// layers. All statements are parameterized; optional filters are
// assembled through a small predicate builder, never by concatenating
// values into SQL text.
package repository

import (
	"context"

	"github.com/kumarvvr/salesnisha-server/internal/database"

	"github.com/rs/zerolog"
)

// Repositories is the container for all repository instances. It is
// constructed once at process start and passed by reference to every
// consumer; there is no package-level instance.
type Repositories struct {
	Items      *ItemRepository
	Locations  *LocationRepository
	SaleEvents *SaleEventRepository

	db *database.Database
}

// NewRepositories constructs the repository container on top of the
// shared connection pool.
func NewRepositories(db *database.Database, log zerolog.Logger) *Repositories {
	return &Repositories{
		Items:      &ItemRepository{db: db, log: log.With().Str("repo", "items").Logger()},
		Locations:  &LocationRepository{db: db, log: log.With().Str("repo", "locations").Logger()},
		SaleEvents: &SaleEventRepository{db: db, log: log.With().Str("repo", "sale_events").Logger()},
		db:         db,
	}
}

// HealthCheck executes a trivial round-trip query and reports the
// outcome as a boolean. Faults are swallowed here: this is the one
// repository operation that never propagates a store error.
func (r *Repositories) HealthCheck(ctx context.Context) bool {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return false
	}
	var one int
	if err := pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return false
	}
	return one == 1
}
