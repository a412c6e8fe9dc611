// Package database owns the PostgreSQL connection pool.
//
// It handles:
//   - building a pool config from the application config
//   - lazily opening a bounded pgx pool (min/max connections)
//   - wiring SQL statement tracing (pgx tracelog over zerolog)
//   - idempotent open/teardown
//
// Rows are always consumed by column name at the call sites (see the
// repository package), so callers receive self-describing records.
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kumarvvr/salesnisha-server/internal/config"
	"github.com/kumarvvr/salesnisha-server/internal/logger"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// PingTimeout bounds the startup connectivity probe.
const PingTimeout = 10 * time.Second

// Database wraps the pgx connection pool and a logger.
//
// The pool is opened lazily: construction performs no I/O, and the first
// Connect (or any accessor that needs the pool) opens it. Connect and
// Close are both idempotent, guarded by a mutex so concurrent callers
// cannot race the open.
type Database struct {
	cfg *config.Config
	log zerolog.Logger

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// New prepares a Database from config. No connection is made here.
func New(cfg *config.Config, log zerolog.Logger) *Database {
	return &Database{cfg: cfg, log: log}
}

// Connect opens the connection pool sized [pool_min_size, pool_max_size].
// Calling it when the pool is already open is a no-op.
func (db *Database) Connect(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.connectLocked(ctx)
}

func (db *Database) connectLocked(ctx context.Context) error {
	if db.pool != nil {
		return nil
	}

	poolConfig, err := pgxpool.ParseConfig(db.cfg.Database.ConnString())
	if err != nil {
		return fmt.Errorf("parse pgx pool config: %w", err)
	}
	poolConfig.MinConns = int32(db.cfg.Database.PoolMinSize)
	poolConfig.MaxConns = int32(db.cfg.Database.PoolMaxSize)

	// In local env, log every statement through the application logger.
	if db.cfg.Primary.Env == "local" {
		pgxLogger := logger.NewPgxLogger(db.log)
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: logger.PgxTraceLogLevel(db.log.GetLevel()),
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("create pgx pool: %w", err)
	}

	db.pool = pool
	db.log.Info().
		Str("host", db.cfg.Database.Host).
		Int("pool_min", db.cfg.Database.PoolMinSize).
		Int("pool_max", db.cfg.Database.PoolMaxSize).
		Msg("opened database connection pool")
	return nil
}

// Pool returns the underlying pool, opening it first if needed.
//
// pgx pool query methods acquire a connection for the duration of the
// call and return it on every exit path, which is the scoped-connection
// guarantee the repositories rely on.
func (db *Database) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err := db.connectLocked(ctx); err != nil {
		return nil, err
	}
	return db.pool, nil
}

// Acquire hands out a single scoped connection. The caller must Release
// it; prefer the pool-level query helpers which do this structurally.
func (db *Database) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	pool, err := db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	return pool.Acquire(ctx)
}

// Ping verifies connectivity with a bounded round trip.
func (db *Database) Ping(ctx context.Context) error {
	pool, err := db.Pool(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	return pool.Ping(ctx)
}

// Close drains and closes the pool. Calling it on a never-opened or
// already-closed Database is a no-op.
func (db *Database) Close() {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.pool == nil {
		return
	}
	db.log.Info().Msg("closing database connection pool")
	db.pool.Close()
	db.pool = nil
}
