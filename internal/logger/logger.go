// Package logger configures the application's structured logging.
//
// It uses zerolog everywhere, including for SQL statement tracing: the
// pgx tracelog hook is bridged onto zerolog so queries show up in the
// same stream as application logs.
package logger

import (
	"os"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// New builds the application logger for the given runtime environment.
//
// In "local" the logger writes a human-friendly console format at debug
// level; everywhere else it writes JSON at info level.
func New(env string) zerolog.Logger {
	if env == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
}

// NewPgxLogger derives the logger handed to the pgx tracelog adapter.
// SQL statements are verbose, so they are tagged for filtering.
func NewPgxLogger(base zerolog.Logger) zerolog.Logger {
	return base.With().Str("component", "pgx").Logger()
}

// PgxTraceLogLevel converts the application log level into the pgx
// tracelog level. Debug logging turns on per-statement tracing; anything
// quieter only surfaces driver errors.
func PgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch {
	case level <= zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case level == zerolog.InfoLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}
