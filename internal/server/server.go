// Package server defines the core Server struct that composes the
// application's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger
//   - database pool
//   - repositories
//   - http.Server
//
// and provides start/shutdown logic to run the application cleanly.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kumarvvr/salesnisha-server/internal/config"
	"github.com/kumarvvr/salesnisha-server/internal/database"
	"github.com/kumarvvr/salesnisha-server/internal/repository"

	"github.com/rs/zerolog"
)

// Server is the application container that holds shared resources. It
// is not the HTTP server itself; the internal *http.Server is
// configured in SetupHTTPServer and driven by Start/Shutdown.
type Server struct {
	Config *config.Config
	Logger zerolog.Logger
	DB     *database.Database
	Repos  *repository.Repositories

	httpServer *http.Server
}

// New constructs a Server: it opens the database pool, verifies
// connectivity so startup fails fast when the store is down, and wires
// the repository container.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	db := database.New(cfg, logger)
	if err := db.Ping(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return &Server{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Repos:  repository.NewRepositories(db, logger),
	}, nil
}

// SetupHTTPServer configures the internal net/http server around the
// given handler (the Echo router). Timeouts come from config, in
// seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops or
// errors; SetupHTTPServer must have been called first.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server (draining in-flight
// requests until ctx expires) and then tears down the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}
	s.DB.Close()
	return nil
}
