package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kumarvvr/salesnisha-server/internal/config"
	"github.com/kumarvvr/salesnisha-server/internal/handler"
	"github.com/kumarvvr/salesnisha-server/internal/logger"
	"github.com/kumarvvr/salesnisha-server/internal/middleware"
	"github.com/kumarvvr/salesnisha-server/internal/router"
	"github.com/kumarvvr/salesnisha-server/internal/server"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:   "salesnisha-api",
		Short: "SalesNisha sales data API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Primary.Env)

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	h := handler.NewHandlers(srv)
	mw := middleware.NewMiddlewares(srv)
	srv.SetupHTTPServer(router.New(srv, h, mw))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("server stopped unexpectedly")
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
