// The loader command is the one-time JSON-to-database loader: it reads
// item and location snapshot files and reconciles them with the store,
// reporting a tally per file.
package main

import (
	"context"
	"os"

	"github.com/kumarvvr/salesnisha-server/internal/config"
	"github.com/kumarvvr/salesnisha-server/internal/database"
	"github.com/kumarvvr/salesnisha-server/internal/logger"
	"github.com/kumarvvr/salesnisha-server/internal/repository"
	"github.com/kumarvvr/salesnisha-server/internal/service"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	itemsPath     string
	locationsPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "salesnisha-loader",
		Short: "Load item and location JSON snapshots into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	rootCmd.Flags().StringVar(&itemsPath, "items", "", "Path to the items snapshot (e.g. items.json)")
	rootCmd.Flags().StringVar(&locationsPath, "locations", "", "Path to the locations snapshot (e.g. locations.json)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Primary.Env)

	if itemsPath == "" && locationsPath == "" {
		log.Error().Msg("nothing to load: pass --items and/or --locations")
		os.Exit(2)
	}

	db := database.New(cfg, log)
	defer db.Close()

	repos := repository.NewRepositories(db, log)
	services := service.NewServices(repos, log)

	if itemsPath != "" {
		res, err := services.Sync.SyncItems(ctx, itemsPath)
		if err != nil {
			log.Error().Err(err).Str("path", itemsPath).Msg("items sync failed")
			return err
		}
		logResult(log, "items", itemsPath, res)
	}

	if locationsPath != "" {
		res, err := services.Sync.SyncLocations(ctx, locationsPath)
		if err != nil {
			log.Error().Err(err).Str("path", locationsPath).Msg("locations sync failed")
			return err
		}
		logResult(log, "locations", locationsPath, res)
	}

	return nil
}

func logResult(log zerolog.Logger, kind, path string, res *service.Result) {
	log.Info().
		Str("kind", kind).
		Str("path", path).
		Int("total", res.Total).
		Int("inserted", res.Inserted).
		Int("updated", res.Updated).
		Int("errors", res.Errors).
		Msg("sync completed")
}
