package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"devfolio/internal/analytics"
	"devfolio/internal/config"
	"devfolio/internal/importer"
	"devfolio/internal/service"
	"devfolio/internal/storage"
)

// openDB loads configuration and opens the migrated database.
func openDB() (*config.Config, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return cfg, db, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()
			fmt.Fprintf(cmd.OutOrStdout(), "database ready: %s\n", cfg.DBPath)
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [dir]",
		Short: "Import markdown posts from a directory",
		Long: `Import every .md file under dir (default CONTENT_DIR) as a post.

Unchanged files are skipped. Front matter may set title, slug, tags,
status, description, og_image and published_at.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			dir := cfg.ContentDir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return fmt.Errorf("no content directory: pass one or set CONTENT_DIR")
			}

			pipeline := importer.NewPipeline(importer.NewScanner(dir), storage.NewPostRepo(db))
			stats, err := pipeline.ImportAll(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), stats.String())
			return err
		},
	}
}

func newUpdateViewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-views",
		Short: "Refresh post view counts from Google Analytics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			if cfg.GAPropertyID == "" {
				return fmt.Errorf("GA_PROPERTY_ID is not set")
			}
			ga := analytics.NewGAClient(cfg.GAEndpoint, cfg.GAPropertyID, cfg.GAAccessToken, cfg.GAStartDate)
			updater := service.NewViewUpdater(ga, storage.NewPostRepo(db), cfg.ViewUpdateConcurrency)

			result, err := updater.UpdateAll(cmd.Context())
			if err != nil {
				return err
			}
			slog.Debug("view update finished", "updated", result.Updated, "total", result.Total)
			fmt.Fprintln(cmd.OutOrStdout(), result.Message())
			return nil
		},
	}
}
