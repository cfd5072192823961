package main

import (
	"context"
	"database/sql"
	"io/fs"
	"os"
	"time"

	"github.com/nttbank/msaccount/src/internal/adapter/repository/postgres"
	"github.com/nttbank/msaccount/src/internal/config"
	"github.com/nttbank/msaccount/src/internal/logger"
	"github.com/nttbank/msaccount/src/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			db, err := postgres.Open(ctx, cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			return runMigrations(ctx, db, cfg.MigrationsDir)
		},
	}
}

func runMigrations(ctx context.Context, db *sql.DB, dir string) error {
	applied, err := postgres.Migrate(ctx, db, migrationSource(dir))
	if err != nil {
		logger.Error("migrations failed", err, nil)
		return err
	}

	logger.Info("migrations completed", logger.Fields{
		"applied": applied,
	})
	return nil
}

// migrationSource prefers the directory on disk and falls back to the
// migrations compiled into the binary.
func migrationSource(dir string) fs.FS {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return os.DirFS(dir)
	}
	return migrations.Files
}
