package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gonotes/internal/notes/db"
	"gonotes/pkg/db/postgres"
	"gonotes/pkg/logger"
)

// ErrMigrate - сообщение о неудачной миграции.
const ErrMigrate = "migration command failed"

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all up migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd.Context(), postgres.Up)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd.Context(), postgres.Down)
			},
		},
	)

	return migrateCmd
}

func runMigrate(ctx context.Context, direction postgres.Direction) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if err := db.Migrate(ctx, &cfg.Postgres, direction); err != nil {
		logger.Log(ctx).Error(ctx, ErrMigrate, zap.Error(err))
		return err
	}
	return nil
}
