package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gonotes/internal/notes/config"
	"gonotes/pkg/logger"
)

// Константы для сообщений об ошибках загрузки.
const (
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gonotes",
		Short:         "Multi-user notes backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// loadConfig загружает конфигурацию и пересоздает глобальный logger по ее настройкам.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(finalLogger)

	return cfg, nil
}
