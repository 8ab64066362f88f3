// Package config предоставляет функциональность для загрузки конфигурации из переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded successfully"
	msgEnvFileSkipped       = "env file not found, using process environment only"

	errFailedLoadEnvFile       = "failed to load env file"
	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет структуру T из переменных окружения.
// Если envPath не пуст, сначала подгружается .env файл; его отсутствие не считается ошибкой.
// Уже заданные переменные окружения .env файл не перекрывает.
func Load[T any](ctx context.Context, serviceName, envPath string) (*T, error) {
	log := logger.Log(ctx)

	log.Info(ctx, msgLoadingConfiguration,
		zap.String(attrService, serviceName),
		zap.String(attrPath, envPath))

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%s: %w", errFailedLoadEnvFile, err)
			}
			log.Debug(ctx, msgEnvFileSkipped, zap.String(attrPath, envPath))
		}
	}

	var cfg T
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded, zap.String(attrService, serviceName))

	return &cfg, nil
}
