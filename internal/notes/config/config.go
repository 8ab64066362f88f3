// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"gonotes/pkg/config"
	"gonotes/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName = "notes"

	EnvFileVariable = "NOTES_ENV_FILE"
	DefaultEnvFile  = ".env"

	LogConfigLoaded     = "notes configuration loaded"
	ErrFailedLoadConfig = "failed to load notes configuration"
)

// ErrEmptySecret возвращается, если секрет подписи токенов не задан.
var ErrEmptySecret = errors.New("NOTES_JWT_SECRET must be set")

// Config представляет полную конфигурацию сервиса заметок.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// EnvFile возвращает путь к .env файлу.
func EnvFile() string {
	if path, ok := os.LookupEnv(EnvFileVariable); ok {
		return path
	}
	return DefaultEnvFile
}

// Load загружает конфигурацию из .env файла и переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := config.Load[Config](ctx, ServiceName, EnvFile())
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		logger.Log(ctx).Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("grpc_address", cfg.GRPC.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Duration("token_ttl", cfg.JWT.TokenTTL),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode))

	return cfg, nil
}

// Validate проверяет значения, для которых нет разумных значений по умолчанию.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return ErrEmptySecret
	}
	return nil
}
