// Package redis предоставляет общую реализацию клиента Redis.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to Redis"
	LogConnected  = "successfully connected to Redis"

	ErrConnect = "failed to connect to Redis"
)

// NewClient создает клиент Redis и проверяет соединение.
func NewClient(ctx context.Context, cfg *Config) (*redis.Client, error) {
	log := logger.Log(ctx).With(zap.String("address", cfg.Addr()))
	log.Info(ctx, LogConnecting)

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdle,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		log.Error(ctx, ErrConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	log.Info(ctx, LogConnected)
	return rdb, nil
}
