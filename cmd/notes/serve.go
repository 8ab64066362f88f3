package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/cache"
	"gonotes/internal/notes/adapters/grpc"
	httpadapter "gonotes/internal/notes/adapters/http"
	"gonotes/internal/notes/adapters/postgres"
	"gonotes/internal/notes/adapters/services"
	"gonotes/internal/notes/app"
	"gonotes/internal/notes/config"
	"gonotes/internal/notes/db"
	portcache "gonotes/internal/notes/ports/cache"
	"gonotes/pkg/db/redis"
	"gonotes/pkg/logger"
	"gonotes/pkg/resilience"
	"gonotes/pkg/shutdown"
)

// Константы для сообщений об ошибках.
const (
	ErrInitDB    = "failed to initialize database"
	ErrInitRedis = "failed to initialize redis cache"
	ErrStartGRPC = "failed to start gRPC server"
	ErrServeHTTP = "http server stopped unexpectedly"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "note service started"
	LogServiceShutdownDone = "note service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingCache        = "closing note cache"
	LogStoppingGRPC        = "stopping gRPC server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogCacheDisabled       = "redis disabled, note cache is off"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogStartingHTTP        = "starting HTTP server"
	LogStartingGRPC        = "starting gRPC health server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the gRPC health server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.Log(ctx)

	database, err := resilience.RetryValue(ctx, "postgres",
		connectRetry(cfg.Postgres.ConnectAttempts, cfg.Postgres.ConnectBackoff),
		func(ctx context.Context) (*db.DB, error) {
			return db.New(ctx, &cfg.Postgres)
		})
	if err != nil {
		log.Error(ctx, ErrInitDB, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrInitDB, err)
	}

	noteCache, err := newNoteCache(ctx, &cfg.Redis)
	if err != nil {
		database.Close(ctx)
		log.Error(ctx, ErrInitRedis, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrInitRedis, err)
	}

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	log.Info(ctx, LogInitRepo)
	repoFactory := postgres.NewRepositoryFactory(database.Pool())

	log.Info(ctx, LogInitServices)
	serviceFactory := services.NewServiceFactory(cfg.JWT.Secret, cfg.JWT.TokenTTL, cfg.JWT.BCryptCost, cfg.JWT.HashWorkers)

	log.Info(ctx, LogInitUseCases)
	useCases := httpadapter.UseCases{
		Auth: app.NewAuthUseCase(
			repoFactory.UserRepository(),
			serviceFactory.PasswordService(),
			serviceFactory.TokenService(),
		),
		Users:      app.NewUserUseCase(repoFactory.UserRepository()),
		Notes:      app.NewNoteUseCase(repoFactory.NoteRepository(), noteCache, cfg.Redis.NoteTTL),
		Authorizer: app.NewGuard(serviceFactory.TokenService()),
	}

	fiberApp := httpadapter.NewApp(&cfg.HTTP)
	httpadapter.SetupRouter(fiberApp, useCases)

	grpcServer := grpc.New(&cfg.GRPC)
	log.Info(ctx, LogStartingGRPC, zap.String("address", cfg.GRPC.GetAddress()))
	if err := grpcServer.Start(ctx); err != nil {
		_ = noteCache.Close()
		database.Close(ctx)
		log.Error(ctx, ErrStartGRPC, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrStartGRPC, err)
	}

	// Отмена serveCtx запускает завершение, если HTTP сервер упал сам.
	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	go func() {
		if err := fiberApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			log.Error(ctx, ErrServeHTTP, zap.Error(err))
			cancel()
		}
	}()

	go grpcServer.Watch(serveCtx, cfg.GRPC.HealthInterval, databaseCheck(database))

	shutdown.Wait(serveCtx, cfg.Shutdown.Timeout,
		func(ctx context.Context) error {
			log.Info(ctx, LogStoppingGRPC)
			return grpcServer.Stop(ctx)
		},
		func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			if err := fiberApp.ShutdownWithContext(ctx); err != nil {
				return err
			}

			log.Info(ctx, LogClosingCache)
			if err := noteCache.Close(); err != nil {
				log.Warn(ctx, LogClosingCache, zap.Error(err))
			}

			log.Info(ctx, LogClosingDB)
			database.Close(ctx)
			return nil
		},
	)

	log.Info(ctx, LogServiceShutdownDone)
	return nil
}

// connectRetry строит настройки повторного подключения к хранилищу.
func connectRetry(attempts int, backoff time.Duration) resilience.RetryConfig {
	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.MaxAttempts = attempts
	retryCfg.InitialBackoff = backoff
	retryCfg.MaxBackoff = 10 * backoff
	return retryCfg
}

type pinger interface {
	Ping(ctx context.Context) error
}

// databaseCheck проверяет базу для статуса здоровья. Короткие сбои повторяются,
// поэтому единичная ошибка не снимает SERVING.
func databaseCheck(database pinger) grpc.Checker {
	retryCfg := resilience.DefaultRetryConfig()
	return func(ctx context.Context) error {
		return resilience.Retry(ctx, "postgres-health", retryCfg, database.Ping)
	}
}

// newNoteCache возвращает Redis кэш заметок или пустой кэш, если Redis выключен.
func newNoteCache(ctx context.Context, cfg *config.RedisConfig) (portcache.Cache, error) {
	if !cfg.Enabled {
		logger.Log(ctx).Info(ctx, LogCacheDisabled)
		return cache.NewNop(), nil
	}

	retryCfg := connectRetry(cfg.ConnectAttempts, cfg.ConnectBackoff)
	client, err := resilience.RetryValue(ctx, "redis", retryCfg, func(ctx context.Context) (*goredis.Client, error) {
		return redis.NewClient(ctx, cfg.ClientConfig())
	})
	if err != nil {
		return nil, err
	}

	breaker := resilience.NewBreaker("note-cache", resilience.BreakerConfig{
		FailureThreshold: cfg.BreakerFailures,
		Timeout:          cfg.BreakerTimeout,
		SuccessThreshold: 1,
	})
	return cache.NewBreakerCache(cache.NewRedisCache(client, cfg.NoteTTL), breaker), nil
}
