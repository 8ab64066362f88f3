// Package db предоставляет функционал для работы с базой данных сервиса заметок.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gonotes/internal/notes/config"
	"gonotes/pkg/db/postgres"
	"gonotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing notes database"
	LogDBInitialized     = "notes database initialized successfully"
	LogMigrationStarting = "starting database migrations for notes service"
	LogMigrationSkipped  = "automatic migrations disabled"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations      = "failed to apply notes database migrations"
	ErrDBConnection      = "failed to connect to notes database"
	ErrGetPath           = "failed to get path"
	ErrDBCheckConnection = "error checking the database connection"
)

const filePrefix = "file://"

// DB представляет соединение с базой данных сервиса заметок.
type DB struct {
	database *postgres.Database
}

// MigrationsURL превращает каталог миграций в URL источника для migrate.
func MigrationsURL(migrationsDir string) (string, error) {
	if filepath.IsAbs(migrationsDir) {
		return filePrefix + migrationsDir, nil
	}

	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return filePrefix + absPath, nil
}

// Migrate применяет или откатывает миграции из cfg.MigrationsDir.
func Migrate(ctx context.Context, cfg *config.PostgresConfig, direction postgres.Direction) error {
	migrationsPath, err := MigrationsURL(cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	logger.Log(ctx).Info(ctx, LogMigrationStarting,
		zap.String("migrations_path", migrationsPath),
		zap.String("direction", string(direction)))

	if err := postgres.Migrate(ctx, cfg.GetConnectionURL(), migrationsPath, direction); err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}
	return nil
}

// New открывает пул соединений. При cfg.AutoMigrate сначала применяются миграции.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	if cfg.AutoMigrate {
		if err := Migrate(ctx, cfg, postgres.Up); err != nil {
			return nil, err
		}
	} else {
		log.Info(ctx, LogMigrationSkipped)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.database.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDBCheckConnection, err)
	}
	return nil
}
