package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // драйвер postgres:// для migrate
	_ "github.com/golang-migrate/migrate/v4/source/file"       // источник file:// для migrate
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrUnknownDirection        = "unknown migration direction"
)

// Direction задает направление миграций.
type Direction string

// Поддерживаемые направления.
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MigrateDSN применяет все миграции из указанного пути.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) error {
	return Migrate(ctx, dsn, migrationsPath, Up)
}

// Migrate применяет или откатывает все миграции из migrationsPath.
func Migrate(ctx context.Context, dsn, migrationsPath string, direction Direction) error {
	log := logger.Log(ctx).With(zap.String("direction", string(direction)))

	if direction != Up && direction != Down {
		return fmt.Errorf("%s: %q", ErrUnknownDirection, direction)
	}

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err), zap.String("path", migrationsPath))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer m.Close()

	if direction == Up {
		err = m.Up()
	} else {
		err = m.Down()
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied)
	return nil
}
