// Package repositories определяет интерфейсы хранилищ.
package repositories

import (
	"context"

	"gonotes/internal/notes/domain/entities"
)

// UserRepository определяет интерфейс хранилища учетных данных.
type UserRepository interface {
	// Create возвращает entities.ErrUsernameTaken, если имя пользователя занято.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	// List возвращает пользователей вместе с их заметками.
	List(ctx context.Context) ([]*entities.User, error)
}
