package api

import (
	"context"

	"gonotes/internal/notes/domain/entities"
)

// UserUseCase определяет порт для чтения пользователей.
type UserUseCase interface {
	ListUsers(ctx context.Context) ([]*entities.User, error)

	GetUser(ctx context.Context, userID string) (*entities.User, error)
}
