package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/api"
	"gonotes/internal/notes/ports/repositories"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает новый экземпляр UserUseCase.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{userRepo: userRepo}
}

// ListUsers возвращает всех пользователей вместе с их заметками.
func (u *UserUseCaseImpl) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// GetUser возвращает пользователя по ID.
func (u *UserUseCaseImpl) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

// parseID проверяет формат идентификатора и приводит его к каноническому виду.
func parseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", entities.ErrMalformedID
	}
	return id.String(), nil
}
