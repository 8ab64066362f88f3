// Package api определяет входные порты сервиса заметок.
package api

import (
	"context"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/services"
)

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)

	Register(ctx context.Context, username, name, password string) (*entities.User, error)
}

// Authorizer превращает значение заголовка authorization в личность пользователя.
type Authorizer interface {
	Resolve(ctx context.Context, authorizationHeader string) (*services.Identity, error)
}
