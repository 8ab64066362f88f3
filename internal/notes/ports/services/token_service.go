package services

import (
	"context"
	"time"

	"gonotes/internal/notes/domain/services"
)

// TokenService выпускает и проверяет подписанные токены доступа.
type TokenService interface {
	Issue(ctx context.Context, userID, username string) (string, time.Time, error)

	Validate(ctx context.Context, token string) (*services.Claims, error)
}
