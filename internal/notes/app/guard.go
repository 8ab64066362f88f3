package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/services"
	"gonotes/internal/notes/ports/api"
	svc "gonotes/internal/notes/ports/services"
	"gonotes/pkg/logger"
)

const (
	methodResolve = "Resolve"

	msgMissingToken     = "authorization header without bearer token"
	msgTokenRejected    = "bearer token rejected"
	msgMissingSubject   = "token has no user id"
	msgIdentityResolved = "identity resolved"
)

// Guard извлекает личность из заголовка authorization. В хранилище не обращается.
type Guard struct {
	tokenSvc svc.TokenService
}

// NewGuard создает новый Guard.
func NewGuard(tokenSvc svc.TokenService) api.Authorizer {
	return &Guard{tokenSvc: tokenSvc}
}

// Resolve проверяет заголовок "Bearer <token>".
// Все ошибки оборачивают services.ErrUnauthorized вместе с конкретной причиной.
func (g *Guard) Resolve(ctx context.Context, authorizationHeader string) (*services.Identity, error) {
	log := logger.Log(ctx).With(zap.String("method", methodResolve))

	raw, ok := strings.CutPrefix(authorizationHeader, services.BearerPrefix)
	if !ok || raw == "" {
		log.Debug(ctx, msgMissingToken)
		return nil, fmt.Errorf("%w: %w", services.ErrUnauthorized, services.ErrMissingToken)
	}

	claims, err := g.tokenSvc.Validate(ctx, raw)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%w: %w", services.ErrUnauthorized, err)
	}

	if claims.UserID == "" {
		log.Debug(ctx, msgMissingSubject)
		return nil, fmt.Errorf("%w: %w", services.ErrUnauthorized, services.ErrMissingSubject)
	}

	log.Debug(ctx, msgIdentityResolved, zap.String("userID", claims.UserID))
	return &services.Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
	}, nil
}
