// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"gonotes/internal/notes/domain/services"
	"gonotes/pkg/logger"
)

// Ключи fiber locals.
const (
	localRequestID = "request_id"
	localIdentity  = "identity"
)

// RequestContext возвращает контекст запроса с идентификатором запроса.
func RequestContext(c fiber.Ctx) context.Context {
	var ctx context.Context = c.Context()
	if id, ok := c.Locals(localRequestID).(string); ok && id != "" {
		ctx = logger.NewRequestIDContext(ctx, id)
	}
	return ctx
}

// IdentityFrom возвращает личность, установленную NewAuthMiddleware.
func IdentityFrom(c fiber.Ctx) *services.Identity {
	identity, _ := c.Locals(localIdentity).(*services.Identity)
	return identity
}
