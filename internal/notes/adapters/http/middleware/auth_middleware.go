package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/ports/api"
	"gonotes/pkg/logger"
)

// LogAuthRejected - сообщение об отклоненном запросе.
const LogAuthRejected = "request rejected by auth middleware"

// NewAuthMiddleware проверяет заголовок Authorization и кладет личность в locals.
// Ошибка проверки передается общему обработчику ошибок.
func NewAuthMiddleware(authorizer api.Authorizer) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)

		identity, err := authorizer.Resolve(requestCtx, c.Get(fiber.HeaderAuthorization))
		if err != nil {
			logger.Log(requestCtx).Debug(requestCtx, LogAuthRejected,
				zap.String("middleware", "auth"), zap.Error(err))
			return err
		}

		c.Locals(localIdentity, identity)
		return c.Next()
	}
}
