package middleware

import (
	"github.com/gofiber/fiber/v3"

	"gonotes/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware берет идентификатор запроса из заголовка или генерирует новый
// и возвращает его в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = logger.GenerateRequestID()
		}

		c.Locals(localRequestID, id)
		c.Set(HeaderRequestID, id)

		return c.Next()
	}
}
