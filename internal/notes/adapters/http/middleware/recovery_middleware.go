package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// ErrPanic возвращается вместо паники обработчика.
var ErrPanic = errors.New("handler panicked")

// NewRecoveryMiddleware создает новое промежуточное ПО для восстановления после паники.
// Паника превращается в ошибку и уходит в общий обработчик ошибок.
func NewRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := RequestContext(c)
				logger.Log(requestCtx).Error(requestCtx, "server panic",
					zap.String("panic", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		return c.Next()
	}
}
