package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// NewLoggerMiddleware создает новое промежуточное ПО для логирования HTTP запросов.
// Тело запроса не логируется: в нем бывают пароли.
func NewLoggerMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.String("ip", c.IP()),
		)

		log.Debug(requestCtx, "request started")

		err := c.Next()
		if err != nil {
			// Ответ формируется здесь, чтобы в лог попал итоговый статус.
			if handlerErr := c.App().Config().ErrorHandler(c, err); handlerErr != nil {
				return handlerErr
			}
		}

		fields := []zap.Field{
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		log.Info(requestCtx, "request completed", fields...)
		return nil
	}
}
