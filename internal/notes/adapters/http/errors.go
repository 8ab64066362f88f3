package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/services"
	"gonotes/pkg/logger"
)

// Тексты ответов об ошибках.
const (
	MsgMalformedID        = "malformatted id"
	MsgInvalidCredentials = "invalid username or password"
	MsgTokenExpired       = "token expired"
	MsgInvalidToken       = "invalid token"
	MsgUnknownEndpoint    = "unknown endpoint"
	MsgInternal           = "internal server error"

	LogUnhandledError = "unhandled request error"
)

// ErrorHandler переводит ошибки обработчиков в HTTP-ответы вида {"error": msg}.
// Отсутствующий ресурс отдается как 404 с пустым телом.
func ErrorHandler(c fiber.Ctx, err error) error {
	var validationErr *entities.ValidationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErr):
		return errorJSON(c, fiber.StatusBadRequest, validationErr.Error())
	case errors.Is(err, entities.ErrMalformedID):
		return errorJSON(c, fiber.StatusBadRequest, MsgMalformedID)
	case errors.Is(err, dto.ErrMalformedBody):
		return errorJSON(c, fiber.StatusBadRequest, dto.ErrMalformedBody.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, services.ErrExpiredToken):
		return errorJSON(c, fiber.StatusUnauthorized, MsgTokenExpired)
	case errors.Is(err, services.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, MsgInvalidToken)
	case errors.Is(err, entities.ErrNoteNotFound), errors.Is(err, entities.ErrUserNotFound):
		c.Status(fiber.StatusNotFound)
		return nil
	case errors.As(err, &fiberErr):
		return errorJSON(c, fiberErr.Code, fiberErr.Message)
	}

	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Error(requestCtx, LogUnhandledError,
		zap.String("path", c.Path()),
		zap.String("method", c.Method()),
		zap.Error(err))

	return errorJSON(c, fiber.StatusInternalServerError, MsgInternal)
}

func errorJSON(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
