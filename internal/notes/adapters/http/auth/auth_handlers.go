// Package auth содержит HTTP-обработчик входа в систему.
package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/ports/api"
	"gonotes/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerLogin = "handling login request"
	LogLoginFailed  = "login failed"
)

// Handler обработчик HTTP-запросов аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{authUseCase: authUseCase}
}

// Login обрабатывает POST /api/login.
func (h *Handler) Login(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Login"))
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fmt.Errorf("%w: %w", dto.ErrMalformedBody, err)
	}

	result, err := h.authUseCase.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		log.Debug(requestCtx, LogLoginFailed, zap.Error(err))
		return err
	}

	return c.Status(fiber.StatusOK).JSON(dto.LoginResponse{
		Token:    result.Token,
		Username: result.Username,
		Name:     result.Name,
	})
}
