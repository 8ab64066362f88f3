// Package users содержит HTTP-обработчики для пользователей.
package users

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/ports/api"
	"gonotes/pkg/logger"
)

// Handler обработчик HTTP-запросов для пользователей.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика пользователей.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// CreateUser обрабатывает POST /api/users.
func (h *Handler) CreateUser(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)

	var req dto.CreateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fmt.Errorf("%w: %w", dto.ErrMalformedBody, err)
	}

	user, err := h.authUseCase.Register(requestCtx, req.Username, req.Name, req.Password)
	if err != nil {
		return err
	}

	logger.Log(requestCtx).Debug(requestCtx, "user created via http", zap.String("userID", user.ID))
	return c.Status(fiber.StatusCreated).JSON(user)
}

// ListUsers обрабатывает GET /api/users.
func (h *Handler) ListUsers(c fiber.Ctx) error {
	users, err := h.userUseCase.ListUsers(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// GetUser обрабатывает GET /api/users/:id.
func (h *Handler) GetUser(c fiber.Ctx) error {
	user, err := h.userUseCase.GetUser(middleware.RequestContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}
