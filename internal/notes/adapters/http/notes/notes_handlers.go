// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/services"
	"gonotes/internal/notes/ports/api"
	"gonotes/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreateNote = "handling create note request"
	LogOwnerVanished     = "note owner from token no longer exists"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteUseCase api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase api.NoteUseCase) *Handler {
	return &Handler{noteUseCase: noteUseCase}
}

// CreateNote обрабатывает POST /api/notes. Требует NewAuthMiddleware.
func (h *Handler) CreateNote(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	req := dto.DefaultNoteRequest()
	if err := c.Bind().JSON(&req); err != nil {
		return fmt.Errorf("%w: %w", dto.ErrMalformedBody, err)
	}

	note, err := h.noteUseCase.CreateNote(requestCtx, middleware.IdentityFrom(c), req.Content, req.Important)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Warn(requestCtx, LogOwnerVanished)
			return fmt.Errorf("%w: %w", services.ErrUnauthorized, err)
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(note)
}

// ListNotes обрабатывает GET /api/notes.
func (h *Handler) ListNotes(c fiber.Ctx) error {
	notes, err := h.noteUseCase.ListNotes(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

// GetNote обрабатывает GET /api/notes/:id.
func (h *Handler) GetNote(c fiber.Ctx) error {
	note, err := h.noteUseCase.GetNote(middleware.RequestContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(note)
}

// UpdateNote обрабатывает PUT /api/notes/:id.
func (h *Handler) UpdateNote(c fiber.Ctx) error {
	req := dto.DefaultNoteRequest()
	if err := c.Bind().JSON(&req); err != nil {
		return fmt.Errorf("%w: %w", dto.ErrMalformedBody, err)
	}

	note, err := h.noteUseCase.UpdateNote(middleware.RequestContext(c), c.Params("id"), req.Content, req.Important)
	if err != nil {
		return err
	}
	return c.JSON(note)
}

// DeleteNote обрабатывает DELETE /api/notes/:id.
func (h *Handler) DeleteNote(c fiber.Ctx) error {
	if err := h.noteUseCase.DeleteNote(middleware.RequestContext(c), c.Params("id")); err != nil {
		return err
	}
	c.Status(fiber.StatusNoContent)
	return nil
}
