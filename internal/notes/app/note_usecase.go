package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/services"
	"gonotes/internal/notes/ports/api"
	"gonotes/internal/notes/ports/cache"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

const (
	entityNote   = "Note"
	fieldContent = "content"

	noteCachePrefix = "note:"

	msgCreatingNote      = "creating note"
	msgNoteCreated       = "note created"
	msgOwnerVanished     = "token refers to a user that no longer exists"
	msgCacheHit          = "note served from cache"
	msgCacheReadFailed   = "note cache read failed"
	msgCacheDecodeFailed = "note cache entry is corrupted"
	msgCacheWriteFailed  = "note cache write failed"
	msgCacheDropFailed   = "note cache invalidation failed"
)

// NoteUseCaseImpl реализует интерфейс NoteUseCase.
type NoteUseCaseImpl struct {
	noteRepo repositories.NoteRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
// Ошибки кэша только логируются и не влияют на результат.
func NewNoteUseCase(noteRepo repositories.NoteRepository, noteCache cache.Cache, cacheTTL time.Duration) api.NoteUseCase {
	return &NoteUseCaseImpl{
		noteRepo: noteRepo,
		cache:    noteCache,
		cacheTTL: cacheTTL,
	}
}

// CreateNote создает заметку от имени владельца токена.
func (uc *NoteUseCaseImpl) CreateNote(
	ctx context.Context,
	owner *services.Identity,
	content string,
	important bool,
) (*entities.Note, error) {
	if owner == nil || owner.UserID == "" {
		return nil, services.ErrUnauthorized
	}

	log := logger.Log(ctx).With(zap.String("method", "CreateNote"), zap.String("userID", owner.UserID))
	log.Debug(ctx, msgCreatingNote)

	if content == "" {
		return nil, entities.NewValidationError(entityNote, fieldContent, entities.ErrEmptyContent)
	}

	ownerID, err := parseID(owner.UserID)
	if err != nil {
		log.Warn(ctx, msgOwnerVanished)
		return nil, entities.ErrUserNotFound
	}

	created, err := uc.noteRepo.CreateOwned(ctx, entities.NewNote(ownerID, content, important))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Warn(ctx, msgOwnerVanished)
			return nil, err
		}
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Info(ctx, msgNoteCreated, zap.String("noteID", created.ID))
	return created, nil
}

// ListNotes возвращает все заметки в порядке создания.
func (uc *NoteUseCaseImpl) ListNotes(ctx context.Context) ([]*entities.Note, error) {
	notes, err := uc.noteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// GetNote возвращает заметку по ID, сначала заглядывая в кэш.
func (uc *NoteUseCaseImpl) GetNote(ctx context.Context, noteID string) (*entities.Note, error) {
	id, err := parseID(noteID)
	if err != nil {
		return nil, err
	}

	if note, ok := uc.cached(ctx, id); ok {
		return note, nil
	}

	note, err := uc.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	uc.remember(ctx, note)
	return note, nil
}

// UpdateNote меняет содержимое и важность заметки.
// Владелец не проверяется и не меняется.
func (uc *NoteUseCaseImpl) UpdateNote(ctx context.Context, noteID, content string, important bool) (*entities.Note, error) {
	id, err := parseID(noteID)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, entities.NewValidationError(entityNote, fieldContent, entities.ErrEmptyContent)
	}

	updated, err := uc.noteRepo.Update(ctx, &entities.Note{ID: id, Content: content, Important: important})
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	uc.forget(ctx, id)
	return updated, nil
}

// DeleteNote удаляет заметку. Повторное удаление не ошибка.
func (uc *NoteUseCaseImpl) DeleteNote(ctx context.Context, noteID string) error {
	id, err := parseID(noteID)
	if err != nil {
		return err
	}

	if err := uc.noteRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	uc.forget(ctx, id)
	return nil
}

// cachedNote - представление заметки в кэше, включая владельца.
type cachedNote struct {
	ID        string              `json:"id"`
	Content   string              `json:"content"`
	Important bool                `json:"important"`
	UserID    *string             `json:"user_id,omitempty"`
	Owner     *entities.NoteOwner `json:"owner,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func noteCacheKey(id string) string {
	return noteCachePrefix + id
}

func (uc *NoteUseCaseImpl) cached(ctx context.Context, id string) (*entities.Note, bool) {
	log := logger.Log(ctx).With(zap.String("noteID", id))

	raw, err := uc.cache.Get(ctx, noteCacheKey(id))
	if err != nil {
		log.Warn(ctx, msgCacheReadFailed, zap.Error(err))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var entry cachedNote
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		log.Warn(ctx, msgCacheDecodeFailed, zap.Error(err))
		uc.forget(ctx, id)
		return nil, false
	}

	log.Debug(ctx, msgCacheHit)
	return &entities.Note{
		ID:        entry.ID,
		Content:   entry.Content,
		Important: entry.Important,
		UserID:    entry.UserID,
		Owner:     entry.Owner,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}, true
}

func (uc *NoteUseCaseImpl) remember(ctx context.Context, note *entities.Note) {
	raw, err := json.Marshal(cachedNote{
		ID:        note.ID,
		Content:   note.Content,
		Important: note.Important,
		UserID:    note.UserID,
		Owner:     note.Owner,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	})
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgCacheWriteFailed, zap.Error(err))
		return
	}

	if err := uc.cache.Set(ctx, noteCacheKey(note.ID), string(raw), uc.cacheTTL); err != nil {
		logger.Log(ctx).Warn(ctx, msgCacheWriteFailed, zap.String("noteID", note.ID), zap.Error(err))
	}
}

func (uc *NoteUseCaseImpl) forget(ctx context.Context, id string) {
	if err := uc.cache.Delete(ctx, noteCacheKey(id)); err != nil {
		logger.Log(ctx).Warn(ctx, msgCacheDropFailed, zap.String("noteID", id), zap.Error(err))
	}
}
