package api

import (
	"context"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/services"
)

// NoteUseCase определяет порт для операций с заметками.
type NoteUseCase interface {
	CreateNote(ctx context.Context, owner *services.Identity, content string, important bool) (*entities.Note, error)

	ListNotes(ctx context.Context) ([]*entities.Note, error)

	GetNote(ctx context.Context, noteID string) (*entities.Note, error)

	UpdateNote(ctx context.Context, noteID, content string, important bool) (*entities.Note, error)

	DeleteNote(ctx context.Context, noteID string) error
}
