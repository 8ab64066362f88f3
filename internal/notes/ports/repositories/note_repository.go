package repositories

import (
	"context"

	"gonotes/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс для работы с хранилищем заметок.
type NoteRepository interface {
	// CreateOwned сохраняет заметку и добавляет ее id в список заметок владельца
	// одной транзакцией.
	CreateOwned(ctx context.Context, note *entities.Note) (*entities.Note, error)

	List(ctx context.Context) ([]*entities.Note, error)

	GetByID(ctx context.Context, noteID string) (*entities.Note, error)

	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)

	// Delete удаляет заметку и ссылку на нее у владельца; отсутствие заметки не ошибка.
	Delete(ctx context.Context, noteID string) error
}
