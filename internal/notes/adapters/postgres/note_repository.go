package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
	pgdb "gonotes/pkg/db/postgres"
	"gonotes/pkg/logger"
)

const (
	queryInsertNote = `
        INSERT INTO notes (content, important, user_id)
        VALUES ($1, $2, $3)
        RETURNING id::text, created_at, updated_at
    `

	queryAppendNoteID = `
        UPDATE users SET note_ids = array_append(note_ids, $2::uuid)
        WHERE id = $1
        RETURNING username, name
    `

	queryRemoveNoteID = `
        UPDATE users SET note_ids = array_remove(note_ids, $2::uuid)
        WHERE id = $1
    `

	querySelectNotes = `
        SELECT n.id::text, n.content, n.important, n.user_id::text, n.created_at, n.updated_at,
               u.username, u.name
        FROM notes n
        LEFT JOIN users u ON u.id = n.user_id
    `
	querySelectNotesOrdered = querySelectNotes + `
        ORDER BY n.created_at, n.id
    `
	querySelectNoteByID = querySelectNotes + `
        WHERE n.id = $1
    `

	queryUpdateNote = `
        WITH n AS (
            UPDATE notes SET content = $2, important = $3, updated_at = NOW()
            WHERE id = $1
            RETURNING id, content, important, user_id, created_at, updated_at
        )
        SELECT n.id::text, n.content, n.important, n.user_id::text, n.created_at, n.updated_at,
               u.username, u.name
        FROM n
        LEFT JOIN users u ON u.id = n.user_id
    `

	queryDeleteNote = `
        DELETE FROM notes WHERE id = $1
        RETURNING user_id::text
    `
)

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// CreateOwned сохраняет заметку и дописывает ее id владельцу в одной транзакции.
func (r *NoteRepository) CreateOwned(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.CreateOwned"))
	ownerID := note.OwnerID()
	log.Debug(ctx, "creating new note", zap.String("userID", ownerID))

	if ownerID == "" {
		return nil, entities.ErrEmptyUserID
	}

	created := *note
	owner := &entities.NoteOwner{ID: ownerID}
	err := pgdb.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, queryInsertNote, note.Content, note.Important, ownerID).
			Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
			if hasCode(err, codeForeignKeyViolation) {
				return entities.ErrUserNotFound
			}
			return fmt.Errorf("failed to insert note: %w", err)
		}

		// Нет строки - владельца удалили между проверкой токена и вставкой.
		if err := tx.QueryRow(ctx, queryAppendNoteID, ownerID, created.ID).
			Scan(&owner.Username, &owner.Name); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return entities.ErrUserNotFound
			}
			return fmt.Errorf("failed to link note to owner: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, "owner not found", zap.String("userID", ownerID))
			return nil, err
		}
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	created.Owner = owner
	log.Debug(ctx, "note created", zap.String("noteID", created.ID))
	return &created, nil
}

// List возвращает все заметки с данными владельцев в порядке создания.
func (r *NoteRepository) List(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))

	rows, err := r.pool.Query(ctx, querySelectNotesOrdered)
	if err != nil {
		log.Error(ctx, "failed to query notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating note rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	log.Debug(ctx, "notes listed", zap.Int("count", len(notes)))
	return notes, nil
}

// GetByID получает заметку по ID.
func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))

	note, err := scanNote(r.pool.QueryRow(ctx, querySelectNoteByID, noteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// Update меняет только содержимое и важность заметки. Владелец не переназначается.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))

	updated, err := scanNote(r.pool.QueryRow(ctx, queryUpdateNote, note.ID, note.Content, note.Important))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", note.ID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	log.Debug(ctx, "note updated", zap.String("noteID", updated.ID))
	return updated, nil
}

// Delete удаляет заметку и убирает ее id из списка владельца.
// Отсутствующая заметка не считается ошибкой.
func (r *NoteRepository) Delete(ctx context.Context, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))

	err := pgdb.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var ownerID *string
		if err := tx.QueryRow(ctx, queryDeleteNote, noteID).Scan(&ownerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				log.Debug(ctx, "note already absent", zap.String("noteID", noteID))
				return nil
			}
			return fmt.Errorf("failed to delete note row: %w", err)
		}

		if ownerID == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, queryRemoveNoteID, *ownerID, noteID); err != nil {
			return fmt.Errorf("failed to unlink note from owner: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var (
		note           entities.Note
		username, name *string
	)
	if err := row.Scan(
		&note.ID,
		&note.Content,
		&note.Important,
		&note.UserID,
		&note.CreatedAt,
		&note.UpdatedAt,
		&username,
		&name,
	); err != nil {
		return nil, err
	}

	if note.UserID != nil {
		note.Owner = &entities.NoteOwner{ID: *note.UserID}
		if username != nil {
			note.Owner.Username = *username
		}
		if name != nil {
			note.Owner.Name = *name
		}
	}
	return &note, nil
}
