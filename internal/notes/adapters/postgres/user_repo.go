package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

const (
	queryInsertUser = `
        INSERT INTO users (username, name, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id::text, username, name, password_hash, note_ids::text[], created_at
    `

	queryUserByUsername = `
        SELECT id::text, username, name, password_hash, note_ids::text[], created_at
        FROM users
        WHERE username = $1
    `

	// Заметки выбираются в порядке note_ids, то есть в порядке создания.
	queryUsersWithNotes = `
        SELECT u.id::text, u.username, u.name, u.password_hash, u.note_ids::text[], u.created_at,
               n.id::text, n.content, n.important
        FROM users u
        LEFT JOIN LATERAL unnest(u.note_ids) WITH ORDINALITY AS r(note_id, pos) ON true
        LEFT JOIN notes n ON n.id = r.note_id
    `
	queryUsersWithNotesWhereID = queryUsersWithNotes + `
        WHERE u.id = $1
        ORDER BY r.pos
    `
	queryUsersWithNotesOrdered = queryUsersWithNotes + `
        ORDER BY u.created_at, u.id, r.pos
    `
)

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	var created entities.User
	err := r.pool.QueryRow(ctx, queryInsertUser,
		user.Username,
		user.Name,
		user.PasswordHash,
	).Scan(
		&created.ID,
		&created.Username,
		&created.Name,
		&created.PasswordHash,
		&created.NoteIDs,
		&created.CreatedAt,
	)
	if err != nil {
		if hasCode(err, codeUniqueViolation) {
			log.Debug(ctx, "username already taken", zap.String("username", user.Username))
			return nil, entities.ErrUsernameTaken
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	created.Notes = []*entities.UserNote{}
	log.Debug(ctx, "user created", zap.String("userID", created.ID))
	return &created, nil
}

// FindByUsername находит пользователя по имени пользователя.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByUsername"))

	var user entities.User
	err := r.pool.QueryRow(ctx, queryUserByUsername, username).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.PasswordHash,
		&user.NoteIDs,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("username", username))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by username", zap.Error(err))
		return nil, fmt.Errorf("error querying user by username: %w", err)
	}

	return &user, nil
}

// FindByID находит пользователя по ID вместе с его заметками.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	users, err := r.queryWithNotes(ctx, queryUsersWithNotesWhereID, id)
	if err != nil {
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}
	if len(users) == 0 {
		log.Debug(ctx, "user not found", zap.String("id", id))
		return nil, entities.ErrUserNotFound
	}

	return users[0], nil
}

// List возвращает всех пользователей с заметками.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "List"))

	users, err := r.queryWithNotes(ctx, queryUsersWithNotesOrdered)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	log.Debug(ctx, "users listed", zap.Int("count", len(users)))
	return users, nil
}

// queryWithNotes собирает пользователей из строк соединения users x notes.
// Строки одного пользователя идут подряд.
func (r *UserRepository) queryWithNotes(ctx context.Context, query string, args ...interface{}) ([]*entities.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	var current *entities.User

	for rows.Next() {
		var (
			userID, username, name, passwordHash string
			noteIDs                              []string
			createdAt                            time.Time
			noteID, content                      *string
			important                            *bool
		)
		if err := rows.Scan(
			&userID, &username, &name, &passwordHash, &noteIDs, &createdAt,
			&noteID, &content, &important,
		); err != nil {
			return nil, err
		}

		if current == nil || current.ID != userID {
			current = &entities.User{
				ID:           userID,
				Username:     username,
				Name:         name,
				PasswordHash: passwordHash,
				NoteIDs:      noteIDs,
				Notes:        []*entities.UserNote{},
				CreatedAt:    createdAt,
			}
			users = append(users, current)
		}

		if noteID == nil {
			continue
		}
		note := &entities.UserNote{ID: *noteID}
		if content != nil {
			note.Content = *content
		}
		if important != nil {
			note.Important = *important
		}
		current.Notes = append(current.Notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
