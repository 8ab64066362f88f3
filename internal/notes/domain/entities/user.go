package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters long")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 3 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes long")
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("expected `username` to be unique")
)

// Ограничения на учетные данные.
const (
	MinUsernameLength = 3
	MinPasswordLength = 3

	// MaxPasswordBytes - предел bcrypt, длина в байтах.
	MaxPasswordBytes = 72
)

// User представляет зарегистрированного пользователя.
// PasswordHash никогда не сериализуется в ответы.
type User struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	Name         string      `json:"name"`
	PasswordHash string      `json:"-"`
	NoteIDs      []string    `json:"-"`
	Notes        []*UserNote `json:"notes"`
	CreatedAt    time.Time   `json:"-"`
}

// UserNote - краткое представление заметки в профиле владельца.
type UserNote struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Important bool   `json:"important"`
}
