// Package entities определяет доменные сущности сервиса заметок.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена заметок.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrEmptyContent = errors.New("content is required")
	ErrMalformedID  = errors.New("malformatted id")
)

// Note представляет собой заметку.
// UserID пуст только у заметок, созданных до появления владельцев.
type Note struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Important bool       `json:"important"`
	UserID    *string    `json:"-"`
	Owner     *NoteOwner `json:"user,omitempty"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

// NoteOwner - представление владельца внутри заметки.
type NoteOwner struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
}

// NewNote создает заметку, принадлежащую пользователю userID.
func NewNote(userID, content string, important bool) *Note {
	now := time.Now().UTC()
	return &Note{
		Content:   content,
		Important: important,
		UserID:    &userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// OwnerID возвращает идентификатор владельца или пустую строку.
func (n *Note) OwnerID() string {
	if n.UserID == nil {
		return ""
	}
	return *n.UserID
}
