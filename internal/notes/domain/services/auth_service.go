// Package services содержит доменные типы и ошибки аутентификации.
package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrMissingToken       = errors.New("missing bearer token")
	ErrMissingSubject     = errors.New("token has no subject")
	ErrTokenIssueFailed   = errors.New("failed to issue authentication token")
)

// BearerPrefix - обязательный префикс заголовка authorization.
const BearerPrefix = "Bearer "

// LoginResult - результат успешного входа.
type LoginResult struct {
	Token     string
	Username  string
	Name      string
	ExpiresAt time.Time
}

// Identity - личность, установленная по валидному токену.
type Identity struct {
	UserID   string
	Username string
}
