package services

import (
	"errors"
	"time"
)

// Ошибки проверки токенов.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpiredToken     = errors.New("token expired")
	ErrGeneratingToken  = errors.New("failed to generate token")
	ErrEmptySigningKey  = errors.New("empty signing key")
)

// DefaultTokenTTL - время жизни токена.
const DefaultTokenTTL = time.Hour

// Claims - набор утверждений, зашитых в токен.
// ExpiresAt = IssuedAt + TTL, токен действителен на интервале [IssuedAt, ExpiresAt).
type Claims struct {
	UserID    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
