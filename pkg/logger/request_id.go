package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKey struct{}

// NewRequestIDContext кладет в контекст идентификатор запроса.
// Пустой requestID заменяется новым UUID.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID возвращает идентификатор запроса, если он есть в контексте.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// GenerateRequestID возвращает новый идентификатор запроса.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID возвращает logger с постоянным полем request_id.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	id, ok := GetRequestID(ctx)
	if !ok {
		return l
	}
	return l.With(zap.String(RequestID, id))
}
