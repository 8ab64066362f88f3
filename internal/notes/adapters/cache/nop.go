package cache

import (
	"context"
	"time"

	"gonotes/internal/notes/ports/cache"
)

// Nop - кэш, который ничего не хранит. Используется, когда Redis отключен.
type Nop struct{}

// NewNop возвращает пустой кэш.
func NewNop() cache.Cache {
	return Nop{}
}

// Get всегда сообщает о промахе.
func (Nop) Get(context.Context, string) (string, error) { return "", nil }

// Set ничего не делает.
func (Nop) Set(context.Context, string, string, time.Duration) error { return nil }

// Delete ничего не делает.
func (Nop) Delete(context.Context, ...string) error { return nil }

// Close ничего не делает.
func (Nop) Close() error { return nil }
