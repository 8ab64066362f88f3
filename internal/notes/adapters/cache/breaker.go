package cache

import (
	"context"
	"errors"
	"time"

	"gonotes/internal/notes/ports/cache"
	"gonotes/pkg/resilience"
)

// BreakerCache пропускает чтение и запись через автоматический выключатель,
// чтобы недоступный Redis не задерживал каждый запрос.
// Delete выполняется всегда: пропущенная инвалидация оставила бы устаревшую заметку.
type BreakerCache struct {
	next    cache.Cache
	breaker *resilience.Breaker
}

// NewBreakerCache оборачивает next выключателем.
func NewBreakerCache(next cache.Cache, breaker *resilience.Breaker) cache.Cache {
	return &BreakerCache{next: next, breaker: breaker}
}

// Get возвращает промах без обращения к Redis, пока выключатель разомкнут.
func (c *BreakerCache) Get(ctx context.Context, key string) (string, error) {
	if !c.breaker.Allow(ctx) {
		return "", nil
	}

	value, err := c.next.Get(ctx, key)
	c.breaker.Record(ctx, err)
	return value, err
}

// Set пропускается, пока выключатель разомкнут.
func (c *BreakerCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.next.Set(ctx, key, value, ttl)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Delete удаляет ключи независимо от состояния выключателя.
func (c *BreakerCache) Delete(ctx context.Context, keys ...string) error {
	err := c.next.Delete(ctx, keys...)
	c.breaker.Record(ctx, err)
	return err
}

// Close закрывает вложенный кэш.
func (c *BreakerCache) Close() error {
	return c.next.Close()
}
