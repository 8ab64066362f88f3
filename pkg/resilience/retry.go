// Package resilience содержит повторные попытки с экспоненциальной задержкой
// и автоматический выключатель для нестабильных зависимостей.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// Константы для логирования.
const (
	LogRetryAttempt     = "operation failed, retrying"
	LogRetrySuccess     = "operation succeeded after retry"
	LogRetryMaxAttempts = "operation failed, attempts exhausted"
)

// ErrRetryCanceled возвращается, если контекст отменен во время ожидания.
var ErrRetryCanceled = errors.New("context canceled while waiting for retry")

// RetryConfig содержит настройки повторных попыток.
type RetryConfig struct {
	// MaxAttempts включает первую попытку.
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
	// ShouldRetry решает, стоит ли повторять после ошибки. nil означает retryable.
	ShouldRetry func(error) bool
}

// DefaultRetryConfig возвращает настройки по умолчанию.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
		ShouldRetry:    retryable,
	}
}

func retryable(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Retry выполняет op до успеха, неповторяемой ошибки или исчерпания попыток.
func Retry(ctx context.Context, name string, cfg RetryConfig, op func(context.Context) error) error {
	_, err := RetryValue(ctx, name, cfg, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// RetryValue работает как Retry, но возвращает результат последней успешной попытки.
func RetryValue[T any](ctx context.Context, name string, cfg RetryConfig, op func(context.Context) (T, error)) (T, error) {
	log := logger.Log(ctx).With(zap.String("retry", name))

	shouldRetry := cfg.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = retryable
	}
	attempts := max(cfg.MaxAttempts, 1)
	backoff := cfg.InitialBackoff

	var zero T
	for attempt := 1; ; attempt++ {
		value, err := op(ctx)
		if err == nil {
			if attempt > 1 {
				log.Info(ctx, LogRetrySuccess, zap.Int("attempts", attempt))
			}
			return value, nil
		}

		if !shouldRetry(err) {
			return zero, err
		}
		if attempt >= attempts {
			log.Warn(ctx, LogRetryMaxAttempts, zap.Int("attempts", attempt), zap.Error(err))
			return zero, err
		}

		log.Info(ctx, LogRetryAttempt,
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("%w: %w", ErrRetryCanceled, ctx.Err())
		}

		backoff = time.Duration(float64(backoff) * cfg.BackoffFactor)
		if cfg.MaxBackoff > 0 && backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}
}
