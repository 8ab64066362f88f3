package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/pkg/resilience"
)

var errBoom = errors.New("boom")

func fastRetry(attempts int) resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = attempts
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 2 * time.Millisecond
	return cfg
}

func TestRetry(t *testing.T) {
	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := resilience.Retry(context.Background(), "test", fastRetry(3), func(context.Context) error {
			calls++
			if calls < 3 {
				return errBoom
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := resilience.Retry(context.Background(), "test", fastRetry(2), func(context.Context) error {
			calls++
			return errBoom
		})

		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, 2, calls)
	})

	t.Run("non retryable error stops immediately", func(t *testing.T) {
		cfg := fastRetry(5)
		cfg.ShouldRetry = func(err error) bool { return !errors.Is(err, errBoom) }

		calls := 0
		err := resilience.Retry(context.Background(), "test", cfg, func(context.Context) error {
			calls++
			return errBoom
		})

		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero attempts still runs once", func(t *testing.T) {
		calls := 0
		err := resilience.Retry(context.Background(), "test", fastRetry(0), func(context.Context) error {
			calls++
			return errBoom
		})

		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled while waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cfg := fastRetry(3)
		cfg.InitialBackoff = time.Hour

		err := resilience.Retry(ctx, "test", cfg, func(context.Context) error {
			cancel()
			return errBoom
		})

		require.ErrorIs(t, err, resilience.ErrRetryCanceled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryValue(t *testing.T) {
	calls := 0
	got, err := resilience.RetryValue(context.Background(), "test", fastRetry(3), func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errBoom
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestBreaker(t *testing.T) {
	ctx := context.Background()
	cfg := resilience.BreakerConfig{FailureThreshold: 2, Timeout: time.Minute, SuccessThreshold: 2}

	fail := func(context.Context) error { return errBoom }
	ok := func(context.Context) error { return nil }

	t.Run("opens after threshold and rejects", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		b := resilience.NewBreaker("test", cfg, resilience.WithBreakerClock(clock.Now))

		assert.ErrorIs(t, b.Execute(ctx, fail), errBoom)
		assert.Equal(t, resilience.StateClosed, b.State())
		assert.ErrorIs(t, b.Execute(ctx, fail), errBoom)
		assert.Equal(t, resilience.StateOpen, b.State())

		called := false
		err := b.Execute(ctx, func(context.Context) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
		assert.False(t, called)
	})

	t.Run("success resets failure count", func(t *testing.T) {
		b := resilience.NewBreaker("test", cfg)

		_ = b.Execute(ctx, fail)
		require.NoError(t, b.Execute(ctx, ok))
		_ = b.Execute(ctx, fail)

		assert.Equal(t, resilience.StateClosed, b.State())
	})

	t.Run("half open closes after successes", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		b := resilience.NewBreaker("test", cfg, resilience.WithBreakerClock(clock.Now))
		_ = b.Execute(ctx, fail)
		_ = b.Execute(ctx, fail)

		clock.Advance(time.Minute)

		require.NoError(t, b.Execute(ctx, ok))
		assert.Equal(t, resilience.StateHalfOpen, b.State())
		require.NoError(t, b.Execute(ctx, ok))
		assert.Equal(t, resilience.StateClosed, b.State())
	})

	t.Run("half open failure reopens", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		b := resilience.NewBreaker("test", cfg, resilience.WithBreakerClock(clock.Now))
		_ = b.Execute(ctx, fail)
		_ = b.Execute(ctx, fail)

		clock.Advance(time.Minute)
		assert.ErrorIs(t, b.Execute(ctx, fail), errBoom)
		assert.Equal(t, resilience.StateOpen, b.State())
	})

	t.Run("state names", func(t *testing.T) {
		assert.Equal(t, "closed", resilience.StateClosed.String())
		assert.Equal(t, "open", resilience.StateOpen.String())
		assert.Equal(t, "half-open", resilience.StateHalfOpen.String())
	})
}
