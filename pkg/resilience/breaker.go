package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// State - состояние выключателя.
type State int

// Состояния выключателя.
const (
	// StateClosed - вызовы проходят.
	StateClosed State = iota
	// StateOpen - вызовы отклоняются до истечения Timeout.
	StateOpen
	// StateHalfOpen - пробные вызовы.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Константы для логирования.
const (
	LogBreakerStateChange = "circuit breaker state changed"
)

// ErrCircuitOpen возвращается, пока выключатель разомкнут.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// BreakerConfig содержит настройки выключателя.
type BreakerConfig struct {
	// FailureThreshold - число ошибок подряд, после которого выключатель размыкается.
	FailureThreshold int
	// Timeout - время в разомкнутом состоянии до пробных вызовов.
	Timeout time.Duration
	// SuccessThreshold - число успешных пробных вызовов для замыкания.
	SuccessThreshold int
}

// DefaultBreakerConfig возвращает настройки по умолчанию.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// BreakerOption настраивает Breaker.
type BreakerOption func(*Breaker)

// WithBreakerClock подменяет источник времени.
func WithBreakerClock(now func() time.Time) BreakerOption {
	return func(b *Breaker) {
		b.now = now
	}
}

// Breaker реализует автоматический выключатель.
type Breaker struct {
	name string
	cfg  BreakerConfig
	now  func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	changedAt time.Time
}

// NewBreaker создает замкнутый выключатель.
func NewBreaker(name string, cfg BreakerConfig, opts ...BreakerOption) *Breaker {
	b := &Breaker{
		name: name,
		cfg:  cfg,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.changedAt = b.now()
	return b
}

// Execute вызывает fn, если выключатель это позволяет, и учитывает результат.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if !b.Allow(ctx) {
		return ErrCircuitOpen
	}

	err := fn(ctx)
	b.Record(ctx, err)
	return err
}

// Allow сообщает, можно ли выполнить вызов.
func (b *Breaker) Allow(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.changedAt) < b.cfg.Timeout {
			return false
		}
		b.setState(ctx, StateHalfOpen)
	}
	return true
}

// Record учитывает результат вызова.
func (b *Breaker) Record(ctx context.Context, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		if b.state == StateHalfOpen || b.failures >= b.cfg.FailureThreshold {
			b.setState(ctx, StateOpen)
		}
		return
	}

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.setState(ctx, StateClosed)
		}
	}
}

// State возвращает текущее состояние.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// setState вызывается под b.mu.
func (b *Breaker) setState(ctx context.Context, state State) {
	if b.state == state {
		return
	}

	logger.Log(ctx).Info(ctx, LogBreakerStateChange,
		zap.String("circuit_breaker", b.name),
		zap.Stringer("from", b.state),
		zap.Stringer("to", state),
		zap.Int("failures", b.failures))

	b.state = state
	b.changedAt = b.now()
	b.failures = 0
	b.successes = 0
}
