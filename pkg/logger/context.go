package logger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Ошибки logger.
var (
	ErrLoggerNotFound   = errors.New("logger not found in context")
	ErrInitGlobalLogger = errors.New("failed to initialize global logger")
)

type loggerKey struct{}

var (
	global   atomic.Pointer[Logger]
	initMu sync.Mutex

	// fallback пишет только предупреждения и ошибки, пока глобальный logger не задан.
	fallback = newFallback()
)

func newFallback() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	zapLogger, err := cfg.Build()
	if err != nil {
		return NewNop()
	}
	return &Logger{l: zapLogger.With(zap.String("logger", "fallback"))}
}

// NewContext возвращает контекст, несущий logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext извлекает logger из контекста.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx == nil {
		return nil, ErrLoggerNotFound
	}
	if logger, ok := ctx.Value(loggerKey{}).(*Logger); ok && logger != nil {
		return logger, nil
	}
	return nil, ErrLoggerNotFound
}

// InitGlobalLoggerWithLevel задает глобальный logger, если он еще не задан.
func InitGlobalLoggerWithLevel(env Environment, level string) error {
	initMu.Lock()
	defer initMu.Unlock()

	if global.Load() != nil {
		return nil
	}

	logger, err := NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitGlobalLogger, err)
	}
	global.Store(logger)
	return nil
}

// SetGlobalLogger заменяет глобальный logger. nil сбрасывает его.
func SetGlobalLogger(logger *Logger) {
	global.Store(logger)
}

// Log возвращает logger из контекста, иначе глобальный, иначе резервный.
func Log(ctx context.Context) *Logger {
	if logger, err := FromContext(ctx); err == nil {
		return logger
	}
	if logger := global.Load(); logger != nil {
		return logger
	}
	return fallback
}
