// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogSignalReceived = "shutdown signal received"
	LogHookFailed     = "shutdown hook failed"
	LogTimeoutExpired = "shutdown timeout expired before all hooks finished"
)

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM либо отмены ctx,
// затем выполняет все хуки в рамках заданного timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...func(context.Context) error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Log(ctx).Info(ctx, LogSignalReceived, zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run параллельно выполняет хуки и ждет их завершения не дольше timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...func(context.Context) error) {
	log := logger.Log(ctx)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var wgp sync.WaitGroup
	for _, hook := range hooks {
		wgp.Add(1)
		go func(fn func(context.Context) error) {
			defer wgp.Done()
			if err := fn(ctx); err != nil {
				log.Error(ctx, LogHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn(ctx, LogTimeoutExpired)
	}
}
