// Package main реализует точку входа службы заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gonotes/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger = "failed to initialize logger"
	ErrSyncLogger = "failed to sync logger"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == string(logger.Production) {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	exitCode := 0
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		exitCode = 1
	}

	syncLogger()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// syncLogger сбрасывает буферы текущего глобального logger.
func syncLogger() {
	err := logger.Log(context.Background()).Sync()
	if err == nil {
		return
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
		return
	}
	if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
		panic(writeErr)
	}
}
