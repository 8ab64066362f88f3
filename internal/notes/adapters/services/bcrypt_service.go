package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"gonotes/internal/notes/domain/services"
	svc "gonotes/internal/notes/ports/services"
)

const (
	errMsgFailedToGenerateHash = "failed to generate password hash"
	errMsgErrorComparingHash   = "error comparing password with hash"
	errMsgWaitingForWorker     = "waiting for hashing slot"
)

// ServiceBcrypt реализует интерфейс PasswordService.
// Одновременно выполняется не больше maxWorkers хэширований, остальные ждут слота
// или отмены контекста.
type ServiceBcrypt struct {
	cost    int
	workers *semaphore.Weighted
}

// NewBcrypt создает новый экземпляр сервиса bcrypt.
// maxWorkers <= 0 означает число логических CPU.
func NewBcrypt(cost, maxWorkers int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	return &ServiceBcrypt{
		cost:    cost,
		workers: semaphore.NewWeighted(int64(maxWorkers)),
	}
}

// Hash хэширует пароль с помощью bcrypt.
func (s *ServiceBcrypt) Hash(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", services.ErrInvalidPassword
	}

	if err := s.workers.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("%s: %w", errMsgWaitingForWorker, err)
	}
	defer s.workers.Release(1)

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgFailedToGenerateHash, services.ErrHashingFailed, err)
	}

	return string(hashedBytes), nil
}

// Verify проверяет соответствие пароля хэшу.
// Пустой пароль тоже сравнивается, чтобы время ответа от него не зависело.
func (s *ServiceBcrypt) Verify(ctx context.Context, password, hash string) (bool, error) {
	if hash == "" {
		return false, nil
	}

	if err := s.workers.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("%s: %w", errMsgWaitingForWorker, err)
	}
	defer s.workers.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", errMsgErrorComparingHash, err)
	}

	return true, nil
}
