// Package services определяет выходные порты для криптографических сервисов.
package services

import "context"

// PasswordService определяет операции для манипулирования паролем.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)

	// Verify возвращает false без ошибки, если пароль не совпадает.
	Verify(ctx context.Context, password, hash string) (bool, error)
}
