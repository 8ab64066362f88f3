// Package services реализует криптографические сервисы: хэширование паролей bcrypt
// и выпуск/проверку JWT токенов.
package services

import (
	"time"

	"gonotes/internal/notes/ports/services"
)

// ServiceFactory создает все необходимые сервисы для аутентификации.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory создает новую фабрику сервисов.
func NewServiceFactory(
	jwtSecretKey string,
	tokenTTL time.Duration,
	bcryptCost, hashWorkers int,
) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost, hashWorkers),
		tokenService:    NewJWT(jwtSecretKey, tokenTTL),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
