// Package app реализует бизнес-логику сервиса заметок.
package app

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/services"
	"gonotes/internal/notes/ports/api"
	"gonotes/internal/notes/ports/repositories"
	svc "gonotes/internal/notes/ports/services"
	"gonotes/pkg/logger"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"

	entityUser    = "User"
	fieldUsername = "username"
	fieldName     = "name"
	fieldPassword = "password"

	msgStartRegistration  = "starting user registration"
	msgValidationFailed   = "validation failed"
	msgUsernameTaken      = "username already taken"
	msgUserRegistered     = "user registered successfully"
	msgLoginAttempt       = "login attempt"
	msgLoginUnknownUser   = "login attempt with non-existent username"
	msgLoginWrongPassword = "invalid password provided"
	msgUserLoggedIn       = "user logged in successfully"

	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user by username"
	msgErrVerifyingPassword = "error verifying password"
	msgErrIssueToken        = "failed to issue token on login"

	errCtxHashingPassword   = "hashing password"
	errCtxCreatingUser      = "creating user"
	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
	errCtxIssuingToken      = "issuing token"
)

// dummyPasswordHash сравнивается с паролем, когда пользователь не найден,
// чтобы время ответа не выдавало существование имени.
//
//nolint:gosec
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает нового пользователя с предоставленными учетными данными.
func (a *AuthUseCaseImpl) Register(ctx context.Context, username, name, password string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("username", username))
	log.Debug(ctx, msgStartRegistration)

	if err := validateRegistration(username, name, password); err != nil {
		log.Debug(ctx, msgValidationFailed, zap.Error(err))
		return nil, err
	}

	hash, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	created, err := a.userRepo.Create(ctx, &entities.User{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, entities.ErrUsernameTaken) {
			log.Debug(ctx, msgUsernameTaken)
			return nil, entities.NewValidationError(entityUser, fieldUsername, entities.ErrUsernameTaken)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", created.ID))
	return created, nil
}

// Login проверяет учетные данные и выдает токен.
// Неизвестное имя и неверный пароль неразличимы для вызывающего.
func (a *AuthUseCaseImpl) Login(ctx context.Context, username, password string) (*services.LoginResult, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			_, _ = a.passwordSvc.Verify(ctx, password, dummyPasswordHash)
			log.Debug(ctx, msgLoginUnknownUser)
			return nil, services.ErrInvalidCredentials
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	ok, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		log.Debug(ctx, msgLoginWrongPassword)
		return nil, services.ErrInvalidCredentials
	}

	token, expiresAt, err := a.tokenSvc.Issue(ctx, user.ID, user.Username)
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxIssuingToken, services.ErrTokenIssueFailed, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return &services.LoginResult{
		Token:     token,
		Username:  user.Username,
		Name:      user.Name,
		ExpiresAt: expiresAt,
	}, nil
}

func validateRegistration(username, name, password string) error {
	if utf8.RuneCountInString(username) < entities.MinUsernameLength {
		return entities.NewValidationError(entityUser, fieldUsername, entities.ErrUsernameTooShort)
	}
	if name == "" {
		return entities.NewValidationError(entityUser, fieldName, entities.ErrEmptyName)
	}
	if utf8.RuneCountInString(password) < entities.MinPasswordLength {
		return entities.NewValidationError(entityUser, fieldPassword, entities.ErrPasswordTooShort)
	}
	if len(password) > entities.MaxPasswordBytes {
		return entities.NewValidationError(entityUser, fieldPassword, entities.ErrPasswordTooLong)
	}
	return nil
}
