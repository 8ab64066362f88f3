package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"gonotes/internal/notes/domain/services"
	svc "gonotes/internal/notes/ports/services"
	"gonotes/pkg/logger"
)

// Константы для работы с JWT.
//
//nolint:gosec
const (
	methodIssue         = "Issue"
	methodValidate      = "Validate"
	msgIssuingToken     = "issuing access token"
	msgValidatingToken  = "validating access token"
	msgTokenIssued      = "token issued successfully"
	msgTokenValidated   = "token validated successfully"
	msgTokenRejected    = "token rejected"
	errMsgSigningToken  = "error signing token"
	errCtxIssuing       = "issuing token"
	errCtxValidating    = "validating token"
	reasonMissingClaims = "missing required claim"
)

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService поверх HS256.
type ServiceJWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// JWTOption настраивает ServiceJWT.
type JWTOption func(*ServiceJWT)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) JWTOption {
	return func(s *ServiceJWT) {
		s.now = now
	}
}

// NewJWT создает новый экземпляр сервиса JWT. Ключ копируется и далее не меняется.
func NewJWT(secretKey string, ttl time.Duration, opts ...JWTOption) svc.TokenService {
	if ttl <= 0 {
		ttl = services.DefaultTokenTTL
	}
	s := &ServiceJWT{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func domainToJWTClaims(claims services.Claims) Claims {
	return Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
}

func jwtToDomainClaims(claims *Claims) *services.Claims {
	out := &services.Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out
}

// Issue подписывает набор утверждений {id, username, iat, exp}.
func (s *ServiceJWT) Issue(ctx context.Context, userID, username string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssue),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgIssuingToken)

	if len(s.secretKey) == 0 {
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxIssuing, services.ErrGeneratingToken, services.ErrEmptySigningKey)
	}

	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, domainToJWTClaims(services.Claims{
		UserID:    userID,
		Username:  username,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}))

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, errMsgSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxIssuing, services.ErrGeneratingToken, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// Validate проверяет подпись и срок действия токена.
// Токен действителен, пока now < exp.
func (s *ServiceJWT) Validate(ctx context.Context, tokenString string) (*services.Claims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidate))
	log.Debug(ctx, msgValidatingToken)

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) {
			return s.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		mapped := classifyParseError(err)
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, mapped)
	}

	if claims.Username == "" || claims.IssuedAt == nil {
		log.Debug(ctx, msgTokenRejected, zap.String("reason", reasonMissingClaims))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, services.ErrMalformedToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.UserID))
	return jwtToDomainClaims(claims), nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return services.ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return services.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return services.ErrExpiredToken
	default:
		return services.ErrMalformedToken
	}
}
