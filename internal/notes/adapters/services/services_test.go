package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gonotes/internal/notes/adapters/services"
	domainservices "gonotes/internal/notes/domain/services"
)

//nolint:gosec
const (
	testSecret   = "test-secret"
	testUserID   = "6f1d0c8e-2b7a-4f58-9a57-1f7c2a1b9e10"
	testUsername = "root"
	testPassword = "sekret"

	msgNoErrorValidPassword = "should not return error for valid password"
	msgHashVerifiable       = "created hash should be verifiable"
	msgTokenIssued          = "should issue token"
	msgTokenValid           = "token should validate"
	msgClaimsMatch          = "claims should match issued values"
)

var fixedNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestBcryptHash(t *testing.T) {
	service := services.NewBcrypt(bcrypt.MinCost, 2)
	ctx := context.Background()

	t.Run("valid password", func(t *testing.T) {
		hash, err := service.Hash(ctx, testPassword)

		require.NoError(t, err, msgNoErrorValidPassword)
		assert.NotEqual(t, testPassword, hash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(testPassword)), msgHashVerifiable)
	})

	t.Run("short password is accepted by the hasher", func(t *testing.T) {
		hash, err := service.Hash(ctx, "abc")

		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})

	t.Run("empty password", func(t *testing.T) {
		hash, err := service.Hash(ctx, "")

		require.Error(t, err)
		assert.Empty(t, hash)
		assert.ErrorIs(t, err, domainservices.ErrInvalidPassword)
	})

	t.Run("same password hashes differ", func(t *testing.T) {
		first, err := service.Hash(ctx, testPassword)
		require.NoError(t, err)
		second, err := service.Hash(ctx, testPassword)
		require.NoError(t, err)

		assert.NotEqual(t, first, second, "hashes of same password should differ due to salt")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := service.Hash(cancelled, testPassword)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBcryptCostFallback(t *testing.T) {
	service := services.NewBcrypt(bcrypt.MaxCost+1, 0)

	hash, err := service.Hash(context.Background(), testPassword)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptVerify(t *testing.T) {
	service := services.NewBcrypt(bcrypt.MinCost, 1)
	ctx := context.Background()

	hash, err := service.Hash(ctx, testPassword)
	require.NoError(t, err)

	testCases := []struct {
		name      string
		password  string
		hash      string
		wantMatch bool
		wantErr   bool
	}{
		{name: "matching password", password: testPassword, hash: hash, wantMatch: true},
		{name: "wrong password", password: "salainen", hash: hash},
		{name: "empty password", password: "", hash: hash},
		{name: "empty hash", password: testPassword, hash: ""},
		{name: "corrupted hash", password: testPassword, hash: "not-a-bcrypt-hash", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := service.Verify(ctx, tc.password, tc.hash)

			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.wantMatch, ok)
		})
	}
}

func TestBcryptVerifyEmptyPasswordUsesWorker(t *testing.T) {
	service := services.NewBcrypt(bcrypt.MinCost, 1)

	hash, err := service.Hash(context.Background(), testPassword)
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := service.Verify(cancelled, "", hash)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestJWTIssue(t *testing.T) {
	ctx := context.Background()
	issueAt := fixedNow.Add(750 * time.Millisecond)
	service := services.NewJWT(testSecret, time.Hour, services.WithClock(clockAt(issueAt)))

	token, expiresAt, err := service.Issue(ctx, testUserID, testUsername)
	require.NoError(t, err, msgTokenIssued)
	assert.Equal(t, fixedNow.Add(time.Hour), expiresAt)

	parsed := &services.Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, parsed)
	require.NoError(t, err)

	assert.Equal(t, testUserID, parsed.UserID)
	assert.Equal(t, testUsername, parsed.Username)
	require.NotNil(t, parsed.IssuedAt)
	require.NotNil(t, parsed.ExpiresAt)
	assert.Equal(t, int64(3600), parsed.ExpiresAt.Unix()-parsed.IssuedAt.Unix())
}

func TestJWTIssueEmptySecret(t *testing.T) {
	service := services.NewJWT("", time.Hour)

	token, _, err := service.Issue(context.Background(), testUserID, testUsername)

	require.Error(t, err)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, domainservices.ErrEmptySigningKey)
}

func TestJWTValidateLifetime(t *testing.T) {
	ctx := context.Background()
	issuer := services.NewJWT(testSecret, time.Hour, services.WithClock(clockAt(fixedNow)))
	token, _, err := issuer.Issue(ctx, testUserID, testUsername)
	require.NoError(t, err)

	testCases := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "at issue time", now: fixedNow},
		{name: "one minute later", now: fixedNow.Add(time.Minute)},
		{name: "just before expiry", now: fixedNow.Add(time.Hour - time.Nanosecond)},
		{name: "exactly at expiry", now: fixedNow.Add(time.Hour), wantErr: domainservices.ErrExpiredToken},
		{name: "after expiry", now: fixedNow.Add(time.Hour + time.Second), wantErr: domainservices.ErrExpiredToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			validator := services.NewJWT(testSecret, time.Hour, services.WithClock(clockAt(tc.now)))

			claims, err := validator.Validate(ctx, token)

			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err, msgTokenValid)
			assert.Equal(t, testUserID, claims.UserID, msgClaimsMatch)
			assert.Equal(t, testUsername, claims.Username, msgClaimsMatch)
			assert.True(t, claims.IssuedAt.Equal(fixedNow), msgClaimsMatch)
			assert.True(t, claims.ExpiresAt.Equal(fixedNow.Add(time.Hour)), msgClaimsMatch)
		})
	}
}

func signRaw(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTValidateRejects(t *testing.T) {
	ctx := context.Background()
	service := services.NewJWT(testSecret, time.Hour, services.WithClock(clockAt(fixedNow)))

	valid, _, err := service.Issue(ctx, testUserID, testUsername)
	require.NoError(t, err)
	other, _, err := service.Issue(ctx, testUserID, "mluukkai")
	require.NoError(t, err)

	validParts := strings.Split(valid, ".")
	otherParts := strings.Split(other, ".")
	tampered := strings.Join([]string{validParts[0], otherParts[1], validParts[2]}, ".")

	registered := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(fixedNow),
		ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
	}

	testCases := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "garbage",
			token:   "not.a.token",
			wantErr: domainservices.ErrMalformedToken,
		},
		{
			name:    "empty",
			token:   "",
			wantErr: domainservices.ErrMalformedToken,
		},
		{
			name:    "tampered payload",
			token:   tampered,
			wantErr: domainservices.ErrInvalidSignature,
		},
		{
			name: "foreign secret",
			token: signRaw(t, jwt.SigningMethodHS256, []byte("another-secret"), &services.Claims{
				UserID: testUserID, Username: testUsername, RegisteredClaims: registered,
			}),
			wantErr: domainservices.ErrInvalidSignature,
		},
		{
			name: "unexpected algorithm",
			token: signRaw(t, jwt.SigningMethodHS512, []byte(testSecret), &services.Claims{
				UserID: testUserID, Username: testUsername, RegisteredClaims: registered,
			}),
			wantErr: domainservices.ErrInvalidSignature,
		},
		{
			name: "none algorithm",
			token: signRaw(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, &services.Claims{
				UserID: testUserID, Username: testUsername, RegisteredClaims: registered,
			}),
			wantErr: domainservices.ErrInvalidSignature,
		},
		{
			name: "missing username",
			token: signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), &services.Claims{
				UserID: testUserID, RegisteredClaims: registered,
			}),
			wantErr: domainservices.ErrMalformedToken,
		},
		{
			name: "missing iat",
			token: signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), &services.Claims{
				UserID: testUserID, Username: testUsername,
				RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: registered.ExpiresAt},
			}),
			wantErr: domainservices.ErrMalformedToken,
		},
		{
			name: "missing exp",
			token: signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), &services.Claims{
				UserID: testUserID, Username: testUsername,
				RegisteredClaims: jwt.RegisteredClaims{IssuedAt: registered.IssuedAt},
			}),
			wantErr: domainservices.ErrMalformedToken,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := service.Validate(ctx, tc.token)

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTValidateTokenWithoutSubject(t *testing.T) {
	ctx := context.Background()
	service := services.NewJWT(testSecret, time.Hour, services.WithClock(clockAt(fixedNow)))

	token, _, err := service.Issue(ctx, "", testUsername)
	require.NoError(t, err)

	claims, err := service.Validate(ctx, token)
	require.NoError(t, err)
	assert.Empty(t, claims.UserID)
}

func TestServiceFactory(t *testing.T) {
	factory := services.NewServiceFactory(testSecret, time.Hour, bcrypt.MinCost, 1)

	require.NotNil(t, factory.PasswordService())
	require.NotNil(t, factory.TokenService())

	ctx := context.Background()
	token, _, err := factory.TokenService().Issue(ctx, testUserID, testUsername)
	require.NoError(t, err)
	_, err = factory.TokenService().Validate(ctx, token)
	assert.NoError(t, err)
}
