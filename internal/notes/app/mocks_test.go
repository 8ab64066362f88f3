package app_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/services"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*entities.User)
	return created, args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*entities.User)
	return users, args.Error(1)
}

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) CreateOwned(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	created, _ := args.Get(0).(*entities.Note)
	return created, args.Error(1)
}

func (m *mockNoteRepository) List(ctx context.Context) ([]*entities.Note, error) {
	args := m.Called(ctx)
	notes, _ := args.Get(0).([]*entities.Note)
	return notes, args.Error(1)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	args := m.Called(ctx, noteID)
	note, _ := args.Get(0).(*entities.Note)
	return note, args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	updated, _ := args.Get(0).(*entities.Note)
	return updated, args.Error(1)
}

func (m *mockNoteRepository) Delete(ctx context.Context, noteID string) error {
	return m.Called(ctx, noteID).Error(0)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(ctx context.Context, userID, username string) (string, time.Time, error) {
	args := m.Called(ctx, userID, username)
	expiresAt, _ := args.Get(1).(time.Time)
	return args.String(0), expiresAt, args.Error(2)
}

func (m *mockTokenService) Validate(ctx context.Context, token string) (*services.Claims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*services.Claims)
	return claims, args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	args := make([]interface{}, 0, len(keys)+1)
	args = append(args, ctx)
	for _, k := range keys {
		args = append(args, k)
	}
	return m.Called(args...).Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}
