// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a testify mock of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockTokenService is a testify mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(userID uuid.UUID) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(token string) (uuid.UUID, error) {
	args := m.Called(token)
	userID, _ := args.Get(0).(uuid.UUID)

	return userID, args.Error(1)
}

// MockFileStorage is a testify mock of service.FileStorage.
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Store(ctx context.Context, content io.Reader, suggestedName string) (string, error) {
	args := m.Called(ctx, content, suggestedName)

	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Remove(ctx context.Context, url string) error {
	args := m.Called(ctx, url)

	return args.Error(0)
}
