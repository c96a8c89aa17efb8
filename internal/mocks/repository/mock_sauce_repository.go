package repository

import (
	"context"

	"piquant/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSauceRepository is a testify mock of repository.SauceRepository.
type MockSauceRepository struct {
	mock.Mock
}

func (m *MockSauceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Sauce, error) {
	args := m.Called(ctx, id)
	sauce, _ := args.Get(0).(*entity.Sauce)

	return sauce, args.Error(1)
}

func (m *MockSauceRepository) FindAll(ctx context.Context) ([]*entity.Sauce, error) {
	args := m.Called(ctx)
	sauces, _ := args.Get(0).([]*entity.Sauce)

	return sauces, args.Error(1)
}

func (m *MockSauceRepository) Create(ctx context.Context, sauce *entity.Sauce) error {
	args := m.Called(ctx, sauce)

	return args.Error(0)
}

func (m *MockSauceRepository) Update(ctx context.Context, sauce *entity.Sauce) error {
	args := m.Called(ctx, sauce)

	return args.Error(0)
}

func (m *MockSauceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockSauceRepository) ApplyVote(ctx context.Context, id uuid.UUID, version int64, delta entity.VoteDelta) error {
	args := m.Called(ctx, id, version, delta)

	return args.Error(0)
}
