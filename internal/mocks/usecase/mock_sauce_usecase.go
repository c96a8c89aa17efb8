// Package usecase provides testify mocks for the usecase interfaces.
package usecase

import (
	"context"

	"piquant/internal/domain/entity"
	"piquant/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSauceUsecase is a testify mock of usecase.SauceUsecase.
type MockSauceUsecase struct {
	mock.Mock
}

func (m *MockSauceUsecase) CreateSauce(ctx context.Context, input *usecase.CreateSauceInput) (*entity.Sauce, error) {
	args := m.Called(ctx, input)
	sauce, _ := args.Get(0).(*entity.Sauce)

	return sauce, args.Error(1)
}

func (m *MockSauceUsecase) GetSauce(ctx context.Context, id uuid.UUID) (*entity.Sauce, error) {
	args := m.Called(ctx, id)
	sauce, _ := args.Get(0).(*entity.Sauce)

	return sauce, args.Error(1)
}

func (m *MockSauceUsecase) ListSauces(ctx context.Context) ([]*entity.Sauce, error) {
	args := m.Called(ctx)
	sauces, _ := args.Get(0).([]*entity.Sauce)

	return sauces, args.Error(1)
}

func (m *MockSauceUsecase) UpdateSauce(ctx context.Context, input *usecase.UpdateSauceInput) (*entity.Sauce, error) {
	args := m.Called(ctx, input)
	sauce, _ := args.Get(0).(*entity.Sauce)

	return sauce, args.Error(1)
}

func (m *MockSauceUsecase) DeleteSauce(ctx context.Context, sauceID, actorID uuid.UUID) error {
	args := m.Called(ctx, sauceID, actorID)

	return args.Error(0)
}

func (m *MockSauceUsecase) Vote(ctx context.Context, input *usecase.VoteInput) (*entity.Sauce, error) {
	args := m.Called(ctx, input)
	sauce, _ := args.Get(0).(*entity.Sauce)

	return sauce, args.Error(1)
}
