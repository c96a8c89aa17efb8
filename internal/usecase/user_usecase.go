// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// LoginOutput returns the identity and bearer token after a successful login.
type LoginOutput struct {
	UserID uuid.UUID `json:"userId"`
	Token  string    `json:"token"`
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Signup(ctx context.Context, input *SignupInput) error
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
