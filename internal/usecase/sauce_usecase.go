package usecase

import (
	"context"
	"io"

	"piquant/internal/domain/entity"

	"github.com/google/uuid"
)

// SauceFields carries the descriptive fields shared by create and update.
type SauceFields struct {
	Name         string `json:"name" validate:"required"`
	Manufacturer string `json:"manufacturer" validate:"required"`
	Description  string `json:"description" validate:"required"`
	MainPepper   string `json:"mainPepper" validate:"required"`
	Heat         int    `json:"heat" validate:"gte=0,lte=10"`
}

// CreateSauceInput defines the data required to create a sauce. The image
// is mandatory on creation.
type CreateSauceInput struct {
	OwnerID   uuid.UUID
	Fields    SauceFields
	Image     io.Reader
	ImageName string
}

// UpdateSauceInput defines the data required to update a sauce. Image is
// nil when the caller keeps the existing one.
type UpdateSauceInput struct {
	SauceID   uuid.UUID
	ActorID   uuid.UUID
	Fields    SauceFields
	Image     io.Reader
	ImageName string
}

// VoteInput defines a single vote request against a sauce.
type VoteInput struct {
	SauceID uuid.UUID
	UserID  uuid.UUID
	Intent  entity.VoteIntent
}

// SauceUsecase defines the interface for sauce-related business operations.
type SauceUsecase interface {
	CreateSauce(ctx context.Context, input *CreateSauceInput) (*entity.Sauce, error)
	GetSauce(ctx context.Context, id uuid.UUID) (*entity.Sauce, error)
	ListSauces(ctx context.Context) ([]*entity.Sauce, error)
	UpdateSauce(ctx context.Context, input *UpdateSauceInput) (*entity.Sauce, error)
	DeleteSauce(ctx context.Context, sauceID, actorID uuid.UUID) error

	// Vote applies the acting user's intent to the sauce through the vote
	// state machine and persists the resulting delta atomically.
	Vote(ctx context.Context, input *VoteInput) (*entity.Sauce, error)
}
