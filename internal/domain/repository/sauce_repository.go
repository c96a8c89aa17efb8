// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"piquant/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for sauce persistence.
var (
	// ErrSauceNotFound is returned when a sauce id does not exist.
	ErrSauceNotFound = errors.New("sauce not found")
	// ErrVersionConflict is returned when a conditional vote write lost a
	// concurrent update race. Callers may retry against fresh state.
	ErrVersionConflict = errors.New("sauce version conflict")
)

// SauceRepository defines the standard operations for sauce persistence.
type SauceRepository interface {
	// FindByID retrieves a single sauce by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Sauce, error)

	// FindAll retrieves every sauce.
	FindAll(ctx context.Context) ([]*entity.Sauce, error)

	// Create persists a new sauce entity.
	Create(ctx context.Context, sauce *entity.Sauce) error

	// Update modifies the descriptive fields of an existing sauce.
	// Vote state is never written through this method.
	Update(ctx context.Context, sauce *entity.Sauce) error

	// Delete removes a sauce by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// ApplyVote persists a vote delta as one atomic write: counter changes
	// and membership add/removes land together, guarded by the version the
	// delta was computed against. A stale version yields ErrVersionConflict.
	ApplyVote(ctx context.Context, id uuid.UUID, version int64, delta entity.VoteDelta) error
}
