// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a single account that can log in and act on sauces.
// The account is immutable once created; there is no password-change flow.
type User struct {
	ID           uuid.UUID `json:"id"`        // The unique identifier for the user.
	Email        string    `json:"email"`     // The user's login identifier. Unique across all accounts.
	PasswordHash string    `json:"-"`         // The bcrypt-hashed password. Never serialized or exposed in plaintext.
	CreatedAt    time.Time `json:"createdAt"` // Timestamp of when this account was created.
}
