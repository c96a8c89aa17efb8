package service

import "github.com/google/uuid"

// TokenService defines the interface for issuing and verifying the signed,
// self-contained bearer tokens that prove identity without server-side
// session state.
type TokenService interface {
	// Issue creates a signed token carrying the subject identity and an
	// expiry a fixed duration out.
	Issue(userID uuid.UUID) (string, error)

	// Verify checks signature integrity and expiry and extracts the subject.
	// Every failure path returns the same uniform authentication error so
	// callers never learn why a token was refused.
	Verify(token string) (uuid.UUID, error)
}
