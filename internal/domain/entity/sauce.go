package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Sauce is a votable resource: a hot sauce submitted by a user, carrying
// its description fields and the aggregate vote state.
//
// The sauce is the sole owner of its counters and membership sets. The
// following invariants hold at all times:
//
//	Likes == len(UsersLiked)
//	Dislikes == len(UsersDisliked)
//	UsersLiked and UsersDisliked are disjoint
//	each user appears at most once in each set
type Sauce struct {
	ID            uuid.UUID   `json:"id"`            // The unique identifier for the sauce.
	OwnerID       uuid.UUID   `json:"userId"`        // The user who created the sauce. Only the owner may edit or delete it.
	Name          string      `json:"name"`          // Display name of the sauce.
	Manufacturer  string      `json:"manufacturer"`  // Who makes the sauce.
	Description   string      `json:"description"`   // Free-form description.
	MainPepper    string      `json:"mainPepper"`    // The main pepper ingredient.
	ImageURL      string      `json:"imageUrl"`      // Public URL of the uploaded sauce image.
	Heat          int         `json:"heat"`          // Heat rating from 0 to 10.
	Likes         int         `json:"likes"`         // Aggregate like counter. Mirrors len(UsersLiked).
	Dislikes      int         `json:"dislikes"`      // Aggregate dislike counter. Mirrors len(UsersDisliked).
	UsersLiked    []uuid.UUID `json:"usersLiked"`    // Users who currently like the sauce.
	UsersDisliked []uuid.UUID `json:"usersDisliked"` // Users who currently dislike the sauce.
	Version       int64       `json:"-"`             // Optimistic-lock version, bumped on every vote write. Never leaves the server.
	CreatedAt     time.Time   `json:"createdAt"`     // Timestamp of when the sauce was created.
	UpdatedAt     time.Time   `json:"updatedAt"`     // Timestamp of the last modification.
}

// StanceOf reports the user's current vote membership on the sauce.
func (s *Sauce) StanceOf(userID uuid.UUID) VoteStance {
	if slices.Contains(s.UsersLiked, userID) {
		return StanceLiked
	}
	if slices.Contains(s.UsersDisliked, userID) {
		return StanceDisliked
	}

	return StanceNeutral
}
