package entity

import (
	"slices"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrInvalidVoteIntent is returned when the wire value is outside {1, -1, 0}.
var ErrInvalidVoteIntent = errors.New("vote intent must be 1, -1 or 0")

// VoteIntent is the caller-submitted desired vote direction for a single
// request. It is consumed immediately and never persisted on its own.
type VoteIntent int

const (
	IntentNeutral VoteIntent = 0  // Explicit undo of the current vote.
	IntentLike    VoteIntent = 1  // The user likes the sauce.
	IntentDislike VoteIntent = -1 // The user dislikes the sauce.
)

// ParseVoteIntent maps the wire value of the "like" field to an intent.
func ParseVoteIntent(raw int) (VoteIntent, error) {
	switch raw {
	case 1:
		return IntentLike, nil
	case -1:
		return IntentDislike, nil
	case 0:
		return IntentNeutral, nil
	default:
		return 0, errors.WithStack(ErrInvalidVoteIntent)
	}
}

// VoteStance is a user's current membership on a sauce, derived from the
// membership sets rather than stored separately.
type VoteStance int

const (
	StanceNeutral VoteStance = iota
	StanceLiked
	StanceDisliked
)

// VoteDelta describes the combined counter and membership changes produced
// by one vote transition. The whole delta must be persisted as a single
// atomic write so counters and sets can never disagree.
type VoteDelta struct {
	UserID         uuid.UUID // The acting user.
	Likes          int       // Change to the like counter: -1, 0 or +1.
	Dislikes       int       // Change to the dislike counter: -1, 0 or +1.
	AddLiked       bool      // Add the user to UsersLiked.
	RemoveLiked    bool      // Remove the user from UsersLiked.
	AddDisliked    bool      // Add the user to UsersDisliked.
	RemoveDisliked bool      // Remove the user from UsersDisliked.
}

// IsZero reports whether the transition is a no-op.
func (d VoteDelta) IsZero() bool {
	return d.Likes == 0 && d.Dislikes == 0 &&
		!d.AddLiked && !d.RemoveLiked && !d.AddDisliked && !d.RemoveDisliked
}

// VoteDelta computes the state transition for the acting user's intent
// against the sauce's current state. It is a pure function: the sauce is
// not modified, and all nine (stance, intent) combinations are explicit.
// Repeating the same intent yields a zero delta, which makes votes safe to
// retry without double-counting.
func (s *Sauce) VoteDelta(userID uuid.UUID, intent VoteIntent) VoteDelta {
	delta := VoteDelta{UserID: userID}

	switch stance := s.StanceOf(userID); {
	case stance == StanceNeutral && intent == IntentLike:
		delta.Likes = 1
		delta.AddLiked = true
	case stance == StanceNeutral && intent == IntentDislike:
		delta.Dislikes = 1
		delta.AddDisliked = true
	case stance == StanceNeutral && intent == IntentNeutral:
		// Nothing to undo.
	case stance == StanceLiked && intent == IntentLike:
		// Idempotent repeat.
	case stance == StanceLiked && intent == IntentDislike:
		delta.Likes = -1
		delta.RemoveLiked = true
		delta.Dislikes = 1
		delta.AddDisliked = true
	case stance == StanceLiked && intent == IntentNeutral:
		delta.Likes = -1
		delta.RemoveLiked = true
	case stance == StanceDisliked && intent == IntentLike:
		delta.Dislikes = -1
		delta.RemoveDisliked = true
		delta.Likes = 1
		delta.AddLiked = true
	case stance == StanceDisliked && intent == IntentDislike:
		// Idempotent repeat.
	case stance == StanceDisliked && intent == IntentNeutral:
		delta.Dislikes = -1
		delta.RemoveDisliked = true
	}

	return delta
}

// ApplyVoteDelta applies a previously computed delta to the in-memory
// sauce. Persistence applies the same delta in one conditional write; this
// keeps the returned entity consistent without a re-read.
func (s *Sauce) ApplyVoteDelta(delta VoteDelta) {
	s.Likes += delta.Likes
	s.Dislikes += delta.Dislikes

	if delta.RemoveLiked {
		s.UsersLiked = slices.DeleteFunc(s.UsersLiked, func(id uuid.UUID) bool {
			return id == delta.UserID
		})
	}
	if delta.RemoveDisliked {
		s.UsersDisliked = slices.DeleteFunc(s.UsersDisliked, func(id uuid.UUID) bool {
			return id == delta.UserID
		})
	}
	if delta.AddLiked && !slices.Contains(s.UsersLiked, delta.UserID) {
		s.UsersLiked = append(s.UsersLiked, delta.UserID)
	}
	if delta.AddDisliked && !slices.Contains(s.UsersDisliked, delta.UserID) {
		s.UsersDisliked = append(s.UsersDisliked, delta.UserID)
	}

	if !delta.IsZero() {
		s.Version++
	}
}
