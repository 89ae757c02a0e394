package ports

import (
	"context"
	"errors"
)

// ErrNotFound is returned by MatchStore when no match is stored under the id.
var ErrNotFound = errors.New("stored match not found")

// StoredMatch is a saved match as persisted: its id and share code.
type StoredMatch struct {
	ID   string
	Code string
}

// MatchStore persists a user's saved matches.
type MatchStore interface {
	// Put creates or replaces the match stored under match.ID for userID.
	Put(ctx context.Context, userID string, match StoredMatch) error

	// Get returns the match stored under id, or ErrNotFound.
	Get(ctx context.Context, userID, id string) (StoredMatch, error)

	// List returns every match saved by userID.
	List(ctx context.Context, userID string) ([]StoredMatch, error)

	// Delete removes the match stored under id. Deleting a missing id is not an error.
	Delete(ctx context.Context, userID, id string) error
}
