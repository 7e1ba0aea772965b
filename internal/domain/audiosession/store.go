package audiosession

import (
	"context"
	"time"
)

// Store defines the interface for the session ledger.
// Expiry is driven by the Janitor in the infrastructure layer.
type Store interface {
	// Create records a new session.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*Session, error)

	// List returns all recorded sessions, oldest first.
	List(ctx context.Context) ([]*Session, error)

	// Delete removes a session by ID.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes every session expired at now and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
