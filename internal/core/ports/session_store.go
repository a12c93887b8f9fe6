package ports

import (
	"context"
	"time"
)

// SessionStore maps opaque session tokens to user IDs. Implementations must
// be safe for concurrent use; the backing store is injected so a single
// process can run on the in-memory store and multi-process deployments on
// Redis.
type SessionStore interface {
	// Save records the token with the given lifetime.
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Get resolves a token to a user ID, or domain.ErrSessionNotFound when
	// the token is unknown or expired.
	Get(ctx context.Context, token string) (string, error)
	// Delete removes the token. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}
