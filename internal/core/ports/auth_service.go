package ports

import (
	"context"

	"github.com/flowcrm/customer-system/internal/core/domain"
)

// LoginResult is returned by a successful login. SessionToken is the opaque
// server-side session reference set as a cookie; APIToken is a signed JWT for
// non-browser clients.
type LoginResult struct {
	SessionToken string
	APIToken     string
	User         *domain.User
}

// AuthService combines the bootstrap registration policy with the session
// gate consumed by every authenticated request.
type AuthService interface {
	// CanRegister reports whether the bootstrap registration is still open,
	// i.e. the user store is empty.
	CanRegister(ctx context.Context) (bool, error)
	// Register creates the single administrator account. Fails with
	// domain.ErrRegistrationClosed once any user exists.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies credentials (identifier is username or email) and
	// establishes a session.
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	// Authorize resolves a session token to its user, or
	// domain.ErrUnauthenticated.
	Authorize(ctx context.Context, token string) (*domain.User, error)
	// Logout destroys the session. Idempotent.
	Logout(ctx context.Context, token string) error
}
