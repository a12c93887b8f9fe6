package ports

import (
	"context"

	"github.com/flowcrm/customer-system/internal/core/domain"
)

// UserRepository defines the interface for operator account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByIdentifier looks a user up by username or email in one query.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Count reports the number of stored users. The bootstrap policy queries
	// this cardinality directly rather than caching a registered flag.
	Count(ctx context.Context) (int64, error)
}
