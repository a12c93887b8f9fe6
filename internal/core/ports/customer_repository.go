package ports

import (
	"context"

	"github.com/flowcrm/customer-system/internal/core/domain"
)

// CustomerRepository defines persistence operations for customer records.
// The repository has no capability awareness: admin gating happens before it
// is called.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	// List returns all customers in insertion order.
	List(ctx context.Context) ([]*domain.Customer, error)
	// Update replaces the mutable fields of the identified customer
	// atomically, or returns domain.ErrCustomerNotFound.
	Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
