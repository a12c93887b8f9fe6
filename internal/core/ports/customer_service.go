package ports

import (
	"context"

	"github.com/flowcrm/customer-system/internal/core/domain"
)

// CustomerInput carries the mutable customer fields as submitted by the
// caller. Email, phone, and salary are validated and normalized before any
// write; name is required; address and job are optional free text.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Salary  string
	Address string
	Job     string
}

// CustomerService defines the use-case operations on customer records. Every
// mutation validates all fields first; a single failing field aborts the
// whole write.
type CustomerService interface {
	Create(ctx context.Context, input CustomerInput, createdBy string) (*domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Update(ctx context.Context, id string, input CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
