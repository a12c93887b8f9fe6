package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/flowcrm/customer-system/internal/core/domain"
	"github.com/flowcrm/customer-system/internal/core/ports"
)

// CustomerService orchestrates validation and persistence of customer
// records. All three field validators run before any repository call, so a
// failing field leaves the store untouched.
type CustomerService struct {
	repo   ports.CustomerRepository
	logger zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

func (s *CustomerService) Create(ctx context.Context, input ports.CustomerInput, createdBy string) (*domain.Customer, error) {
	fields, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Salary:    fields.Salary,
		Address:   fields.Address,
		Job:       fields.Job,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create customer")
		return nil, err
	}

	s.logger.Info().Str("customer_id", created.ID).Str("created_by", createdBy).Msg("customer created")
	return created, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all customers in insertion order.
func (s *CustomerService) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.repo.List(ctx)
}

// Update validates the submitted fields and then replaces all mutable fields
// of the record in one write.
func (s *CustomerService) Update(ctx context.Context, id string, input ports.CustomerInput) (*domain.Customer, error) {
	fields, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = fields.Name
	existing.Email = fields.Email
	existing.Phone = fields.Phone
	existing.Salary = fields.Salary
	existing.Address = fields.Address
	existing.Job = fields.Job
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", id).Msg("failed to update customer")
		return nil, err
	}

	s.logger.Info().Str("customer_id", id).Msg("customer updated")
	return updated, nil
}

// Delete removes the record. Admin capability is enforced by the caller; this
// layer trusts the gate already ran.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("customer_id", id).Msg("customer deleted")
	return nil
}

func (s *CustomerService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// validateInput runs the full validation engine over the submitted fields and
// returns the normalized values. The first failing field aborts the write.
func validateInput(input ports.CustomerInput) (ports.CustomerInput, error) {
	if input.Name == "" {
		return ports.CustomerInput{}, &domain.ValidationError{Field: "name", Reason: "is required"}
	}

	email, err := domain.ValidateEmail(input.Email)
	if err != nil {
		return ports.CustomerInput{}, err
	}
	phone, err := domain.ValidatePhone(input.Phone)
	if err != nil {
		return ports.CustomerInput{}, err
	}
	salary, err := domain.ValidateSalary(input.Salary)
	if err != nil {
		return ports.CustomerInput{}, err
	}

	return ports.CustomerInput{
		Name:    input.Name,
		Email:   email,
		Phone:   phone,
		Salary:  salary,
		Address: input.Address,
		Job:     input.Job,
	}, nil
}
