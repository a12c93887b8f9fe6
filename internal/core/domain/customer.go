package domain

import (
	"errors"
	"time"
)

var ErrCustomerNotFound = errors.New("customer not found")

// Customer is the record maintained by operators. Email, phone, and salary
// pass through the validation functions in this package before every write,
// so a persisted customer never holds a malformed value.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Salary    string    `json:"salary"`
	Address   string    `json:"address,omitempty"`
	Job       string    `json:"job,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
