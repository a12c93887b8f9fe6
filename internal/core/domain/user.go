package domain

import (
	"errors"
	"time"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRegistrationClosed = errors.New("registration closed")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrSessionNotFound    = errors.New("session not found")
)

// User models an operator account. Exactly one is created by the bootstrap
// registration; it is never deleted or demoted.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// RequireAdmin returns ErrForbidden unless the user holds the admin
// capability. Delete is the one operation gated beyond "any authenticated
// user".
func (u *User) RequireAdmin() error {
	if u == nil || !u.IsAdmin {
		return ErrForbidden
	}
	return nil
}
