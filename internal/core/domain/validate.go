package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ValidationError reports a single field that failed validation. Any
// validation failure aborts the whole write, so a persisted record can never
// hold a partially validated state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// ValidateEmail checks the canonical local@domain.tld shape: non-empty local
// part, a domain containing at least one dot, no whitespace. Returns the
// trimmed address.
func ValidateEmail(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !emailPattern.MatchString(s) {
		return "", &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	return s, nil
}

// ValidatePhone accepts an optional leading + followed by 7 to 15 digits.
// Spaces and dashes are stripped before the check and from the returned value.
func ValidatePhone(s string) (string, error) {
	s = strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
	if !phonePattern.MatchString(s) {
		return "", &ValidationError{Field: "phone", Reason: "must be 7-15 digits with an optional leading +"}
	}
	return s, nil
}

// ValidateSalary parses a non-negative decimal with at most two fractional
// digits and returns it in canonical two-decimal form, e.g. "45000.00".
func ValidateSalary(s string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "", &ValidationError{Field: "salary", Reason: "must be a decimal number"}
	}
	if d.IsNegative() {
		return "", &ValidationError{Field: "salary", Reason: "must not be negative"}
	}
	if d.Exponent() < -2 {
		return "", &ValidationError{Field: "salary", Reason: "at most two fractional digits"}
	}
	return d.StringFixed(2), nil
}

// ValidatePassword enforces the bootstrap password rule: at least six
// characters containing upper case, lower case, a digit, and a special
// character.
func ValidatePassword(pw string) error {
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if len(pw) < 6 || !upper || !lower || !digit || !special {
		return &ValidationError{Field: "password", Reason: "must be at least 6 characters with upper, lower, digit, and special characters"}
	}
	return nil
}
