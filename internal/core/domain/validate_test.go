package domain

import (
	"errors"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.com", "alice@example.co.uk", " padded@mail.io "}
	for _, in := range valid {
		if _, err := ValidateEmail(in); err != nil {
			t.Errorf("ValidateEmail(%q) returned error: %v", in, err)
		}
	}

	invalid := []string{"", "abc", "a@b", "a b@c.com", "@b.com", "a@.com "}
	for _, in := range invalid {
		if _, err := ValidateEmail(in); err == nil {
			t.Errorf("ValidateEmail(%q) expected error", in)
		}
	}

	got, err := ValidateEmail(" alice@x.com ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "alice@x.com" {
		t.Fatalf("expected trimmed address, got %q", got)
	}
}

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+12345678", "+12345678"},
		{"1234567", "1234567"},
		{"+1 999 888-7777", "+19998887777"},
		{"123456789012345", "123456789012345"},
	}
	for _, tc := range cases {
		got, err := ValidatePhone(tc.in)
		if err != nil {
			t.Errorf("ValidatePhone(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ValidatePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	invalid := []string{"", "123", "abc1234567", "++12345678", "1234567890123456"}
	for _, in := range invalid {
		if _, err := ValidatePhone(in); err == nil {
			t.Errorf("ValidatePhone(%q) expected error", in)
		}
	}
}

func TestValidateSalary(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"50000.50", "50000.50"},
		{"45000.00", "45000.00"},
		{"45000", "45000.00"},
		{"0", "0.00"},
		{"99.9", "99.90"},
	}
	for _, tc := range cases {
		got, err := ValidateSalary(tc.in)
		if err != nil {
			t.Errorf("ValidateSalary(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ValidateSalary(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	invalid := []string{"", "-100", "-5", "fifty", "10.123", "1,000"}
	for _, in := range invalid {
		if _, err := ValidateSalary(in); err == nil {
			t.Errorf("ValidateSalary(%q) expected error", in)
		}
	}
}

func TestValidationErrorField(t *testing.T) {
	_, err := ValidateSalary("-1")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Field != "salary" {
		t.Fatalf("expected field salary, got %q", ve.Field)
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("Str0ng!pw"); err != nil {
		t.Fatalf("expected strong password to pass: %v", err)
	}

	weak := []string{"", "pw1", "alllower1!", "ALLUPPER1!", "NoDigits!", "NoSpec1al"}
	for _, in := range weak {
		if err := ValidatePassword(in); err == nil {
			t.Errorf("ValidatePassword(%q) expected error", in)
		}
	}
}

func TestRequireAdmin(t *testing.T) {
	admin := &User{IsAdmin: true}
	if err := admin.RequireAdmin(); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}

	if err := (&User{}).RequireAdmin(); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	var missing *User
	if err := missing.RequireAdmin(); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for nil user, got %v", err)
	}
}
