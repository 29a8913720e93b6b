package service

import (
	"fmt"
	"unicode"

	"github.com/pxeeio/flex-api/internal/config"
)

// PasswordPolicy checks plaintext passwords against the configured admission
// rules before they are hashed. It applies to registration and password
// changes only; login never consults the policy.
type PasswordPolicy struct {
	minLength int
	maxLength int
	minDigits int
}

// NewPasswordPolicy builds a [PasswordPolicy] from the application config.
func NewPasswordPolicy(cfg config.App) *PasswordPolicy {
	return &PasswordPolicy{
		minLength: cfg.PasswordMinLength,
		maxLength: cfg.PasswordMaxLength,
		minDigits: cfg.PasswordMinDigits,
	}
}

// Validate returns the ordered list of violated rules as user-facing
// messages. An empty slice means the password is admissible.
//
// Rules, in evaluation order: minimum length, maximum length, uppercase
// presence, lowercase presence, digit count, symbol presence, absence of
// whitespace. Length and digit counts are measured in runes, not bytes.
func (p *PasswordPolicy) Validate(password string) []string {
	var upper, lower, digits, symbols, spaces, length int
	for _, r := range password {
		length++
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r):
			spaces++
		default:
			symbols++
		}
	}

	var violations []string
	if length < p.minLength {
		violations = append(violations, fmt.Sprintf("Password must be at least %d characters long.", p.minLength))
	}
	if length > p.maxLength {
		violations = append(violations, fmt.Sprintf("Password must be at most %d characters long.", p.maxLength))
	}
	if upper < 1 {
		violations = append(violations, "Password must have at least 1 uppercase letter.")
	}
	if lower < 1 {
		violations = append(violations, "Password must have at least 1 lowercase letter.")
	}
	if digits < p.minDigits {
		violations = append(violations, fmt.Sprintf("Password must contain at least %d digit(s).", p.minDigits))
	}
	if symbols < 1 {
		violations = append(violations, "Password must contain at least one special character (e.g. ~, !, @).")
	}
	if spaces > 0 {
		violations = append(violations, "Password must not contain spaces.")
	}

	return violations
}
