package service

import (
	"testing"

	"github.com/pxeeio/flex-api/internal/config"
	"github.com/stretchr/testify/assert"
)

func testPolicy() *PasswordPolicy {
	return NewPasswordPolicy(config.App{
		PasswordMinLength: 8,
		PasswordMaxLength: 16,
		PasswordMinDigits: 1,
	})
}

func TestPasswordPolicy_Validate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{
			name:     "admissible password",
			password: "Str0ng~Pass",
			want:     nil,
		},
		{
			name:     "exactly minimum length",
			password: "Ab1~efgh",
			want:     nil,
		},
		{
			name:     "one short of minimum length",
			password: "Ab1~efg",
			want:     []string{"Password must be at least 8 characters long."},
		},
		{
			name:     "over maximum length",
			password: "Ab1~efghijklmnopq",
			want:     []string{"Password must be at most 16 characters long."},
		},
		{
			name:     "no uppercase",
			password: "weak1~pass",
			want:     []string{"Password must have at least 1 uppercase letter."},
		},
		{
			name:     "no lowercase",
			password: "WEAK1~PASS",
			want:     []string{"Password must have at least 1 lowercase letter."},
		},
		{
			name:     "no digits",
			password: "Weak~Password",
			want:     []string{"Password must contain at least 1 digit(s)."},
		},
		{
			name:     "no symbols",
			password: "Weak1Password",
			want:     []string{"Password must contain at least one special character (e.g. ~, !, @)."},
		},
		{
			name:     "contains spaces",
			password: "Weak1~ Pass",
			want:     []string{"Password must not contain spaces."},
		},
		{
			name:     "multiple violations in rule order",
			password: "abc",
			want: []string{
				"Password must be at least 8 characters long.",
				"Password must have at least 1 uppercase letter.",
				"Password must contain at least 1 digit(s).",
				"Password must contain at least one special character (e.g. ~, !, @).",
			},
		},
	}

	policy := testPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Validate(tt.password))
		})
	}
}

// Lengths are measured in runes so multi-byte characters count once.
func TestPasswordPolicy_Validate_CountsRunes(t *testing.T) {
	policy := testPolicy()

	// 8 runes, more than 8 bytes
	assert.Nil(t, policy.Validate("Пароль1~"))
}
