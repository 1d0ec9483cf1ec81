package account

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsValidator_ValidateSignup(t *testing.T) {
	validator := NewCredentialsValidator()

	tests := []struct {
		name        string
		email       string
		password    string
		wantErr     bool
		expectedErr string
	}{
		{
			name:     "valid",
			email:    "user@example.com",
			password: "secret",
		},
		{
			name:        "empty email",
			email:       "",
			password:    "secret",
			wantErr:     true,
			expectedErr: "email is required",
		},
		{
			name:        "empty password",
			email:       "user@example.com",
			password:    "",
			wantErr:     true,
			expectedErr: "password is required",
		},
		{
			name:        "too short",
			email:       "user@example.com",
			password:    "12345",
			wantErr:     true,
			expectedErr: "password must be at least 6 characters",
		},
		{
			name:     "six multibyte runes",
			email:    "user@example.com",
			password: "пароль",
		},
		{
			name:        "too long for bcrypt",
			email:       "user@example.com",
			password:    strings.Repeat("a", 73),
			wantErr:     true,
			expectedErr: "password must be at most 72 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateSignup(tt.email, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCredentialsValidator_ValidateLogin(t *testing.T) {
	validator := NewCredentialsValidator()

	assert.NoError(t, validator.ValidateLogin("user@example.com", "x"))
	assert.Error(t, validator.ValidateLogin("", "x"))
	assert.Error(t, validator.ValidateLogin("user@example.com", ""))
}
