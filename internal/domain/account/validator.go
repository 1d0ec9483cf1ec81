package account

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLen = 6
	// bcrypt учитывает только первые 72 байта
	MaxPasswordBytes = 72
)

// Validator - интерфейс для валидации данных аккаунта
type Validator interface {
	ValidateSignup(email, password string) error
	ValidateLogin(email, password string) error
}

type CredentialsValidator struct{}

func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{}
}

// ValidateSignup валидирует данные для регистрации
func (v *CredentialsValidator) ValidateSignup(email, password string) error {
	if err := v.ValidateLogin(email, password); err != nil {
		return err
	}

	if utf8.RuneCountInString(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}

	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
	}

	return nil
}

// ValidateLogin проверяет только наличие полей
func (v *CredentialsValidator) ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}

	if password == "" {
		return fmt.Errorf("password is required")
	}

	return nil
}
