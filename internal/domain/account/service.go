package account

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// HashCost — стоимость bcrypt для новых паролей
const HashCost = 12

type Servicer interface {
	Register(ctx context.Context, email, password string) (Account, error)
	Authenticate(ctx context.Context, email, password string) (Account, error)
}

type Service struct {
	repo      Repository
	validator Validator
	cost      int
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		cost:      HashCost,
		log:       log.With(slog.String("component", "account")),
	}
}

func (s *Service) Register(ctx context.Context, email, password string) (Account, error) {
	if err := s.validator.ValidateSignup(email, password); err != nil {
		s.log.Debug("validation failed", slog.String("error", err.Error()))
		return Account{}, &DomainError{Err: ErrInvalidInput, Message: err.Error()}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	acc, err := s.repo.Create(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return Account{}, ErrAlreadyExists
		}
		return Account{}, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("account created", slog.String("account_id", acc.ID))
	return acc, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (Account, error) {
	if err := s.validator.ValidateLogin(email, password); err != nil {
		return Account{}, &DomainError{Err: ErrInvalidInput, Message: err.Error()}
	}

	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, fmt.Errorf("find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}

	return acc, nil
}
