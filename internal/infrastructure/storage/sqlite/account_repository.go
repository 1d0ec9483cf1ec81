package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"passvault/internal/domain/account"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type AccountRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewAccountRepository(db *Storage, log *slog.Logger) *AccountRepository {
	return &AccountRepository{
		db:  db,
		log: log.With(slog.String("component", "account_repository")),
	}
}

func (r *AccountRepository) Create(ctx context.Context, email, passwordHash string) (account.Account, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return account.Account{}, err
	}

	acc := account.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO accounts (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		acc.ID, acc.Email, acc.PasswordHash, acc.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return account.Account{}, account.ErrAlreadyExists
		}
		return account.Account{}, fmt.Errorf("insert account: %w", err)
	}

	return acc, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (account.Account, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return account.Account{}, err
	}

	var acc account.Account
	err = db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM accounts WHERE email = ?`, email).
		Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, fmt.Errorf("select account: %w", err)
	}

	return acc, nil
}
