package postgres

import (
	"context"
	"errors"
	"fmt"

	"passvault/internal/domain/account"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return account.Account{}, err
	}

	acc := account.Account{ID: uuid.NewString(), Email: email, PasswordHash: passwordHash}
	err = pool.QueryRow(ctx,
		`INSERT INTO accounts (id, email, password_hash) VALUES ($1, $2, $3) RETURNING created_at`,
		acc.ID, email, passwordHash).Scan(&acc.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return account.Account{}, account.ErrAlreadyExists
		}
		return account.Account{}, fmt.Errorf("insert account: %w", err)
	}

	return acc, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (account.Account, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return account.Account{}, err
	}

	var acc account.Account
	err = pool.QueryRow(ctx,
		`SELECT id::text, email, password_hash, created_at FROM accounts WHERE email = $1`, email).
		Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, fmt.Errorf("select account: %w", err)
	}

	return acc, nil
}
