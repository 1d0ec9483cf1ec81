package postgres

import (
	"context"
	"errors"
	"fmt"

	"passvault/internal/domain/vault"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"
)

const entryColumns = `id::text, account_id::text, title, username, password, url, notes, created_at, updated_at`

type VaultRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewVaultRepository(db *Storage, log *slog.Logger) *VaultRepository {
	return &VaultRepository{
		db:  db,
		log: log.With(slog.String("component", "vault_repository")),
	}
}

func (r *VaultRepository) List(ctx context.Context, accountID string) ([]vault.Entry, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx,
		`SELECT `+entryColumns+` FROM vault_entries
		 WHERE account_id = $1
		 ORDER BY created_at DESC, id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]vault.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *VaultRepository) Create(ctx context.Context, e *vault.Entry) error {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO vault_entries (id, account_id, title, username, password, url, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.AccountID, e.Title, e.Username, e.Password, e.URL, e.Notes, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// Update применяет патч одним запросом: поля со значением NULL не меняются
func (r *VaultRepository) Update(ctx context.Context, accountID, entryID string, patch vault.Patch) (vault.Entry, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return vault.Entry{}, err
	}

	row := pool.QueryRow(ctx,
		`UPDATE vault_entries SET
		     title      = COALESCE($3, title),
		     username   = COALESCE($4, username),
		     password   = COALESCE($5, password),
		     url        = COALESCE($6, url),
		     notes      = COALESCE($7, notes),
		     updated_at = NOW()
		 WHERE id = $1 AND account_id = $2
		 RETURNING `+entryColumns,
		entryID, accountID, patch.Title, patch.Username, patch.Password, patch.URL, patch.Notes)

	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vault.Entry{}, vault.ErrNotFound
		}
		return vault.Entry{}, fmt.Errorf("update entry: %w", err)
	}
	return e, nil
}

func (r *VaultRepository) Delete(ctx context.Context, accountID, entryID string) error {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx,
		`DELETE FROM vault_entries WHERE id = $1 AND account_id = $2`, entryID, accountID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vault.ErrNotFound
	}
	return nil
}

func scanEntry(row pgx.Row) (vault.Entry, error) {
	var e vault.Entry
	err := row.Scan(&e.ID, &e.AccountID, &e.Title, &e.Username, &e.Password, &e.URL, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}
