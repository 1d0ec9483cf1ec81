package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"passvault/internal/domain/vault"

	"golang.org/x/exp/slog"
)

const entryColumns = `id, account_id, title, username, password, url, notes, created_at, updated_at`

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
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM vault_entries
		 WHERE account_id = ?
		 ORDER BY created_at DESC, rowid DESC`, accountID)
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
	db, err := r.db.DB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO vault_entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.AccountID, e.Title, e.Username, e.Password, e.URL, e.Notes, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *VaultRepository) Update(ctx context.Context, accountID, entryID string, patch vault.Patch) (vault.Entry, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return vault.Entry{}, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return vault.Entry{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	e, err := scanEntry(tx.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM vault_entries WHERE id = ? AND account_id = ?`, entryID, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vault.Entry{}, vault.ErrNotFound
		}
		return vault.Entry{}, fmt.Errorf("select entry: %w", err)
	}

	patch.Apply(&e)
	e.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`UPDATE vault_entries
		 SET title = ?, username = ?, password = ?, url = ?, notes = ?, updated_at = ?
		 WHERE id = ? AND account_id = ?`,
		e.Title, e.Username, e.Password, e.URL, e.Notes, e.UpdatedAt, entryID, accountID)
	if err != nil {
		return vault.Entry{}, fmt.Errorf("update entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return vault.Entry{}, fmt.Errorf("commit: %w", err)
	}
	return e, nil
}

func (r *VaultRepository) Delete(ctx context.Context, accountID, entryID string) error {
	db, err := r.db.DB(ctx)
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx,
		`DELETE FROM vault_entries WHERE id = ? AND account_id = ?`, entryID, accountID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return vault.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (vault.Entry, error) {
	var e vault.Entry
	err := row.Scan(&e.ID, &e.AccountID, &e.Title, &e.Username, &e.Password, &e.URL, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}
