package storage

import (
	"context"
	"fmt"
	"strings"

	"passvault/internal/app/server/config"
	"passvault/internal/domain/account"
	"passvault/internal/domain/vault"
	"passvault/internal/infrastructure/storage/postgres"
	"passvault/internal/infrastructure/storage/sqlite"

	"golang.org/x/exp/slog"
)

// Store — единственный на процесс дескриптор хранилища.
// Соединение устанавливается при первом обращении к репозиторию.
type Store interface {
	Accounts() account.Repository
	Vault() vault.Repository
	Ping(ctx context.Context) error
	Close() error
}

// Open выбирает реализацию по схеме DATABASE_URI
func Open(cfg config.DB, log *slog.Logger) (Store, error) {
	uri := cfg.DatabaseURI
	switch {
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		db := postgres.New(cfg, log)
		return &store{
			accounts: postgres.NewAccountRepository(db, log),
			vault:    postgres.NewVaultRepository(db, log),
			conn:     db,
		}, nil
	case strings.HasPrefix(uri, "sqlite:"):
		db, err := sqlite.New(cfg, log)
		if err != nil {
			return nil, err
		}
		return &store{
			accounts: sqlite.NewAccountRepository(db, log),
			vault:    sqlite.NewVaultRepository(db, log),
			conn:     db,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URI scheme: %q", schemeOf(uri))
	}
}

type connection interface {
	Ping(ctx context.Context) error
	Close() error
}

type store struct {
	accounts account.Repository
	vault    vault.Repository
	conn     connection
}

func (s *store) Accounts() account.Repository { return s.accounts }
func (s *store) Vault() vault.Repository { return s.vault }
func (s *store) Ping(ctx context.Context) error { return s.conn.Ping(ctx) }
func (s *store) Close() error { return s.conn.Close() }

// schemeOf не дает учетным данным из URI попасть в сообщение об ошибке
func schemeOf(uri string) string {
	if i := strings.Index(uri, ":"); i >= 0 {
		return uri[:i]
	}
	return "<none>"
}
