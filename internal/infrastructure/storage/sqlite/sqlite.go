// Package sqlite — встраиваемое хранилище для локального запуска и тестов.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"passvault/internal/app/server/config"
	"passvault/internal/infrastructure/migration"
	"passvault/internal/infrastructure/storage/lazy"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	Scheme = "sqlite://"
	// Memory — отдельная база в памяти на каждый Storage
	Memory = "sqlite::memory:"
)

type Storage struct {
	dsn  string
	conn *lazy.Lazy[*sql.DB]
	log  *slog.Logger
}

// New открывает базу SQLite по URI вида sqlite://path/to/file.db или sqlite::memory:
func New(cfg config.DB, log *slog.Logger) (*Storage, error) {
	dsn, err := DSN(cfg.DatabaseURI)
	if err != nil {
		return nil, err
	}
	log = log.With(slog.String("component", "sqlite"))

	connect := func(ctx context.Context) (*sql.DB, error) {
		db, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// одна запись за раз, база в памяти живет, пока открыто соединение
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping: %w", err)
		}

		engine := migration.SQLiteEngine(dsn, migrations, "migrations")
		if err := migration.NewMigration(cfg, engine).Up(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}

		log.Info("connected to database")
		return db, nil
	}

	return &Storage{
		dsn:  dsn,
		conn: lazy.New(connect, lazy.DefaultTimeout),
		log:  log,
	}, nil
}

// DSN переводит URI хранилища в строку подключения go-sqlite3
func DSN(uri string) (string, error) {
	switch {
	case uri == Memory:
		return fmt.Sprintf("file:passvault-%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()), nil
	case strings.HasPrefix(uri, Scheme):
		path := strings.TrimPrefix(uri, Scheme)
		if path == "" {
			return "", fmt.Errorf("sqlite: empty path in %q", uri)
		}
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path), nil
	default:
		return "", fmt.Errorf("sqlite: unsupported uri %q", uri)
	}
}

func (s *Storage) DB(ctx context.Context) (*sql.DB, error) {
	db, err := s.conn.Get(ctx)
	if err != nil {
		s.log.Error("database unavailable", slog.String("error", err.Error()))
		return nil, fmt.Errorf("connect: %w", err)
	}
	return db, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	db, err := s.DB(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (s *Storage) Close() error {
	if db, ok := s.conn.Peek(); ok {
		return db.Close()
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
