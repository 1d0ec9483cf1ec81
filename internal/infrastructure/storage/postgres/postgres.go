package postgres

import (
	"context"
	"errors"
	"fmt"

	"passvault/internal/app/server/config"
	"passvault/internal/infrastructure/migration"
	"passvault/internal/infrastructure/storage/lazy"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

const uniqueViolation = "23505"

// Storage — пул соединений с Postgres, устанавливаемый при первом обращении.
// При подключении накатываются миграции.
type Storage struct {
	conn *lazy.Lazy[*pgxpool.Pool]
	log  *slog.Logger
}

func New(cfg config.DB, log *slog.Logger) *Storage {
	return NewWithEngine(cfg, migration.DefaultEngine, log)
}

// NewWithEngine позволяет подменить мигратор
func NewWithEngine(cfg config.DB, engine migration.MigrationEngine, log *slog.Logger) *Storage {
	log = log.With(slog.String("component", "postgres"))

	connect := func(ctx context.Context) (*pgxpool.Pool, error) {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURI)
		if err != nil {
			return nil, fmt.Errorf("create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping: %w", err)
		}
		if err := migration.NewMigration(cfg, engine).Up(); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}

		log.Info("connected to database")
		return pool, nil
	}

	return &Storage{
		conn: lazy.New(connect, lazy.DefaultTimeout),
		log:  log,
	}
}

// Pool возвращает пул, дожидаясь подключения
func (s *Storage) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := s.conn.Get(ctx)
	if err != nil {
		s.log.Error("database unavailable", slog.String("error", err.Error()))
		return nil, fmt.Errorf("connect: %w", err)
	}
	return pool, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	pool, err := s.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

func (s *Storage) Close() error {
	if pool, ok := s.conn.Peek(); ok {
		pool.Close()
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
