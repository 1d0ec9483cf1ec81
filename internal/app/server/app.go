// Package server собирает зависимости и запускает HTTP-сервер хранилища.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"passvault/internal/app/server/api"
	"passvault/internal/app/server/config"
	"passvault/internal/domain/session"
	"passvault/internal/infrastructure/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/exp/slog"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type App struct {
	cfg    *config.Config
	log    *slog.Logger
	store  storage.Store
	server *http.Server
}

// NewApp открывает хранилище и собирает роутер. Подключение к базе
// происходит при первом запросе.
func NewApp(cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := storage.Open(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sessions := session.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL, log)
	mux := api.New(store, sessions, api.Options{
		SecureCookies: cfg.SecureCookies(),
		Registry:      registry,
	}, log)

	return &App{
		cfg:   cfg,
		log:   log.With(slog.String("component", "server")),
		store: store,
		server: &http.Server{
			Addr:              cfg.Server.RunAddress,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем завершает активные
// запросы и закрывает хранилище.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		_ = a.store.Close()
		return fmt.Errorf("listen %s: %w", a.server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve — то же, что Run, на готовом listener
func (a *App) Serve(ctx context.Context, ln net.Listener) (err error) {
	defer func() {
		if cerr := a.store.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close storage: %w", cerr))
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		a.log.Info("starting server", slog.String("address", ln.Addr().String()), slog.String("env", a.cfg.Env))
		serveErr <- a.server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	a.log.Info("server stopped")
	return nil
}
