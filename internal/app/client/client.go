package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"passvault/internal/app/client/config"
	"passvault/internal/app/client/crypto"
	"passvault/internal/domain/vault"

	"golang.org/x/exp/slog"
)

var (
	// ErrLocked — ключа шифрования нет, нужен повторный вход
	ErrLocked = errors.New("vault is locked: log in again")
	// ErrSessionExpired — сервер больше не принимает cookie сессии
	ErrSessionExpired = errors.New("session expired: log in again")
)

// API — операции сервера, которые нужны клиенту
type API interface {
	HealthCheck(ctx context.Context) error
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	ListEntries(ctx context.Context) ([]vault.Entry, error)
	CreateEntry(ctx context.Context, fields vault.Fields) (vault.Entry, error)
	UpdateEntry(ctx context.Context, id string, patch vault.Patch) (vault.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// App — клиентский контроллер хранилища. Шифрует поля перед отправкой
// и расшифровывает после получения, ключ держит только в памяти.
type App struct {
	api    API
	keys   *KeyRing
	cipher *crypto.Cipher
	log    *slog.Logger
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl, err := NewHTTPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации HTTP клиента: %w", err)
	}
	return NewWithAPI(httpCl, log), nil
}

// NewWithAPI собирает контроллер поверх произвольной реализации API
func NewWithAPI(api API, log *slog.Logger) *App {
	return &App{
		api:    api,
		keys:   NewKeyRing(),
		cipher: crypto.NewCipher(log),
		log:    log.With(slog.String("component", "vault_client")),
	}
}

// CheckConnection проверяет доступность сервера
func (a *App) CheckConnection(ctx context.Context) error {
	return a.api.HealthCheck(ctx)
}

// Unlocked сообщает, держит ли клиент ключ шифрования
func (a *App) Unlocked() bool {
	return a.keys.Unlocked()
}

func (a *App) Signup(ctx context.Context, email, password string) error {
	return a.api.Signup(ctx, email, password)
}

// Login входит на сервер и при успехе выводит ключ из пароля.
// При неудаче ранее выведенный ключ уничтожается.
func (a *App) Login(ctx context.Context, email, password string) error {
	if err := a.api.Login(ctx, email, password); err != nil {
		a.keys.Clear()
		return err
	}

	a.keys.Set(crypto.DeriveKey(password))
	a.log.Debug("vault unlocked")
	return nil
}

// Logout просит сервер удалить cookie и уничтожает ключ. Ключ уничтожается
// при любом исходе, клиент становится заблокированным только после попытки
// выхода на сервере.
func (a *App) Logout(ctx context.Context) error {
	defer a.keys.Clear()

	if err := a.api.Logout(ctx); err != nil {
		a.log.Warn("server logout failed", slog.String("error", err.Error()))
		return fmt.Errorf("ошибка выхода на сервере: %w", err)
	}
	return nil
}

// Entries загружает и расшифровывает записи. Каждое поле расшифровывается
// отдельно: поле с ошибкой остается пустым и попадает в Unavailable.
func (a *App) Entries(ctx context.Context) ([]Entry, error) {
	key := a.keys.Key()
	if key == nil {
		return nil, ErrLocked
	}

	remote, err := a.api.ListEntries(ctx)
	if err != nil {
		return nil, a.handleErr(err)
	}

	entries := make([]Entry, 0, len(remote))
	for _, r := range remote {
		entries = append(entries, a.decryptEntry(r, key))
	}
	return entries, nil
}

// Add шифрует все поля свежими солью и nonce и отправляет запись
func (a *App) Add(ctx context.Context, d Draft) (Entry, error) {
	key := a.keys.Key()
	if key == nil {
		return Entry{}, ErrLocked
	}

	fields := vault.Fields{}
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&fields.Title, d.Title},
		{&fields.Username, d.Username},
		{&fields.Password, d.Password},
		{&fields.URL, d.URL},
		{&fields.Notes, d.Notes},
	} {
		if f.src == "" {
			continue
		}
		ct, err := a.cipher.Seal(f.src, key)
		if err != nil {
			return Entry{}, fmt.Errorf("ошибка шифрования: %w", err)
		}
		*f.dst = ct
	}

	created, err := a.api.CreateEntry(ctx, fields)
	if err != nil {
		return Entry{}, a.handleErr(err)
	}
	return a.decryptEntry(created, key), nil
}

// Update шифрует только переданные поля. Пустое значение отправляется
// как есть и очищает поле.
func (a *App) Update(ctx context.Context, id string, p Patch) (Entry, error) {
	key := a.keys.Key()
	if key == nil {
		return Entry{}, ErrLocked
	}

	patch := vault.Patch{}
	for _, f := range []struct {
		dst **string
		src *string
	}{
		{&patch.Title, p.Title},
		{&patch.Username, p.Username},
		{&patch.Password, p.Password},
		{&patch.URL, p.URL},
		{&patch.Notes, p.Notes},
	} {
		if f.src == nil {
			continue
		}
		ct := ""
		if *f.src != "" {
			var err error
			if ct, err = a.cipher.Seal(*f.src, key); err != nil {
				return Entry{}, fmt.Errorf("ошибка шифрования: %w", err)
			}
		}
		*f.dst = &ct
	}

	updated, err := a.api.UpdateEntry(ctx, id, patch)
	if err != nil {
		return Entry{}, a.handleErr(err)
	}
	return a.decryptEntry(updated, key), nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if !a.keys.Unlocked() {
		return ErrLocked
	}
	if err := a.api.DeleteEntry(ctx, id); err != nil {
		return a.handleErr(err)
	}
	return nil
}

func (a *App) decryptEntry(r vault.Entry, key *crypto.Key) Entry {
	e := Entry{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	for _, f := range []struct {
		name string
		dst  *string
		src  string
	}{
		{FieldTitle, &e.Title, r.Title},
		{FieldUsername, &e.Username, r.Username},
		{FieldPassword, &e.Password, r.Password},
		{FieldURL, &e.URL, r.URL},
		{FieldNotes, &e.Notes, r.Notes},
	} {
		pt, err := a.cipher.Open(f.src, key)
		if err != nil {
			a.log.Warn("field decryption failed",
				slog.String("entry_id", r.ID),
				slog.String("field", f.name),
				slog.String("error", err.Error()),
			)
			e.Unavailable = append(e.Unavailable, f.name)
			continue
		}
		*f.dst = pt
	}
	return e
}

// handleErr блокирует клиент, если сервер отверг сессию
func (a *App) handleErr(err error) error {
	if StatusOf(err) == http.StatusUnauthorized {
		a.keys.Clear()
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}
	return err
}
