package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, accountID string) ([]Entry, error)
	Create(ctx context.Context, accountID string, fields Fields) (Entry, error)
	Update(ctx context.Context, accountID, entryID string, patch Patch) (Entry, error)
	Delete(ctx context.Context, accountID, entryID string) error
}

type Service struct {
	repo Repository
	now  func() time.Time
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		log:  log.With(slog.String("component", "vault_service")),
	}
}

// List возвращает записи аккаунта, новые первыми
func (s *Service) List(ctx context.Context, accountID string) ([]Entry, error) {
	entries, err := s.repo.List(ctx, accountID)
	if err != nil {
		s.log.Error("failed to list entries", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("list entries: %w", err)
	}

	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Create сохраняет новую запись. title, username и password обязательны.
func (s *Service) Create(ctx context.Context, accountID string, fields Fields) (Entry, error) {
	if fields.Title == "" || fields.Username == "" || fields.Password == "" {
		return Entry{}, ErrInvalidData
	}

	now := s.now().UTC()
	entry := &Entry{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Title:     fields.Title,
		Username:  fields.Username,
		Password:  fields.Password,
		URL:       fields.URL,
		Notes:     fields.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Error("failed to create entry", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return Entry{}, fmt.Errorf("create entry: %w", err)
	}

	s.log.Info("entry created", slog.String("entry_id", entry.ID), slog.String("account_id", accountID))
	return *entry, nil
}

// Update применяет частичное обновление к записи аккаунта.
// Обязательные поля нельзя очистить, url и notes можно.
func (s *Service) Update(ctx context.Context, accountID, entryID string, patch Patch) (Entry, error) {
	if patch.Empty() {
		return Entry{}, ErrEmptyUpdate
	}

	for _, f := range []*string{patch.Title, patch.Username, patch.Password} {
		if f != nil && *f == "" {
			return Entry{}, ErrInvalidData
		}
	}

	if _, err := uuid.Parse(entryID); err != nil {
		return Entry{}, ErrNotFound
	}

	entry, err := s.repo.Update(ctx, accountID, entryID, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, ErrNotFound
		}
		s.log.Error("failed to update entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return Entry{}, fmt.Errorf("update entry: %w", err)
	}

	return entry, nil
}

// Delete удаляет запись аккаунта
func (s *Service) Delete(ctx context.Context, accountID, entryID string) error {
	if _, err := uuid.Parse(entryID); err != nil {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, accountID, entryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return fmt.Errorf("delete entry: %w", err)
	}

	s.log.Info("entry deleted", slog.String("entry_id", entryID), slog.String("account_id", accountID))
	return nil
}
