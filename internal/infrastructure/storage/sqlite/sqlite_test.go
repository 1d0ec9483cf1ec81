package sqlite

import (
	"context"
	"strings"
	"testing"
	"time"

	"passvault/internal/app/server/config"
	"passvault/internal/domain/account"
	"passvault/internal/domain/vault"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(config.DB{DatabaseURI: Memory}, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newEntry(accountID, title string) *vault.Entry {
	now := time.Now().UTC()
	return &vault.Entry{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Title:     title,
		Username:  "ct-username",
		Password:  "ct-password",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    string
		wantErr bool
	}{
		{name: "file", uri: "sqlite://data/vault.db", want: "file:data/vault.db?"},
		{name: "memory", uri: Memory, want: "mode=memory&cache=shared"},
		{name: "empty path", uri: "sqlite://", wantErr: true},
		{name: "postgres", uri: "postgres://localhost/db", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := DSN(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, dsn, tt.want)
		})
	}

	a, _ := DSN(Memory)
	b, _ := DSN(Memory)
	assert.NotEqual(t, a, b, "each in-memory store must be isolated")
}

func TestAccountRepository(t *testing.T) {
	s := newTestStorage(t)
	repo := NewAccountRepository(s, slog.Default())
	ctx := context.Background()

	acc, err := repo.Create(ctx, "a@x.com", "hash")
	require.NoError(t, err)
	_, err = uuid.Parse(acc.ID)
	require.NoError(t, err)

	_, err = repo.Create(ctx, "a@x.com", "other")
	assert.ErrorIs(t, err, account.ErrAlreadyExists)

	// email сравнивается с учетом регистра
	_, err = repo.Create(ctx, "A@x.com", "hash")
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	_, err = repo.FindByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestVaultRepository_Scoping(t *testing.T) {
	s := newTestStorage(t)
	accounts := NewAccountRepository(s, slog.Default())
	repo := NewVaultRepository(s, slog.Default())
	ctx := context.Background()

	a, err := accounts.Create(ctx, "a@x.com", "hash")
	require.NoError(t, err)
	b, err := accounts.Create(ctx, "b@x.com", "hash")
	require.NoError(t, err)

	first := newEntry(a.ID, "first")
	require.NoError(t, repo.Create(ctx, first))
	second := newEntry(a.ID, "second")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.List(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title, "newest first")
	assert.Equal(t, a.ID, list[0].AccountID)

	list, err = repo.List(ctx, b.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	title := "stolen"
	_, err = repo.Update(ctx, b.ID, first.ID, vault.Patch{Title: &title})
	assert.ErrorIs(t, err, vault.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, b.ID, first.ID), vault.ErrNotFound)

	list, err = repo.List(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[1].Title)
}

func TestVaultRepository_UpdateAndDelete(t *testing.T) {
	s := newTestStorage(t)
	accounts := NewAccountRepository(s, slog.Default())
	repo := NewVaultRepository(s, slog.Default())
	ctx := context.Background()

	a, err := accounts.Create(ctx, "a@x.com", "hash")
	require.NoError(t, err)

	e := newEntry(a.ID, "title")
	e.Notes = "old-notes"
	require.NoError(t, repo.Create(ctx, e))

	username, notes := "new-username", ""
	updated, err := repo.Update(ctx, a.ID, e.ID, vault.Patch{Username: &username, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "title", updated.Title)
	assert.Equal(t, "new-username", updated.Username)
	assert.Equal(t, "ct-password", updated.Password)
	assert.Equal(t, "", updated.Notes)
	assert.False(t, updated.UpdatedAt.Before(e.UpdatedAt))

	list, err := repo.List(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "new-username", list[0].Username)

	_, err = repo.Update(ctx, a.ID, uuid.NewString(), vault.Patch{Username: &username})
	assert.ErrorIs(t, err, vault.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, a.ID, e.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID, e.ID), vault.ErrNotFound)
}

func TestStorage_LazyConnect(t *testing.T) {
	s, err := New(config.DB{DatabaseURI: "sqlite://" + t.TempDir() + "/vault.db"}, slog.Default())
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.conn.Peek()
	assert.False(t, ok, "no connection before first use")

	require.NoError(t, s.Ping(context.Background()))
	_, ok = s.conn.Peek()
	assert.True(t, ok)
}

func TestStorage_UnreachableFile(t *testing.T) {
	dir := t.TempDir()
	s, err := New(config.DB{DatabaseURI: "sqlite://" + dir + "/missing/dir/vault.db"}, slog.Default())
	require.NoError(t, err)

	err = s.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "connect"))
}
