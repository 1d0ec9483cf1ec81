package vault

import "context"

// Repository — хранилище записей. Каждый метод ограничен accountID,
// запись чужого аккаунта неотличима от отсутствующей (ErrNotFound).
type Repository interface {
	List(ctx context.Context, accountID string) ([]Entry, error)
	Create(ctx context.Context, entry *Entry) error
	Update(ctx context.Context, accountID, entryID string, patch Patch) (Entry, error)
	Delete(ctx context.Context, accountID, entryID string) error
}
