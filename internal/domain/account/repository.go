package account

import (
	"context"
)

// Repository хранит аккаунты. Create возвращает ErrAlreadyExists при
// повторном email, FindByEmail возвращает ErrNotFound.
type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (Account, error)
	FindByEmail(ctx context.Context, email string) (Account, error)
}
