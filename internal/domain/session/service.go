package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/exp/slog"
)

// DefaultTTL — время жизни токена по умолчанию
const DefaultTTL = time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims — стандартные утверждения JWT плюс идентификатор аккаунта и email
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// Identity — проверенная личность, извлеченная из токена
type Identity struct {
	AccountID string
	Email     string
}

// Verifier проверяет токены
type Verifier interface {
	Verify(token string) (Identity, error)
}

type Servicer interface {
	Verifier
	Issue(accountID, email string) (string, time.Time, error)
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    *slog.Logger
}

func NewService(secret string, ttl time.Duration, log *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		log:    log.With(slog.String("component", "session")),
	}
}

// Issue подписывает HS256-токен для аккаунта
func (s *Service) Issue(accountID, email string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		AccountID: accountID,
		Email:     email,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify проверяет подпись, алгоритм и срок действия токена.
// Любая причина отказа сводится к ErrInvalidToken.
func (s *Service) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		s.log.Debug("token rejected", slog.String("error", err.Error()))
		return Identity{}, ErrInvalidToken
	}

	if !parsed.Valid || claims.AccountID == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{AccountID: claims.AccountID, Email: claims.Email}, nil
}
