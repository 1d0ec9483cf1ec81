package auth

import (
	"context"
	"net/http"
	"strings"

	"passvault/internal/app/server/api/http/apierr"
	"passvault/internal/domain/session"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Auth struct {
	session session.Verifier
	log     *slog.Logger
}

func New(session session.Verifier, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const accountIDKey contextKey = "accountID"

// Middleware пропускает запрос дальше только с действительной cookie auth_token.
// Отсутствующая, просроченная и поддельная cookie дают одинаковый ответ 401.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token := readCookie(ctx, session.CookieName)
		if token == "" {
			apierr.Write(ctx, http.StatusUnauthorized, apierr.MsgNotAuthenticated)
			return
		}

		identity, err := a.session.Verify(token)
		if err != nil {
			a.log.Debug("token rejected", slog.String("path", ctx.URL().Path))
			apierr.Write(ctx, http.StatusUnauthorized, apierr.MsgNotAuthenticated)
			return
		}

		next(huma.WithContext(ctx, WithAccountID(ctx.Context(), identity.AccountID)))
	}
}

// WithAccountID кладет идентификатор аккаунта в контекст
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// AccountID достает идентификатор аккаунта, положенный мидлварью
func AccountID(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(accountIDKey).(string)
	return accountID, ok && accountID != ""
}

func readCookie(ctx huma.Context, name string) string {
	r := http.Request{Header: http.Header{}}
	ctx.EachHeader(func(k, v string) {
		if strings.EqualFold(k, "Cookie") {
			r.Header.Add("Cookie", v)
		}
	})

	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
