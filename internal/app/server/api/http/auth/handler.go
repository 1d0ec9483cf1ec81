package auth

import (
	"context"
	"errors"
	"net/http"

	"passvault/internal/app/server/api/http/apierr"
	"passvault/internal/domain/account"
	"passvault/internal/domain/session"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	msgInvalidInput       = "Invalid input."
	msgUserExists         = "User already exists!"
	msgUserCreated        = "User created!"
	msgInvalidCredentials = "Invalid credentials."
	msgLoggedIn           = "Logged in successfully!"
	msgLoggedOut          = "Successfully logged out."
)

type Handler struct {
	service       account.Servicer
	session       session.Servicer
	secureCookies bool
	log           *slog.Logger
	middleware    huma.Middlewares
}

func NewHandler(
	service account.Servicer,
	session session.Servicer,
	secureCookies bool,
	log *slog.Logger,
	middleware huma.Middlewares,
) *Handler {
	return &Handler{
		service:       service,
		session:       session,
		secureCookies: secureCookies,
		log:           log.With(slog.String("component", "auth_handler")),
		middleware:    middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.signupOp(), h.signup)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(http.MethodGet), h.logout)
	huma.Register(api, h.logoutOp(http.MethodPost), h.logout)
}

func (h *Handler) signup(ctx context.Context, input *signupInput) (*messageOutput, error) {
	_, err := h.service.Register(ctx, input.Body.Email, input.Body.Password)
	switch {
	case err == nil:
	case errors.Is(err, account.ErrInvalidInput):
		return nil, apierr.New(http.StatusUnprocessableEntity, msgInvalidInput, err)
	case errors.Is(err, account.ErrAlreadyExists):
		return nil, apierr.New(http.StatusUnprocessableEntity, msgUserExists)
	default:
		h.log.Error("signup failed", slog.String("error", err.Error()))
		return nil, apierr.New(http.StatusInternalServerError, apierr.MsgInternal)
	}

	return &messageOutput{Body: messageResponse{Message: msgUserCreated}}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*cookieOutput, error) {
	acc, err := h.service.Authenticate(ctx, input.Body.Email, input.Body.Password)
	switch {
	case err == nil:
	case errors.Is(err, account.ErrInvalidInput):
		return nil, apierr.New(http.StatusUnprocessableEntity, msgInvalidInput, err)
	case errors.Is(err, account.ErrInvalidCredentials):
		return nil, apierr.New(http.StatusUnauthorized, msgInvalidCredentials)
	default:
		h.log.Error("login failed", slog.String("error", err.Error()))
		return nil, apierr.New(http.StatusInternalServerError, apierr.MsgInternal)
	}

	token, expiresAt, err := h.session.Issue(acc.ID, acc.Email)
	if err != nil {
		h.log.Error("issue token failed", slog.String("error", err.Error()))
		return nil, apierr.New(http.StatusInternalServerError, apierr.MsgInternal)
	}

	h.log.Info("account logged in", slog.String("account_id", acc.ID))
	return &cookieOutput{
		SetCookie: session.NewCookie(token, expiresAt, h.secureCookies),
		Body:      messageResponse{Message: msgLoggedIn},
	}, nil
}

func (h *Handler) logout(_ context.Context, _ *logoutInput) (*cookieOutput, error) {
	return &cookieOutput{
		SetCookie: session.ClearCookie(h.secureCookies),
		Body:      messageResponse{Message: msgLoggedOut},
	}, nil
}
