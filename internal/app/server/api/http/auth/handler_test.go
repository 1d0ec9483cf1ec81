package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"passvault/internal/domain/account"
	"passvault/internal/domain/session"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, password string) (account.Account, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(account.Account), args.Error(1)
}

func (m *MockService) Authenticate(ctx context.Context, email, password string) (account.Account, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(account.Account), args.Error(1)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se), "expected huma.StatusError, got %T", err)
	return se.GetStatus()
}

func newHandler(svc account.Servicer) (*Handler, *session.Service) {
	sessions := session.NewService("secret", time.Hour, slog.Default())
	return NewHandler(svc, sessions, true, slog.Default(), nil), sessions
}

func signupWith(email, password string) *signupInput {
	in := &signupInput{}
	in.Body.Email, in.Body.Password = email, password
	return in
}

func loginWith(email, password string) *loginInput {
	in := &loginInput{}
	in.Body.Email, in.Body.Password = email, password
	return in
}

func TestHandler_signup(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{name: "created", wantMsg: msgUserCreated},
		{
			name:       "short password",
			serviceErr: &account.DomainError{Err: account.ErrInvalidInput, Message: "password must be at least 6 characters"},
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    msgInvalidInput,
		},
		{name: "duplicate", serviceErr: account.ErrAlreadyExists, wantStatus: http.StatusUnprocessableEntity, wantMsg: msgUserExists},
		{name: "store down", serviceErr: errors.New("connection refused"), wantStatus: http.StatusInternalServerError, wantMsg: "An internal server error occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			h, _ := newHandler(svc)
			svc.On("Register", mock.Anything, "a@x.com", "secret1").Return(account.Account{ID: "acc-1"}, tt.serviceErr)

			out, err := h.signup(context.Background(), signupWith("a@x.com", "secret1"))
			if tt.wantStatus != 0 {
				assert.Nil(t, out)
				assert.Equal(t, tt.wantStatus, statusOf(t, err))
				assert.Equal(t, tt.wantMsg, err.Error())
				assert.NotContains(t, err.Error(), "connection refused")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMsg, out.Body.Message)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_login(t *testing.T) {
	t.Run("sets cookie", func(t *testing.T) {
		svc := new(MockService)
		h, sessions := newHandler(svc)
		svc.On("Authenticate", mock.Anything, "a@x.com", "secret1").
			Return(account.Account{ID: "acc-1", Email: "a@x.com"}, nil)

		out, err := h.login(context.Background(), loginWith("a@x.com", "secret1"))
		require.NoError(t, err)
		assert.Equal(t, msgLoggedIn, out.Body.Message)

		c := out.SetCookie
		assert.Equal(t, session.CookieName, c.Name)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
		assert.Equal(t, "/", c.Path)
		assert.InDelta(t, 3600, c.MaxAge, 2)

		identity, err := sessions.Verify(c.Value)
		require.NoError(t, err)
		assert.Equal(t, "acc-1", identity.AccountID)
		assert.Equal(t, "a@x.com", identity.Email)
	})

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{name: "bad credentials", serviceErr: account.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantMsg: msgInvalidCredentials},
		{name: "missing fields", serviceErr: &account.DomainError{Err: account.ErrInvalidInput}, wantStatus: http.StatusUnprocessableEntity, wantMsg: msgInvalidInput},
		{name: "store down", serviceErr: errors.New("timeout"), wantStatus: http.StatusInternalServerError, wantMsg: "An internal server error occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			h, _ := newHandler(svc)
			svc.On("Authenticate", mock.Anything, "a@x.com", "pw").Return(account.Account{}, tt.serviceErr)

			out, err := h.login(context.Background(), loginWith("a@x.com", "pw"))
			assert.Nil(t, out)
			assert.Equal(t, tt.wantStatus, statusOf(t, err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestHandler_logout(t *testing.T) {
	h, _ := newHandler(new(MockService))

	out, err := h.logout(context.Background(), &logoutInput{})
	require.NoError(t, err)

	assert.Equal(t, msgLoggedOut, out.Body.Message)
	assert.Equal(t, session.CookieName, out.SetCookie.Name)
	assert.Empty(t, out.SetCookie.Value)
	assert.Equal(t, -1, out.SetCookie.MaxAge)
	assert.Contains(t, out.SetCookie.String(), "Max-Age=0")
}
