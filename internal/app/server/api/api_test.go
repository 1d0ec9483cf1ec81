package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"passvault/internal/app/client/crypto"
	"passvault/internal/app/server/config"
	"passvault/internal/domain/session"
	"passvault/internal/infrastructure/storage"
	"passvault/internal/infrastructure/storage/sqlite"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

const testSecret = "test-secret-for-api"

type entryJSON struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}

type errorJSON struct {
	Message string `json:"message"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.Open(config.DB{DatabaseURI: sqlite.Memory}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	sessions := session.NewService(testSecret, time.Hour, log)
	mux := New(store, sessions, Options{Registry: prometheus.NewRegistry()}, log)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func authCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", session.CookieName)
	return nil
}

func signupAndLogin(t *testing.T, srv *httptest.Server, email, password string) *http.Cookie {
	t.Helper()
	creds := map[string]string{"email": email, "password": password}

	resp := do(t, srv, http.MethodPost, "/api/auth/signup", creds, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/auth/login", creds, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return authCookie(t, resp)
}

func TestAPI_VaultFlow(t *testing.T) {
	srv := newServer(t)
	cookie := signupAndLogin(t, srv, "a@x.com", "password123")

	// сервер получает только шифротекст
	key := crypto.DeriveKey("password123")
	defer key.Destroy()

	item := map[string]string{
		"title":    crypto.Encrypt("Bank", key),
		"username": crypto.Encrypt("me", key),
		"password": crypto.Encrypt("hunter2", key),
	}
	resp := do(t, srv, http.MethodPost, "/api/vault", item, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[struct {
		Message string    `json:"message"`
		Item    entryJSON `json:"item"`
	}](t, resp)
	assert.Equal(t, "Item added successfully!", created.Message)
	require.NotEmpty(t, created.Item.ID)

	resp = do(t, srv, http.MethodGet, "/api/vault", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[struct {
		Items []entryJSON `json:"items"`
	}](t, resp)
	require.Len(t, list.Items, 1)
	assert.NotEqual(t, "hunter2", list.Items[0].Password)
	assert.Equal(t, "hunter2", crypto.Decrypt(list.Items[0].Password, key))
	assert.Equal(t, "Bank", crypto.Decrypt(list.Items[0].Title, key))
	assert.Empty(t, list.Items[0].URL)

	newPassword := crypto.Encrypt("correct horse", key)
	resp = do(t, srv, http.MethodPut, "/api/vault/"+created.Item.ID, map[string]string{"password": newPassword}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/vault", nil, cookie)
	list = decode[struct {
		Items []entryJSON `json:"items"`
	}](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "correct horse", crypto.Decrypt(list.Items[0].Password, key))
	assert.Equal(t, "me", crypto.Decrypt(list.Items[0].Username, key))

	resp = do(t, srv, http.MethodDelete, "/api/vault/"+created.Item.ID, nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/vault", nil, cookie)
	list = decode[struct {
		Items []entryJSON `json:"items"`
	}](t, resp)
	assert.Empty(t, list.Items)
}

func TestAPI_CrossAccountIsolation(t *testing.T) {
	srv := newServer(t)
	alice := signupAndLogin(t, srv, "alice@x.com", "password123")
	bob := signupAndLogin(t, srv, "bob@x.com", "password456")

	resp := do(t, srv, http.MethodPost, "/api/vault", map[string]string{
		"title": "t", "username": "u", "password": "p",
	}, alice)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[struct {
		Item entryJSON `json:"item"`
	}](t, resp)

	resp = do(t, srv, http.MethodGet, "/api/vault", nil, bob)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[struct {
		Items []entryJSON `json:"items"`
	}](t, resp)
	assert.Empty(t, list.Items)

	resp = do(t, srv, http.MethodPut, "/api/vault/"+created.Item.ID, map[string]string{"title": "x"}, bob)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Item not found or user not authorized.", decode[errorJSON](t, resp).Message)

	resp = do(t, srv, http.MethodDelete, "/api/vault/"+created.Item.ID, nil, bob)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// запись владельца не тронута
	resp = do(t, srv, http.MethodGet, "/api/vault", nil, alice)
	list = decode[struct {
		Items []entryJSON `json:"items"`
	}](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "t", list.Items[0].Title)
}

func TestAPI_UpdateWithoutBody(t *testing.T) {
	srv := newServer(t)
	cookie := signupAndLogin(t, srv, "a@x.com", "password123")

	resp := do(t, srv, http.MethodPost, "/api/vault", map[string]string{
		"title": "t", "username": "u", "password": "p",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[struct {
		Item entryJSON `json:"item"`
	}](t, resp)

	resp = do(t, srv, http.MethodPut, "/api/vault/"+created.Item.ID, nil, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No fields to update.", decode[errorJSON](t, resp).Message)

	resp = do(t, srv, http.MethodPut, "/api/vault/"+created.Item.ID, map[string]string{}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No fields to update.", decode[errorJSON](t, resp).Message)
}

func TestAPI_ErrorBodiesHaveOneShape(t *testing.T) {
	srv := newServer(t)
	signupAndLogin(t, srv, "a@x.com", "password123")

	// ошибка из обработчика huma
	resp := do(t, srv, http.MethodPost, "/api/auth/signup", map[string]string{"email": "a@x.com", "password": "password123"}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, map[string]any{"message": "User already exists!"}, decode[map[string]any](t, resp))

	// ошибка из middleware
	resp = do(t, srv, http.MethodGet, "/api/vault", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, map[string]any{"message": "Not authenticated."}, decode[map[string]any](t, resp))

	// успешный ответ тоже без $schema
	resp = do(t, srv, http.MethodGet, "/api/health", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, decode[map[string]any](t, resp), "$schema")
}

func TestAPI_AuthErrors(t *testing.T) {
	srv := newServer(t)
	cookie := signupAndLogin(t, srv, "a@x.com", "password123")

	creds := map[string]string{"email": "a@x.com", "password": "password123"}
	resp := do(t, srv, http.MethodPost, "/api/auth/signup", creds, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "User already exists!", decode[errorJSON](t, resp).Message)

	resp = do(t, srv, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@x.com", "password": "wrong-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials.", decode[errorJSON](t, resp).Message)

	tampered := *cookie
	tampered.Value += "x"

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "no cookie", cookie: nil},
		{name: "tampered", cookie: &tampered},
		{name: "garbage", cookie: &http.Cookie{Name: session.CookieName, Value: "not-a-jwt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, http.MethodGet, "/api/vault", nil, tt.cookie)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Not authenticated.", decode[errorJSON](t, resp).Message)
		})
	}
}

func TestAPI_Logout(t *testing.T) {
	srv := newServer(t)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		resp := do(t, srv, method, "/api/auth/logout", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, method)

		cleared := authCookie(t, resp)
		assert.Empty(t, cleared.Value)
		assert.Equal(t, -1, cleared.MaxAge)
		assert.Equal(t, "Successfully logged out.", decode[errorJSON](t, resp).Message)
	}
}

func TestAPI_MethodNotAllowed(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		method string
		path   string
		allow  string
	}{
		{method: http.MethodPatch, path: "/api/vault/123", allow: "DELETE, PUT"},
		{method: http.MethodDelete, path: "/api/vault", allow: "GET, POST"},
		{method: http.MethodPut, path: "/api/auth/signup", allow: "POST"},
		{method: http.MethodPost, path: "/api/health", allow: "GET"},
		{method: http.MethodDelete, path: "/api/auth/logout", allow: "GET, POST"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp := do(t, srv, tt.method, tt.path, nil, nil)
			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
			assert.Equal(t, tt.allow, resp.Header.Get("Allow"))
			assert.Equal(t, "Method "+tt.method+" not allowed.", decode[errorJSON](t, resp).Message)
		})
	}
}

func TestAPI_HealthAndMetrics(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, http.MethodGet, "/api/health", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	health := decode[map[string]string](t, resp)
	assert.Equal(t, "OK", health["status"])
	assert.Equal(t, "up", health["database"])

	resp = do(t, srv, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `passvault_http_requests_total{operation="health-check",status="200"} 1`)
}
