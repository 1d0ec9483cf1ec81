package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"passvault/internal/app/client/config"
	"passvault/internal/domain/vault"

	"golang.org/x/exp/slog"
)

const (
	pathSignup = "/api/auth/signup"
	pathLogin  = "/api/auth/login"
	pathLogout = "/api/auth/logout"
	pathVault  = "/api/vault"
	pathHealth = "/api/health"
)

// APIError — ответ сервера со статусом 4xx/5xx
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ошибка сервера: статус %d", e.Status)
	}
	return fmt.Sprintf("ошибка сервера (%d): %s", e.Status, e.Message)
}

// StatusOf возвращает HTTP-статус из цепочки ошибок или 0
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// httpClient ходит в API хранилища. Cookie auth_token живет в jar
// и подставляется автоматически, код клиента его не читает.
type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания cookie jar: %w", err)
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
		Jar:     jar,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &httpClient{
		client:    client,
		log:       log.With(slog.String("component", "http_client")),
		baseURL:   cfg.ServerAddress,
		userAgent: "passvault-cli/1.0",
	}, nil
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, pathHealth, nil)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) Signup(ctx context.Context, email, password string) error {
	resp, err := h.doRequest(ctx, http.MethodPost, pathSignup, credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// Login при успехе сохраняет cookie сессии в jar
func (h *httpClient) Login(ctx context.Context, email, password string) error {
	resp, err := h.doRequest(ctx, http.MethodPost, pathLogin, credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// Logout просит сервер удалить cookie сессии
func (h *httpClient) Logout(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, pathLogout, nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) ListEntries(ctx context.Context) ([]vault.Entry, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, pathVault, nil)
	if err != nil {
		return nil, err
	}

	var listResp struct {
		Items []vault.Entry `json:"items"`
	}
	if err := h.parseResponse(resp, &listResp); err != nil {
		return nil, err
	}
	return listResp.Items, nil
}

func (h *httpClient) CreateEntry(ctx context.Context, fields vault.Fields) (vault.Entry, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, pathVault, fields)
	if err != nil {
		return vault.Entry{}, err
	}

	var itemResp itemResponse
	if err := h.parseResponse(resp, &itemResp); err != nil {
		return vault.Entry{}, err
	}
	return itemResp.Item, nil
}

func (h *httpClient) UpdateEntry(ctx context.Context, id string, patch vault.Patch) (vault.Entry, error) {
	resp, err := h.doRequest(ctx, http.MethodPut, pathVault+"/"+url.PathEscape(id), patch)
	if err != nil {
		return vault.Entry{}, err
	}

	var itemResp itemResponse
	if err := h.parseResponse(resp, &itemResp); err != nil {
		return vault.Entry{}, err
	}
	return itemResp.Item, nil
}

func (h *httpClient) DeleteEntry(ctx context.Context, id string) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, pathVault+"/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type itemResponse struct {
	Message string      `json:"message"`
	Item    vault.Entry `json:"item"`
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// тело не логируется: в нем пароль или шифротекст
	h.log.Debug("sending request", slog.String("method", method), slog.String("path", path))

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("response received", slog.Int("status", resp.StatusCode))

	if resp.StatusCode >= 400 {
		var errResp struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &errResp)
		return &APIError{Status: resp.StatusCode, Message: errResp.Message}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}
	return nil
}
