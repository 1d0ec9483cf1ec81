// POST   /api/auth/signup   # Регистрация (публичный)
// POST   /api/auth/login    # Вход, ставит cookie auth_token (публичный)
// GET    /api/auth/logout   # Выход, удаляет cookie (публичный, также POST)
// GET    /api/vault         # Список записей (cookie)
// POST   /api/vault         # Создать запись (cookie)
// PUT    /api/vault/{id}    # Частично обновить запись (cookie)
// DELETE /api/vault/{id}    # Удалить запись (cookie)
// GET    /api/health        # Состояние сервиса
// GET    /metrics           # Метрики Prometheus

package api

import (
	"fmt"
	"net/http"
	"strings"

	authAPI "passvault/internal/app/server/api/http/auth"
	"passvault/internal/app/server/api/http/apierr"
	healthAPI "passvault/internal/app/server/api/http/health"
	"passvault/internal/app/server/api/http/middleware"
	"passvault/internal/app/server/api/http/middleware/auth"
	"passvault/internal/app/server/api/http/middleware/logger"
	"passvault/internal/app/server/api/http/middleware/metrics"
	vaultAPI "passvault/internal/app/server/api/http/vault"
	"passvault/internal/domain/account"
	"passvault/internal/domain/session"
	"passvault/internal/domain/vault"
	"passvault/internal/infrastructure/storage"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"
)

// методы в порядке, в котором они перечисляются в заголовке Allow
var knownMethods = []string{
	http.MethodDelete,
	http.MethodGet,
	http.MethodPatch,
	http.MethodPost,
	http.MethodPut,
}

type Options struct {
	// SecureCookies помечает cookie атрибутом Secure
	SecureCookies bool
	// Registry — реестр метрик; nil создает новый
	Registry *prometheus.Registry
}

type Handlers struct {
	Health *healthAPI.Handler
	Auth   *authAPI.Handler
	Vault  *vaultAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(store storage.Store, sessions session.Servicer, opts Options, log *slog.Logger) *chi.Mux {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	mux := chi.NewMux()
	mux.Use(chimw.RequestID, chimw.Recoverer)
	mux.MethodNotAllowed(methodNotAllowed(mux))
	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierr.WriteHTTP(w, http.StatusNotFound, "Not found.")
	})

	config := huma.DefaultConfig("passvault API", "1.0.0")
	// без ссылки $schema тела ошибок huma совпадают с ответами middleware
	config.CreateHooks = nil
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {Type: "apiKey", In: "cookie", Name: session.CookieName},
	}

	API := humachi.New(mux, config)

	h := handlers(store, sessions, opts, log)
	h.Health.SetupRoutes(API)
	h.Auth.SetupRoutes(API)
	h.Vault.SetupRoutes(API)

	mux.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	return mux
}

func handlers(store storage.Store, sessions session.Servicer, opts Options, log *slog.Logger) *Handlers {
	authMW := auth.New(sessions, log)
	loggerMW := logger.New(log)
	metricsMW := metrics.New(opts.Registry)
	middlewares := middleware.NewContainer(loggerMW.Middleware(), metricsMW.Middleware())

	healthHandler := healthAPI.NewHandler(store, log, middlewares.GetAllAndClear())

	accountService := account.NewService(store.Accounts(), account.NewCredentialsValidator(), log)
	authHandler := authAPI.NewHandler(accountService, sessions, opts.SecureCookies, log, middlewares.GetAllAndClear())

	vaultService := vault.NewService(store.Vault(), log)
	middlewares.Add(authMW.Middleware())
	vaultHandler := vaultAPI.NewHandler(vaultService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Auth:   authHandler,
		Vault:  vaultHandler,
	}
}

// methodNotAllowed отвечает 405 и перечисляет в Allow методы, которые
// маршрут поддерживает
func methodNotAllowed(mux *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, m := range knownMethods {
			if mux.Match(chi.NewRouteContext(), m, r.URL.Path) {
				allowed = append(allowed, m)
			}
		}

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		apierr.WriteHTTP(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed.", r.Method))
	}
}
