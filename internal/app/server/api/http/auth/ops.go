package auth

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) signupOp() huma.Operation {
	return huma.Operation{
		OperationID:   "auth-signup",
		Method:        http.MethodPost,
		Path:          "/api/auth/signup",
		Summary:       "Регистрация аккаунта",
		Tags:          []string{"auth"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Вход, устанавливает cookie auth_token",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) logoutOp(method string) huma.Operation {
	return huma.Operation{
		OperationID: "auth-logout-" + strings.ToLower(method),
		Method:      method,
		Path:        "/api/auth/logout",
		Summary:     "Выход, удаляет cookie auth_token",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}
