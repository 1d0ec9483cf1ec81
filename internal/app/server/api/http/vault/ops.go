package vault

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var cookieAuth = []map[string][]string{{"cookieAuth": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-list",
		Method:      http.MethodGet,
		Path:        "/api/vault",
		Summary:     "Список записей аккаунта",
		Tags:        []string{"vault"},
		Security:    cookieAuth,
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "vault-create",
		Method:        http.MethodPost,
		Path:          "/api/vault",
		Summary:       "Добавить запись",
		Description:   "Все поля шифруются на клиенте, сервер хранит шифротекст как есть.",
		Tags:          []string{"vault"},
		DefaultStatus: http.StatusCreated,
		Security:      cookieAuth,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-update",
		Method:      http.MethodPut,
		Path:        "/api/vault/{id}",
		Summary:     "Частично обновить запись",
		Tags:        []string{"vault"},
		Security:    cookieAuth,
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-delete",
		Method:      http.MethodDelete,
		Path:        "/api/vault/{id}",
		Summary:     "Удалить запись",
		Tags:        []string{"vault"},
		Security:    cookieAuth,
		Middlewares: h.middleware,
	}
}
