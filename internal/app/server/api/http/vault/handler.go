package vault

import (
	"context"
	"errors"
	"net/http"

	"passvault/internal/app/server/api/http/apierr"
	"passvault/internal/app/server/api/http/middleware/auth"
	"passvault/internal/domain/vault"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	msgAdded    = "Item added successfully!"
	msgUpdated  = "Item updated successfully!"
	msgDeleted  = "Item deleted successfully."
	msgRequired = "Title, username, and password are required."
	msgNoFields = "No fields to update."
	msgNotFound = "Item not found or user not authorized."
)

type Handler struct {
	service    vault.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service vault.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	accountID, ok := auth.AccountID(ctx)
	if !ok {
		return nil, apierr.New(http.StatusUnauthorized, apierr.MsgNotAuthenticated)
	}

	entries, err := h.service.List(ctx, accountID)
	if err != nil {
		return nil, h.mapError(err)
	}

	out := &listOutput{}
	out.Body.Items = entries
	return out, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*itemOutput, error) {
	accountID, ok := auth.AccountID(ctx)
	if !ok {
		return nil, apierr.New(http.StatusUnauthorized, apierr.MsgNotAuthenticated)
	}

	entry, err := h.service.Create(ctx, accountID, vault.Fields{
		Title:    input.Body.Title,
		Username: input.Body.Username,
		Password: input.Body.Password,
		URL:      input.Body.URL,
		Notes:    input.Body.Notes,
	})
	if err != nil {
		return nil, h.mapError(err)
	}

	return &itemOutput{Body: itemResponse{Message: msgAdded, Item: entry}}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*itemOutput, error) {
	accountID, ok := auth.AccountID(ctx)
	if !ok {
		return nil, apierr.New(http.StatusUnauthorized, apierr.MsgNotAuthenticated)
	}

	// запрос без тела равносилен пустому патчу
	var patch vault.Patch
	if body := input.Body; body != nil {
		patch = vault.Patch{
			Title:    body.Title,
			Username: body.Username,
			Password: body.Password,
			URL:      body.URL,
			Notes:    body.Notes,
		}
	}

	entry, err := h.service.Update(ctx, accountID, input.ID, patch)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &itemOutput{Body: itemResponse{Message: msgUpdated, Item: entry}}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*messageOutput, error) {
	accountID, ok := auth.AccountID(ctx)
	if !ok {
		return nil, apierr.New(http.StatusUnauthorized, apierr.MsgNotAuthenticated)
	}

	if err := h.service.Delete(ctx, accountID, input.ID); err != nil {
		return nil, h.mapError(err)
	}

	out := &messageOutput{}
	out.Body.Message = msgDeleted
	return out, nil
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, vault.ErrInvalidData):
		return apierr.New(http.StatusUnprocessableEntity, msgRequired)
	case errors.Is(err, vault.ErrEmptyUpdate):
		return apierr.New(http.StatusBadRequest, msgNoFields)
	case errors.Is(err, vault.ErrNotFound):
		return apierr.New(http.StatusNotFound, msgNotFound)
	default:
		h.log.Error("vault request failed", slog.String("error", err.Error()))
		return apierr.New(http.StatusInternalServerError, apierr.MsgInternal)
	}
}
