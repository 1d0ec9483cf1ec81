// Package apierr приводит ошибки API к виду {"message": "..."}.
package apierr

import (
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const (
	MsgNotAuthenticated = "Not authenticated."
	MsgInternal         = "An internal server error occurred."
)

// Error — тело ошибки API
type Error struct {
	Status  int      `json:"-"`
	Message string   `json:"message" doc:"Human readable error message"`
	Errors  []string `json:"errors,omitempty" doc:"Validation details"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetStatus() int {
	return e.Status
}

// New создает ошибку с заданным статусом
func New(status int, msg string, errs ...error) huma.StatusError {
	e := &Error{Status: status, Message: msg}
	for _, err := range errs {
		if err != nil {
			e.Errors = append(e.Errors, err.Error())
		}
	}
	return e
}

// конструктор ошибок huma подменяется один раз на процесс
func init() {
	huma.NewError = New
}

// Write пишет ошибку напрямую, для middleware вне huma.Register
func Write(ctx huma.Context, status int, msg string) {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(status)
	_ = json.NewEncoder(ctx.BodyWriter()).Encode(&Error{Status: status, Message: msg})
}

// WriteHTTP — то же для обычных net/http обработчиков
func WriteHTTP(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&Error{Status: status, Message: msg})
}
