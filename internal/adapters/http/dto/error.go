package dto

import (
	"errors"
	"net/http"

	"github.com/jsamuelsen11/todo-partiql-service/internal/domain"
)

// Plain-text bodies returned by the todo routes. Error bodies are
// deliberately generic: the underlying error is only logged.
const (
	MsgSuccess           = "success"
	MsgInvalidBody       = "Invalid body"
	MsgInsertFailed      = "insertion went wrong"
	MsgQueryFailed       = "query went wrong"
	MsgInvalidDeleteBody = "Invalid Request Body"
	MsgDeleteFailed      = "something went wrong"
	MsgInvalidJSON       = "Invalid JSON body"
	MsgBodyTooLarge      = "Payload Too Large"
)

// WriteText writes msg as a text/plain body with the given status.
func WriteText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// WriteError answers err with the status its domain sentinel maps to and
// the route's generic message.
func WriteError(w http.ResponseWriter, err error, msg string) {
	WriteText(w, StatusFor(err), msg)
}

// StatusFor maps domain sentinel errors to HTTP status codes. Store
// failures, including an open circuit breaker, are answered with 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
