package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/dto"
)

// Recovery turns a handler panic into a plain-text 500 and an error log
// entry with the stack. The panic value stays in the log. When the handler
// already started the response, only the log entry is written.
//
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sr := newStatusRecorder(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", RequestIDFromContext(r.Context())),
				)

				if !sr.written {
					dto.WriteText(sr, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				}
			}()

			next.ServeHTTP(sr, r)
		})
	}
}
