package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/validation"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/logging"
)

// Validate returns middleware that checks the body parsed by ParseJSON
// against rules. On failure it answers 400 with rejectMessage and the next
// handler is not called. Field details are logged, never returned.
func Validate(rejectMessage string, rules validation.Rules) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if err := rules.Check(BodyFromContext(ctx)); err != nil {
				logging.FromContext(ctx).DebugContext(ctx, "request body rejected",
					slog.String("error", err.Error()),
				)
				dto.WriteError(w, err, rejectMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
