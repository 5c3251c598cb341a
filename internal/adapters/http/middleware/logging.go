package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/logging"
)

// Logging writes the access log: a single "request completed" line per
// request with the combined log fields plus the request and correlation IDs.
// Requests answered with 5xx are logged at error level.
//
// Handlers further down get a logger already tagged with both IDs through
// logging.FromContext, so their entries line up with the access log.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := logger.With(
				slog.String("request_id", RequestIDFromContext(r.Context())),
				slog.String("correlation_id", CorrelationIDFromContext(r.Context())),
			)
			ctx := logging.WithLogger(r.Context(), reqLogger)

			if reqLogger.Enabled(ctx, slog.LevelDebug) {
				reqLogger.LogAttrs(ctx, slog.LevelDebug, "request headers", RedactHeaders(r.Header)...)
			}

			sr := newStatusRecorder(w)
			next.ServeHTTP(sr, r.WithContext(ctx))

			level := slog.LevelInfo
			if sr.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			reqLogger.LogAttrs(ctx, level, "request completed",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("method", r.Method),
				slog.String("uri", r.RequestURI),
				slog.String("proto", r.Proto),
				slog.Int("status", sr.status),
				slog.Int64("bytes", sr.bytes),
				slog.String("referer", r.Referer()),
				slog.String("user_agent", r.UserAgent()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
