package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-partiql-service/internal/ports"
)

// Rate limit response headers.
const (
	headerRateLimit     = "X-RateLimit-Limit"
	headerRateRemaining = "X-RateLimit-Remaining"
	headerRateReset     = "X-RateLimit-Reset"
	headerRetryAfter    = "Retry-After"
)

// RateLimitOptions configures the RateLimit middleware.
type RateLimitOptions struct {
	// PathPrefix restricts limiting to paths equal to it or below it.
	// Empty or "/" limits every path.
	PathPrefix string

	// TrustForwardedFor keys clients by the first X-Forwarded-For hop.
	// Enable only behind a proxy that sets the header.
	TrustForwardedFor bool

	// Backend labels the rejection metric ("memory" or "redis").
	Backend string

	// Metrics is optional.
	Metrics *telemetry.Metrics
}

// RateLimit returns middleware that counts requests per client with limiter
// and answers 429 once a client exceeds its window. Every limited response
// carries X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset
// (Unix seconds). If the limiter fails the request is let through and a
// warning is logged.
func RateLimit(limiter ports.RateLimiter, opts RateLimitOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !underPrefix(r.URL.Path, opts.PathPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := ClientKey(r, opts.TrustForwardedFor)

			dec, err := limiter.Allow(ctx, key)
			if err != nil {
				logging.FromContext(ctx).WarnContext(ctx, "rate limiter unavailable, allowing request",
					slog.String("client", key),
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set(headerRateLimit, strconv.Itoa(dec.Limit))
			h.Set(headerRateRemaining, strconv.Itoa(dec.Remaining))
			h.Set(headerRateReset, strconv.FormatInt(int64(math.Ceil(float64(dec.ResetAt.UnixMilli())/1000)), 10))

			if !dec.Allowed {
				h.Set(headerRetryAfter, strconv.Itoa(retryAfterSeconds(dec.ResetAt)))
				if opts.Metrics != nil {
					opts.Metrics.RateLimitRejected.Add(ctx, 1,
						metric.WithAttributes(telemetry.AttrBackend.String(opts.Backend)))
				}
				dto.WriteText(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey identifies the client of r: the first X-Forwarded-For hop when
// trustXFF is set and the header is present, otherwise the host part of
// RemoteAddr.
func ClientKey(r *http.Request, trustXFF bool) string {
	if trustXFF {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	if addr != "" {
		return addr
	}
	return "unknown"
}

func underPrefix(path, prefix string) bool {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// retryAfterSeconds rounds the wait up to whole seconds, at least one.
func retryAfterSeconds(resetAt time.Time) int {
	secs := int(math.Ceil(time.Until(resetAt).Seconds()))
	return max(secs, 1)
}
