package middleware

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/logging"
)

// Timeout bounds every request by d. The handler runs with a context that
// expires after d and writes into a buffer; if it finishes in time the
// buffer is copied out, otherwise the buffer is dropped and the client
// receives 504 Gateway Timeout. The store call sees the same deadline.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			bw := &bufferedWriter{header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if v := recover(); v != nil {
						panicked <- v
					}
				}()
				next.ServeHTTP(bw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case v := <-panicked:
				panic(v)
			case <-done:
				bw.mu.Lock()
				defer bw.mu.Unlock()
				bw.copyTo(w)
			case <-ctx.Done():
				bw.mu.Lock()
				bw.expired = true
				bw.mu.Unlock()

				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					logging.FromContext(r.Context()).LogAttrs(r.Context(), slog.LevelWarn, "request timed out",
						slog.Duration("timeout", d),
						slog.String("path", r.URL.Path),
					)
				}
				dto.WriteText(w, http.StatusGatewayTimeout, http.StatusText(http.StatusGatewayTimeout))
			}
		})
	}
}

// bufferedWriter holds a handler's response until Timeout decides whether
// to send it. Writes after expiry fail with http.ErrHandlerTimeout.
type bufferedWriter struct {
	mu      sync.Mutex
	header  http.Header
	body    []byte
	status  int
	expired bool
}

// Header is only safe to mutate from the handler goroutine before it
// returns.
func (bw *bufferedWriter) Header() http.Header {
	return bw.header
}

func (bw *bufferedWriter) WriteHeader(code int) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.expired || bw.status != 0 {
		return
	}
	bw.status = code
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.expired {
		return 0, http.ErrHandlerTimeout
	}
	if bw.status == 0 {
		bw.status = http.StatusOK
	}
	bw.body = append(bw.body, b...)
	return len(b), nil
}

// copyTo must be called with bw.mu held.
func (bw *bufferedWriter) copyTo(w http.ResponseWriter) {
	maps.Copy(w.Header(), bw.header)
	if bw.status != 0 {
		w.WriteHeader(bw.status)
	}
	if len(bw.body) > 0 {
		_, _ = w.Write(bw.body)
	}
}
