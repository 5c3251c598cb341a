package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/logging"
)

func TestTimeout_FastHandlerResponseCopied(t *testing.T) {
	t.Parallel()

	handler := middleware.Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/todo", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "[]" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "[]")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestTimeout_ImplicitStatusIsOK(t *testing.T) {
	t.Parallel()

	handler := middleware.Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("success"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/todo", http.NoBody))

	if rec.Code != http.StatusOK || rec.Body.String() != "success" {
		t.Errorf("got %d %q, want 200 %q", rec.Code, rec.Body.String(), "success")
	}
}

func TestTimeout_HungStoreCallGets504(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.Timeout(30 * time.Millisecond)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/todo", http.NoBody)
	req = req.WithContext(logging.WithLogger(req.Context(), debugLogger(&buf)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
	if got := rec.Body.String(); got != "Gateway Timeout" {
		t.Errorf("body = %q, want %q", got, "Gateway Timeout")
	}
	if !strings.Contains(buf.String(), "request timed out") {
		t.Errorf("missing timeout warning: %s", buf.String())
	}
}

func TestTimeout_PartialResponseDiscarded(t *testing.T) {
	t.Parallel()

	handler := middleware.Timeout(30 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("[{"))
		<-r.Context().Done()
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/todo", http.NoBody))

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
	if strings.Contains(rec.Body.String(), "[{") {
		t.Errorf("partial body leaked: %q", rec.Body.String())
	}
}

func TestTimeout_DeadlineReachesHandler(t *testing.T) {
	t.Parallel()

	var remaining time.Duration
	handler := middleware.Timeout(time.Second)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		if dl, ok := r.Context().Deadline(); ok {
			remaining = time.Until(dl)
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/todo", http.NoBody))

	if remaining <= 0 || remaining > time.Second {
		t.Errorf("remaining = %v, want within (0, 1s]", remaining)
	}
}

func TestTimeout_PanicReachesRecovery(t *testing.T) {
	t.Parallel()

	handler := middleware.Chain(
		middleware.Recovery(quietLogger()),
		middleware.Timeout(time.Second),
	)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("handler bug")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/todo", http.NoBody))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
