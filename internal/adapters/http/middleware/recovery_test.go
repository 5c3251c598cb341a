package middleware_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/middleware"
)

func serveRecovered(t *testing.T, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	middleware.Recovery(quietLogger())(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/todo", http.NoBody))
	return rec
}

func TestRecovery_PassesThrough(t *testing.T) {
	t.Parallel()

	rec := serveRecovered(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("success"))
	})

	if rec.Code != http.StatusOK || rec.Body.String() != "success" {
		t.Errorf("got %d %q, want 200 %q", rec.Code, rec.Body.String(), "success")
	}
}

func TestRecovery_PanicBecomes500(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
	}{
		{"string", "store handle is nil"},
		{"error", errors.New("boom")},
		{"int", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serveRecovered(t, func(http.ResponseWriter, *http.Request) {
				panic(tt.value)
			})

			if rec.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
				t.Errorf("Content-Type = %q", ct)
			}
			if got := rec.Body.String(); got != "Internal Server Error" {
				t.Errorf("body = %q, want %q", got, "Internal Server Error")
			}
		})
	}
}

func TestRecovery_LogsValueAndStack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.Recovery(debugLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("store handle is nil")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/todo", http.NoBody))

	out := buf.String()
	for _, want := range []string{"panic recovered", "store handle is nil", "goroutine", "method=DELETE", "path=/api/todo"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q", want)
		}
	}
	if strings.Contains(rec.Body.String(), "store handle") {
		t.Error("panic value leaked into response")
	}
}

func TestRecovery_KeepsStartedResponse(t *testing.T) {
	t.Parallel()

	rec := serveRecovered(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("[{"))
		panic("encoder failed")
	})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "[{" {
		t.Errorf("body = %q, want partial body only", rec.Body.String())
	}
}

func TestRecovery_ReraisesAbortHandler(t *testing.T) {
	t.Parallel()

	defer func() {
		if v := recover(); v != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler", v)
		}
	}()

	serveRecovered(t, func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	})
	t.Error("ErrAbortHandler was swallowed")
}
