package handlers_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-partiql-service/mocks"
)

func TestLiveness(t *testing.T) {
	t.Parallel()

	// The registry must not be consulted; the mock fails on any call.
	h := handlers.NewHealthHandler(mocks.NewMockHealthRegistry(t))

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", http.NoBody))

	requireStatus(t, rec, http.StatusOK)
	if got := decodeJSON[map[string]string](t, rec)["status"]; got != "ok" {
		t.Errorf("status = %q, want %q", got, "ok")
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	type readiness struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}

	tests := []struct {
		name       string
		results    map[string]error
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{
			name:       "nothing registered",
			results:    map[string]error{},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
			wantChecks: map[string]string{},
		},
		{
			name:       "breaker closed",
			results:    map[string]error{"dynamodb": nil},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
			wantChecks: map[string]string{"dynamodb": "ok"},
		},
		{
			name: "breaker open",
			results: map[string]error{
				"dynamodb": errors.New("dynamodb: failing (circuit breaker open)"),
				"redis":    nil,
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "not_ready",
			wantChecks: map[string]string{
				"dynamodb": "dynamodb: failing (circuit breaker open)",
				"redis":    "ok",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.results)

			rec := httptest.NewRecorder()
			handlers.NewHealthHandler(registry).Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", http.NoBody))

			requireStatus(t, rec, tt.wantCode)
			if got := rec.Header().Get("Cache-Control"); got != "no-store" {
				t.Errorf("Cache-Control = %q, want no-store", got)
			}

			got := decodeJSON[readiness](t, rec)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.wantStatus)
			}
			if len(got.Checks) != len(tt.wantChecks) {
				t.Fatalf("checks = %v, want %v", got.Checks, tt.wantChecks)
			}
			for name, want := range tt.wantChecks {
				if got.Checks[name] != want {
					t.Errorf("checks[%s] = %q, want %q", name, got.Checks[name], want)
				}
			}
		})
	}
}

func TestReadiness_WarnsPerFailingCheck(t *testing.T) {
	t.Parallel()

	registry := mocks.NewMockHealthRegistry(t)
	registry.EXPECT().CheckAll(mock.Anything).Return(map[string]error{
		"redis":    errors.New("dial tcp: connection refused"),
		"dynamodb": nil,
	})

	var buf bytes.Buffer
	req := httptest.NewRequest(http.MethodGet, "/health/ready", http.NoBody)
	req = req.WithContext(logging.WithLogger(req.Context(), slog.New(slog.NewJSONHandler(&buf, nil))))

	handlers.NewHealthHandler(registry).Readiness(httptest.NewRecorder(), req)

	out := buf.String()
	if n := strings.Count(out, "readiness check failed"); n != 1 {
		t.Errorf("warnings = %d, want 1: %s", n, out)
	}
	if !strings.Contains(out, `"check":"redis"`) || !strings.Contains(out, `"level":"WARN"`) {
		t.Errorf("log = %s, want a WARN entry for redis", out)
	}
}
