package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-partiql-service/internal/ports"
)

const (
	statusOK       = "ok"
	statusReady    = "ready"
	statusNotReady = "not_ready"
)

type livenessResponse struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler over registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. It never touches the store.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, livenessResponse{Status: statusOK})
}

// Readiness handles GET /health/ready: 200 when the store transport and the
// rate limit backend report healthy, 503 otherwise. Failing checks are
// logged with their reason.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	results := h.registry.CheckAll(ctx)

	resp := readinessResponse{Status: statusReady, Checks: make(map[string]string, len(results))}
	code := http.StatusOK
	for name, err := range results {
		if err == nil {
			resp.Checks[name] = statusOK
			continue
		}
		resp.Checks[name] = err.Error()
		resp.Status = statusNotReady
		code = http.StatusServiceUnavailable
		logging.FromContext(ctx).WarnContext(ctx, "readiness check failed",
			slog.String("check", name),
			slog.String("error", err.Error()),
		)
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, code, resp)
}
