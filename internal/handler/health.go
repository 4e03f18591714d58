package handler

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	checks  map[string]HealthChecker
	timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
// Each entry in checks is pinged by Readyz under its map key; a nil checker
// is reported as "not configured".
func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is a liveness probe endpoint.
// It returns 200 if the server is running, with no dependency checks.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is a readiness probe endpoint.
// It pings every registered dependency and returns 200 only if all are healthy.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]string, len(names))
	healthy := true

	for _, name := range names {
		checker := h.checks[name]
		if checker == nil {
			checks[name] = "not configured"
			continue
		}
		if err := checker.Ping(ctx); err != nil {
			checks[name] = "error: " + err.Error()
			healthy = false
			continue
		}
		checks[name] = "ok"
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{
		Status: status,
		Checks: checks,
	})
}
