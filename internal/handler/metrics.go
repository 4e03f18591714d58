package handler

import (
	"net/http"
)

// MetricsHandler exposes recorded metrics in Prometheus exposition format.
type MetricsHandler struct {
	exporter http.Handler
}

// NewMetricsHandler creates a new MetricsHandler around an exposition handler.
func NewMetricsHandler(exporter http.Handler) *MetricsHandler {
	return &MetricsHandler{exporter: exporter}
}

// Metrics serves the current metric values.
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	h.exporter.ServeHTTP(w, r)
}
