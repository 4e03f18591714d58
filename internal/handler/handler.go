// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/feedboard/feedboard/internal/handler/dto"
)

// Version is reported by the index endpoint.
const Version = "0.1.0"

// Handler serves the service-level endpoints that are not tied to a resource.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Index describes the service.
// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Feedback board API",
		"version": Version,
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
		Error: "resource not found",
		Code:  "NOT_FOUND",
	})
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, dto.ErrorResponse{
		Error: "method not allowed",
		Code:  "METHOD_NOT_ALLOWED",
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; an encode failure means the client went away.
	_ = json.NewEncoder(w).Encode(data)
}
