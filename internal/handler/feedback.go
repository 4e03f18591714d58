package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feedboard/feedboard/internal/handler/dto"
	"github.com/feedboard/feedboard/internal/model"
	"github.com/feedboard/feedboard/internal/service"
)

// FeedbackHandler handles HTTP requests for feedback operations.
type FeedbackHandler struct {
	svc    *service.FeedbackService
	logger *slog.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(svc *service.FeedbackService, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /feedback.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.List(r.Context()))
}

// Get handles GET /feedback/{id}.
func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// Create handles POST /feedback.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	entry, err := h.svc.Create(r.Context(), service.CreateFeedbackInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("feedback_created",
		"feedback_id", entry.ID,
		"email_fingerprint", emailFingerprint(entry.Email),
		"message_length", len(entry.Message),
	)

	writeJSON(w, http.StatusCreated, entry)
}

// Vote handles PUT /feedback/{id}/vote.
func (h *FeedbackHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.VoteRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	entry, err := h.svc.Vote(r.Context(), service.VoteInput{
		ID:        id,
		Direction: model.VoteDirection(req.Direction),
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("feedback_voted",
		"feedback_id", entry.ID,
		"direction", req.Direction,
		"votes", entry.Votes,
	)

	writeJSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /feedback/{id}.
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("feedback_deleted", "feedback_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses.
func (h *FeedbackHandler) handleServiceError(w http.ResponseWriter, err error) {
	var details []string
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		details = verr.Fields
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		h.writeErrorDetails(w, http.StatusBadRequest, "MISSING_FIELDS", "Name, email, and message are required", details)
	case errors.Is(err, service.ErrInvalidDirection):
		h.writeErrorDetails(w, http.StatusBadRequest, "INVALID_DIRECTION", "Invalid vote direction", details)
	case errors.Is(err, service.ErrFeedbackNotFound):
		h.writeError(w, http.StatusNotFound, "FEEDBACK_NOT_FOUND", "Feedback not found")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *FeedbackHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeErrorDetails(w, status, code, message, nil)
}

func (h *FeedbackHandler) writeErrorDetails(w http.ResponseWriter, status int, code, message string, details []string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// decodeJSON decodes the request body into v. An empty body leaves v at its
// zero value so that field validation reports what is missing.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
