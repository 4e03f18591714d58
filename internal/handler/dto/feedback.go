// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// CreateFeedbackRequest represents the request body for creating an entry.
type CreateFeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// VoteRequest represents the request body for voting on an entry.
type VoteRequest struct {
	Direction string `json:"direction"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}
