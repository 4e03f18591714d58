// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	"github.com/feedboard/feedboard/internal/metrics"
	"github.com/feedboard/feedboard/internal/model"
	"github.com/feedboard/feedboard/internal/store"
)

// Service errors.
var (
	ErrInvalidInput     = errors.New("name, email, and message are required")
	ErrInvalidDirection = errors.New("invalid vote direction")
	ErrFeedbackNotFound = errors.New("feedback not found")
)

var validate = validator.New()

// ValidationError carries the fields that failed validation.
type ValidationError struct {
	Err    error
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, strings.Join(e.Fields, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FeedbackService handles feedback business logic.
//
// Each operation performs one full load and at most one full save. There is
// no cross-request locking, so concurrent mutations can overwrite each other.
type FeedbackService struct {
	store   store.Store
	metrics metrics.Recorder
	newID   func() string
}

// Option configures a FeedbackService.
type Option func(*FeedbackService)

// WithIDGenerator overrides how entry IDs are generated.
func WithIDGenerator(fn func() string) Option {
	return func(s *FeedbackService) {
		s.newID = fn
	}
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(st store.Store, recorder metrics.Recorder, opts ...Option) *FeedbackService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	s := &FeedbackService{
		store:   st,
		metrics: recorder,
		newID:   generateID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateFeedbackInput defines input for creating an entry.
type CreateFeedbackInput struct {
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Message string `validate:"required"`
}

// VoteInput defines input for voting on an entry.
type VoteInput struct {
	ID        string
	Direction model.VoteDirection `validate:"required,oneof=up down"`
}

// List returns every entry in insertion order.
func (s *FeedbackService) List(ctx context.Context) model.Collection {
	return s.store.Load(ctx)
}

// Get returns a single entry by ID.
func (s *FeedbackService) Get(ctx context.Context, id string) (*model.Entry, error) {
	e, ok := s.store.Load(ctx).Find(id)
	if !ok {
		return nil, ErrFeedbackNotFound
	}
	return e, nil
}

// Create appends a new entry with zero votes.
func (s *FeedbackService) Create(ctx context.Context, input CreateFeedbackInput) (*model.Entry, error) {
	if err := validateStruct(input, ErrInvalidInput); err != nil {
		return nil, err
	}

	c := s.store.Load(ctx)

	entry := model.Entry{
		ID:      s.newID(),
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
		Votes:   0,
	}

	c = append(c, entry)
	s.store.Save(ctx, c)

	s.metrics.IncFeedbackCreated()

	return &entry, nil
}

// Vote moves an entry's count by one in the requested direction.
func (s *FeedbackService) Vote(ctx context.Context, input VoteInput) (*model.Entry, error) {
	if err := validateStruct(input, ErrInvalidDirection); err != nil {
		return nil, err
	}

	c := s.store.Load(ctx)

	e, ok := c.Find(input.ID)
	if !ok {
		return nil, ErrFeedbackNotFound
	}

	e.Apply(input.Direction)
	s.store.Save(ctx, c)

	s.metrics.IncFeedbackVoted(string(input.Direction))

	updated := *e
	return &updated, nil
}

// Delete removes an entry.
func (s *FeedbackService) Delete(ctx context.Context, id string) error {
	c, removed := s.store.Load(ctx).Remove(id)
	if !removed {
		return ErrFeedbackNotFound
	}

	s.store.Save(ctx, c)

	s.metrics.IncFeedbackDeleted()

	return nil
}

// validateStruct runs tag validation and wraps failures in sentinel.
func validateStruct(v any, sentinel error) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, formatFieldError(fe))
	}
	return &ValidationError{Err: sentinel, Fields: fields}
}

// formatFieldError formats a single field validation error.
func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// generateID returns a new lexicographically sortable entry ID.
func generateID() string {
	return ulid.Make().String()
}

