// Package store persists the feedback collection as a single JSON document.
//
// Every mutation is a full read, modify and full rewrite of the document.
// There is no locking: two overlapping writers race and the last one wins.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/feedboard/feedboard/internal/metrics"
	"github.com/feedboard/feedboard/internal/model"
)

// ErrDocumentNotFound is returned by a Backend when no document exists yet.
var ErrDocumentNotFound = errors.New("feedback document not found")

// emptyDocument is written by Init when no document exists.
var emptyDocument = []byte("[]")

// Store loads and saves the whole feedback collection.
//
// Load never fails from the caller's point of view: an unreadable or corrupt
// document yields an empty collection. Save failures are logged and dropped.
type Store interface {
	Load(ctx context.Context) model.Collection
	Save(ctx context.Context, c model.Collection)
}

// Backend reads and writes the raw serialized document.
type Backend interface {
	// Init creates an empty document if none exists.
	Init(ctx context.Context) error
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Ping(ctx context.Context) error
	Close() error
	Name() string
}

// DocumentStore implements Store over a Backend using a JSON codec.
type DocumentStore struct {
	backend Backend
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewDocumentStore creates a DocumentStore.
func NewDocumentStore(backend Backend, logger *slog.Logger, recorder metrics.Recorder) *DocumentStore {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &DocumentStore{
		backend: backend,
		logger:  logger.With(slog.String("backend", backend.Name())),
		metrics: recorder,
	}
}

// Init creates the document if it does not exist yet.
// Unlike Load and Save, failures here are returned: the service cannot start
// without somewhere to persist.
func (s *DocumentStore) Init(ctx context.Context) error {
	if err := s.backend.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize %s store: %w", s.backend.Name(), err)
	}
	return nil
}

// Load reads and decodes the collection.
func (s *DocumentStore) Load(ctx context.Context) model.Collection {
	start := time.Now()
	defer func() {
		s.metrics.ObserveStoreDuration(metrics.OpLoad, time.Since(start))
	}()

	data, err := s.backend.Read(ctx)
	if err != nil {
		s.fail(ctx, metrics.OpLoad, fmt.Errorf("read document: %w", err))
		return model.Collection{}
	}

	var c model.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		s.fail(ctx, metrics.OpLoad, fmt.Errorf("decode document: %w", err))
		return model.Collection{}
	}
	if c == nil {
		c = model.Collection{}
	}

	return c
}

// Save encodes and overwrites the collection.
func (s *DocumentStore) Save(ctx context.Context, c model.Collection) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveStoreDuration(metrics.OpSave, time.Since(start))
	}()

	if c == nil {
		c = model.Collection{}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		s.fail(ctx, metrics.OpSave, fmt.Errorf("encode document: %w", err))
		return
	}

	if err := s.backend.Write(ctx, data); err != nil {
		s.fail(ctx, metrics.OpSave, fmt.Errorf("write document: %w", err))
	}
}

// Ping checks backend connectivity.
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Close releases backend resources.
func (s *DocumentStore) Close() error {
	return s.backend.Close()
}

// Backend returns the underlying backend.
func (s *DocumentStore) Backend() Backend {
	return s.backend
}

func (s *DocumentStore) fail(ctx context.Context, op string, err error) {
	s.metrics.IncStoreFailure(op)
	s.logger.ErrorContext(ctx, "store_"+op+"_failed", slog.String("error", err.Error()))
}
