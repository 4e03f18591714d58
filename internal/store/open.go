package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/feedboard/feedboard/internal/metrics"
)

// Supported backend drivers.
const (
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Driver        string
	DataFile      string
	RedisURL      string
	RedisKey      string
	DatabaseURL   string
	PostgresTable string
}

// Open connects the configured backend, wraps it in a DocumentStore and
// makes sure an (empty) document exists.
func Open(ctx context.Context, opts Options, logger *slog.Logger, recorder metrics.Recorder) (*DocumentStore, error) {
	backend, err := openBackend(ctx, opts)
	if err != nil {
		return nil, err
	}

	s := NewDocumentStore(backend, logger, recorder)
	if err := s.Init(ctx); err != nil {
		_ = backend.Close()
		return nil, err
	}

	return s, nil
}

func openBackend(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case DriverFile, "":
		return NewFileBackend(opts.DataFile), nil
	case DriverRedis:
		return NewRedisBackend(ctx, opts.RedisURL, opts.RedisKey)
	case DriverPostgres:
		return NewPostgresBackend(ctx, opts.DatabaseURL, opts.PostgresTable)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
