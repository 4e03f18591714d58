package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// DefaultPostgresTable is the table holding the document when none is configured.
const DefaultPostgresTable = "feedback_documents"

// documentName is the primary key of the single row holding the collection.
const documentName = "feedback"

// PostgresBackend keeps the document in one jsonb row.
type PostgresBackend struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresBackend creates a connection pool and verifies the connection.
func NewPostgresBackend(ctx context.Context, databaseURL, table string) (*PostgresBackend, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgresBackendFromPool(pool, table), nil
}

// NewPostgresBackendFromPool wraps an existing pool.
func NewPostgresBackendFromPool(pool *pgxpool.Pool, table string) *PostgresBackend {
	if table == "" {
		table = DefaultPostgresTable
	}
	return &PostgresBackend{
		pool:  pool,
		table: pq.QuoteIdentifier(table),
	}
}

// Name returns "postgres".
func (b *PostgresBackend) Name() string {
	return "postgres"
}

// Init creates the table if needed and inserts an empty document.
func (b *PostgresBackend) Init(ctx context.Context) error {
	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name       TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, b.table)
	if _, err := b.pool.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create document table: %w", err)
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (name, body)
		VALUES ($1, $2::jsonb)
		ON CONFLICT (name) DO NOTHING
	`, b.table)
	if _, err := b.pool.Exec(ctx, insert, documentName, string(emptyDocument)); err != nil {
		return fmt.Errorf("failed to insert empty document: %w", err)
	}

	return nil
}

// Read returns the stored document.
func (b *PostgresBackend) Read(ctx context.Context) ([]byte, error) {
	query := fmt.Sprintf(`SELECT body::text FROM %s WHERE name = $1`, b.table)

	var body string
	if err := b.pool.QueryRow(ctx, query, documentName).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	return []byte(body), nil
}

// Write overwrites the stored document, creating the row if it is missing.
func (b *PostgresBackend) Write(ctx context.Context, data []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, body, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
	`, b.table)

	if _, err := b.pool.Exec(ctx, query, documentName, string(data)); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (b *PostgresBackend) Ping(ctx context.Context) error {
	return b.pool.Ping(ctx)
}

// Close closes the connection pool.
func (b *PostgresBackend) Close() error {
	b.pool.Close()
	return nil
}
