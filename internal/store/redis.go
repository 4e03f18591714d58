package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key holding the document when none is configured.
const DefaultRedisKey = "feedboard:feedback"

// RedisBackend keeps the document as a single string value in Redis.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend connects to Redis and verifies the connection.
func NewRedisBackend(ctx context.Context, redisURL, key string) (*RedisBackend, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connection pool settings
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return NewRedisBackendFromClient(client, key), nil
}

// NewRedisBackendFromClient wraps an existing client.
func NewRedisBackendFromClient(client *redis.Client, key string) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{client: client, key: key}
}

// Name returns "redis".
func (b *RedisBackend) Name() string {
	return "redis"
}

// Key returns the key holding the document.
func (b *RedisBackend) Key() string {
	return b.key
}

// Init sets an empty document unless the key already exists.
func (b *RedisBackend) Init(ctx context.Context) error {
	if err := b.client.SetNX(ctx, b.key, emptyDocument, 0).Err(); err != nil {
		return fmt.Errorf("redis setnx failed: %w", err)
	}
	return nil
}

// Read returns the stored document.
func (b *RedisBackend) Read(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

// Write overwrites the stored document.
func (b *RedisBackend) Write(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity.
func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
