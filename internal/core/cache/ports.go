package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by Get when the key does not exist or has expired.
var ErrCacheMiss = errors.New("key not found")

// Cache defines the caching operations interface following hexagonal architecture.
// This is a port that can be implemented by different cache providers (Redis, no-op, etc.).
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns ErrCacheMiss (wrapped) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the specified key and TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	Delete(ctx context.Context, key string) error

	// Ping checks if the cache service is reachable.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}

// Nop is a Cache that stores nothing. It is used when no Redis URL is configured.
type Nop struct{}

// Get always misses.
func (Nop) Get(_ context.Context, key string) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
}

// Set discards the value.
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete is a no-op.
func (Nop) Delete(context.Context, string) error { return nil }

// Ping always succeeds.
func (Nop) Ping(context.Context) error { return nil }

// Close is a no-op.
func (Nop) Close() error { return nil }
