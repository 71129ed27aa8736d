// Package kv wraps the key-value backend used for session state. The same
// contract is served by a remote Redis instance or by an in-process TTL cache,
// selected once at startup depending on which connection settings are present.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when a key is absent or has expired.
var ErrNotFound = errors.New("kv: key not found")

// Store is the contract handlers and trackers depend on. All mutations are
// visible to reads issued after the call returns; Incr must be atomic so that
// concurrent writers never lose counter updates.
type Store interface {
	// Get returns the value for key, or ErrNotFound when absent.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key. A zero ttl means the key never expires.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Incr atomically increments the integer at key, creating it at zero
	// first when absent, and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
	// Keys lists all live keys that start with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Close releases backend resources.
	Close() error
}

// Open selects a backend: Redis when redisURL is set, the in-process cache
// otherwise. The returned label names the chosen backend for logging.
func Open(ctx context.Context, redisURL string) (Store, string, error) {
	if redisURL == "" {
		return NewMemory(), "memory", nil
	}
	store, err := NewRedis(ctx, redisURL)
	if err != nil {
		return nil, "redis", err
	}
	return store, "redis", nil
}
