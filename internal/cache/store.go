// Package cache provides the ephemeral key-value store used for shopping
// hashes and group join tokens. The store is injected rather than accessed
// as process-global state so tests can swap in the in-memory implementation.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key is absent or its TTL has expired.
var ErrNotFound = errors.New("cache: key not found")

// Store is a TTL-aware key-value store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes key=value with the given time-to-live.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Incr atomically increments the integer value at key, creating it at 1
	// when absent, and refreshes the TTL. Returns the new value.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Del removes key. Removing an absent key is not an error.
	Del(ctx context.Context, key string) error
}
