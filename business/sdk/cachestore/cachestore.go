// Package cachestore defines the byte store with TTLs used for edge caching
// of board state. Implementations must be safe for concurrent use.
package cachestore

import (
	"context"
	"time"
)

// Store is a minimal TTL key-value store.
type Store interface {
	// Get returns (value, true, nil) on hit and (nil, false, nil) on miss.
	// An IO/remote error returns (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. A non-positive TTL means
	// no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes a key, best-effort.
	Del(ctx context.Context, key string) error
}
