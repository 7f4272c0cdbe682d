package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer, so implementations can be
// swapped (Redis in deployment, in-memory in tests).
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// found=false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// SetNX stores value only if key does not exist yet. Returns true when
	// the key was acquired. Used as a lightweight distributed mutex.
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
}
