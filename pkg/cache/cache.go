// Package cache stores analysis results keyed by the hash of their input.
//
// Settling a large snapshot and computing every cascade is the expensive part
// of an analysis, and the same snapshot is often analysed repeatedly (from
// the CLI while iterating, or by many HTTP clients). A [Cache] maps opaque
// string keys to byte payloads with an optional TTL. Keys are produced by a
// [Keyer] so every caller derives identical keys for identical inputs.
//
// Backends:
//
//   - [NullCache]: stores nothing, used when caching is disabled.
//   - [FileCache]: zstd-compressed files under a directory, for the CLI.
//   - [RedisCache]: a shared Redis instance, for the HTTP server.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value cache.
//
// Get reports a miss with (nil, false, nil); an error means the backend
// failed, not that the key is absent. A zero ttl in Set means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
