// Package cache provides pluggable byte caches for scan snapshots.
//
// Backends:
//   - [FileCache]: directory of JSON entry files, for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: no-op, for tests or to disable caching
//
// Keys for scan snapshots are derived with [ScanKey], which hashes the
// absolute scan path together with the options that shaped the result,
// so differently-filtered scans of the same directory never collide.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ScanKey derives the cache key for a scan of path with the given
// option fingerprint (any JSON-serializable values that influenced the
// scan, e.g. ignore patterns and depth).
func ScanKey(path string, fingerprint ...any) string {
	parts := append([]any{path}, fingerprint...)
	return hashKey("scan", parts...)
}
