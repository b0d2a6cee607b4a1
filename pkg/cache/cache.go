// Package cache stores computed figures and imported results between runs.
//
// Every computation in heatmatrix is a pure function of its inputs, so a
// cache entry keyed by a content hash of those inputs never goes stale.
// Entries still carry a TTL so that disk and memory use stay bounded.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [MemoryCache]: bounded LRU in process memory
//   - [RedisCache]: shared cache on a Redis server
//
// # Keys
//
// A [Keyer] builds keys from content hashes and option structs. Wrap it in
// [NewScopedKeyer] to namespace keys, for example per project.
package cache

import (
	"context"
	"time"
)

// TTLs per entry type.
const (
	TTLPlot   = 7 * 24 * time.Hour
	TTLImport = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. The bool is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
