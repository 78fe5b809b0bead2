// Package cache stores fetched source images between runs.
//
// The engine itself never caches: every render composites fresh assets.
// This package backs the optional reference cache in [source], keyed by the
// reference string, so repeated CLI runs against the same artwork URLs do
// not refetch them.
//
// Backends:
//   - [FileCache]: JSON entries under a directory, for the CLI.
//   - [RedisCache]: a shared Redis instance.
//   - [NullCache]: caching disabled.
//
// [Prefixed] scopes keys and [Observed] reports hits and misses to
// [observability.Cache].
//
// [source]: github.com/matzehuels/minicase/pkg/source
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry TTL. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SourceKey returns the cache key of an image reference.
func SourceKey(ref string) string {
	return "source:" + Hash([]byte(ref))
}
