// Package cache provides the byte-level response cache used by the API
// clients.
//
// A Cache stores opaque byte slices under string keys with an optional TTL.
// Backends:
//   - [NullCache]: never stores anything (the default, always-live behaviour)
//   - [FileCache]: one JSON entry file per key under a directory
//   - [SQLiteCache]: a single table in a local SQLite database
//   - [RedisCache]: a shared Redis instance
//   - [MongoCache]: a MongoDB collection with a TTL index
//
// Keys are built with a [Keyer] so that backends never see raw URLs.
package cache

import (
	"context"
	"time"
)

// Cache is a byte cache with per-entry expiration.
//
// Get reports a miss with (nil, false, nil). Errors are reserved for backend
// failures; callers treat them as misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey returns the key for a cached HTTP response.
	HTTPKey(namespace, key string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}
