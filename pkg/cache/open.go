package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Backend names a cache implementation.
type Backend string

const (
	BackendNone     Backend = "none"
	BackendFile     Backend = "file"
	BackendSQLite   Backend = "sqlite"
	BackendMySQL    Backend = "mysql"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
	BackendMongo    Backend = "mongo"
)

// Backends lists the accepted backend names in display order.
var Backends = []Backend{BackendNone, BackendFile, BackendSQLite, BackendMySQL, BackendPostgres, BackendRedis, BackendMongo}

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Config selects and configures a backend for [Open].
type Config struct {
	Backend Backend
	Dir     string // file backend directory and default sqlite location
	DSN     string // sqlite path, mysql/postgres DSN, redis address or mongo URI
}

// DefaultDir returns the per-user cache directory for pkgtrust.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return filepath.Join(base, "pkgtrust"), nil
}

// Open constructs the configured backend. An empty backend means none.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	dir := cfg.Dir
	if dir == "" && (cfg.Backend == BackendFile || cfg.Backend == BackendSQLite) {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		return orNil(NewFileCache(filepath.Join(dir, "http")))
	case BackendSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
			dsn = filepath.Join(dir, "cache.db")
		}
		return orNil(NewSQLCache(ctx, SQLite, dsn, "http_cache"))
	case BackendMySQL:
		return orNil(NewSQLCache(ctx, MySQL, cfg.DSN, "http_cache"))
	case BackendPostgres:
		return orNil(NewSQLCache(ctx, Postgres, cfg.DSN, "http_cache"))
	case BackendRedis:
		return orNil(NewRedisCache(ctx, RedisOptions{Addr: cfg.DSN}))
	case BackendMongo:
		return orNil(NewMongoCache(ctx, MongoOptions{URI: cfg.DSN}))
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s (must be one of %v)", cfg.Backend, Backends)
	}
}

// orNil keeps a failed constructor from returning a typed nil inside the
// Cache interface.
func orNil[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
