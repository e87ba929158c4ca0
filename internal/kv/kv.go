package kv

import (
	"context"
	"fmt"
)

// Store is the persistence collaborator used by the stores.
type Store interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the backend's resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string

	// Path is the SQLite database file.
	Path string

	// Redis connection settings.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open creates the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		if opts.Path == "" {
			return nil, fmt.Errorf("open sqlite backend: database path is required")
		}
		return OpenSQLite(opts.Path)
	case BackendRedis:
		return DialRedis(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.RedisPrefix,
		})
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q: must be one of %v", opts.Backend, Backends)
	}
}

// Backends lists the valid backend names.
var Backends = []string{BackendSQLite, BackendRedis, BackendMemory}

var (
	_ Store = (*SQLite)(nil)
	_ Store = (*Redis)(nil)
	_ Store = (*Memory)(nil)
)
