// Package kv provides the key-value persistence backends behind the
// collection stores and the activity log.
//
// Every backend stores opaque string values under string keys and is
// synchronous from the caller's point of view: Set returns only after the
// value is durable to the backend's own guarantees.
//
// # Backends
//
//   - SQLite (default): single-file database via mattn/go-sqlite3
//   - Redis: shared instance via redis/go-redis, keys namespaced by a prefix
//   - Memory: process-local map, for tests and throwaway sessions
//
// # SQLite Configuration
//
//   - WAL mode: readers do not block the writer
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
package kv
