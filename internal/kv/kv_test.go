package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "pictures-collection", `[{"id":1}]`))
	v, found, err := s.Get(ctx, "pictures-collection")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":1}]`, v)

	require.NoError(t, s.Set(ctx, "pictures-collection", `[]`))
	v, _, err = s.Get(ctx, "pictures-collection")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	// Empty values are stored, not treated as absent.
	require.NoError(t, s.Set(ctx, "empty", ""))
	v, found, err = s.Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "", v)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	exerciseStore(t, s)

	keys, err := s.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"empty", "pictures-collection"}, keys)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.db")
	ctx := context.Background()

	s1, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, "leaders-collection", `[{"id":7}]`))
	require.NoError(t, s1.Close())

	s2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s2.Close()

	v, found, err := s2.Get(ctx, "leaders-collection")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":7}]`, v)
}

func TestSQLite_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.db")

	for i := 0; i < 3; i++ {
		s, err := OpenSQLite(path)
		require.NoError(t, err, "open iteration %d", i)
		s.Close()
	}

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	assert.NoError(t, s.verifyPragma("user_version", "1"))
}

func TestSQLite_InvalidPath(t *testing.T) {
	_, err := OpenSQLite("/nonexistent/dir/console.db")
	assert.Error(t, err)
}

func TestSQLite_Pragmas(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	// NORMAL = 1
	assert.NoError(t, s.verifyPragma("synchronous", "1"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
}

func TestSQLite_CloseNilDB(t *testing.T) {
	s := &SQLite{db: nil}
	assert.NoError(t, s.Close())
}

// TestRedis runs against a live server when GREENLINE_TEST_REDIS_ADDR is set.
func TestRedis(t *testing.T) {
	addr := os.Getenv("GREENLINE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("GREENLINE_TEST_REDIS_ADDR not set")
	}
	r, err := DialRedis(context.Background(), RedisOptions{Addr: addr, Prefix: "greenline-test:" + t.Name() + ":"})
	require.NoError(t, err)
	defer r.Close()

	exerciseStore(t, r)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(ctx, Options{Backend: BackendSQLite, Path: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	s.Close()

	_, err = Open(ctx, Options{Backend: BackendSQLite})
	assert.ErrorContains(t, err, "database path is required")

	_, err = Open(ctx, Options{Backend: BackendRedis})
	assert.ErrorContains(t, err, "address is required")

	_, err = Open(ctx, Options{Backend: "etcd"})
	assert.ErrorContains(t, err, `unknown backend "etcd"`)
}
