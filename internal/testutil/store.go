package testutil

import (
	"context"
	"sync"

	"github.com/roach88/greenline/internal/kv"
)

// FlakyStore wraps a kv.Store and fails reads or writes of chosen keys.
// It is used to check that stores keep memory and persistence consistent
// when the backend rejects a write.
type FlakyStore struct {
	kv.Store

	mu      sync.Mutex
	failGet map[string]error
	failSet map[string]error
	sets    map[string]int
}

// NewFlakyStore wraps inner. With no failures configured it behaves exactly
// like inner.
func NewFlakyStore(inner kv.Store) *FlakyStore {
	return &FlakyStore{
		Store:   inner,
		failGet: make(map[string]error),
		failSet: make(map[string]error),
		sets:    make(map[string]int),
	}
}

// FailGet makes every Get of key return err.
func (f *FlakyStore) FailGet(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet[key] = err
}

// FailSet makes every Set of key return err without writing.
func (f *FlakyStore) FailSet(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSet[key] = err
}

// Heal clears all configured failures.
func (f *FlakyStore) Heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.failGet)
	clear(f.failSet)
}

// Sets returns how many successful writes key has received.
func (f *FlakyStore) Sets(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets[key]
}

// Get implements kv.Store.
func (f *FlakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	err := f.failGet[key]
	f.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return f.Store.Get(ctx, key)
}

// Set implements kv.Store.
func (f *FlakyStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	err := f.failSet[key]
	f.mu.Unlock()
	if err != nil {
		return err
	}
	if err := f.Store.Set(ctx, key, value); err != nil {
		return err
	}
	f.mu.Lock()
	f.sets[key]++
	f.mu.Unlock()
	return nil
}
