package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/greenline/internal/content"
)

// LoadList reads the JSON array stored under key.
// A missing key yields an empty, non-nil slice. Backend failures are
// reported as persistence errors and malformed values as parse errors.
func LoadList[T any](ctx context.Context, s Store, key string) ([]T, error) {
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		return nil, content.NewPersistenceError(key, err)
	}
	if !found || raw == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		perr := content.NewParseError(fmt.Sprintf("stored value under %q is not a JSON array", key), err)
		perr.Key = key
		return nil, perr
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveList writes items under key as a JSON array. A nil slice is written
// as [] so readers never see null.
func SaveList[T any](ctx context.Context, s Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return content.NewPersistenceError(key, err)
	}
	return nil
}
