package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/greenline/internal/kv"
)

func TestManualClock(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := NewManualClock(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start.Add(time.Minute), c.Advance(time.Minute))
	assert.Equal(t, start.Add(time.Minute), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestFlakyStore(t *testing.T) {
	ctx := context.Background()
	f := NewFlakyStore(kv.NewMemory())
	boom := errors.New("boom")

	require.NoError(t, f.Set(ctx, "a", "1"))
	assert.Equal(t, 1, f.Sets("a"))

	f.FailSet("a", boom)
	assert.ErrorIs(t, f.Set(ctx, "a", "2"), boom)
	assert.Equal(t, 1, f.Sets("a"))

	f.FailGet("a", boom)
	_, _, err := f.Get(ctx, "a")
	assert.ErrorIs(t, err, boom)

	f.Heal()
	v, found, err := f.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", v)
}
