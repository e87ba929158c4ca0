// Package clock provides the wall-clock abstraction and the entity id
// generator used by the collection stores.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock reports the current time. Stores depend on this interface so tests
// can pin dateAdded values.
type Clock interface {
	Now() time.Time
}

// System is the real wall clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// IDs generates unique, strictly increasing entity ids.
//
// Each id is the current wall-clock time in milliseconds, bumped to last+1
// when the clock has not advanced (or went backwards). Two calls within the
// same millisecond therefore never collide.
//
// Thread-safety: IDs is safe for concurrent use (atomic operations).
type IDs struct {
	last  atomic.Int64
	clock Clock
}

// NewIDs creates a generator reading time from c.
func NewIDs(c Clock) *IDs {
	if c == nil {
		c = System{}
	}
	return &IDs{clock: c}
}

// Next returns a fresh id greater than every id previously returned or
// observed.
func (g *IDs) Next() int64 {
	for {
		last := g.last.Load()
		next := g.clock.Now().UnixMilli()
		if next <= last {
			next = last + 1
		}
		if g.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

// Observe raises the floor so that later ids are greater than id.
// Stores call this with the largest id loaded from persistence.
func (g *IDs) Observe(id int64) {
	for {
		last := g.last.Load()
		if id <= last || g.last.CompareAndSwap(last, id) {
			return
		}
	}
}

// Current returns the last id handed out or observed.
func (g *IDs) Current() int64 {
	return g.last.Load()
}
