// Package activity implements the bounded activity log written by the
// collection stores.
package activity

import (
	"context"
	"log/slog"

	"github.com/roach88/greenline/internal/content"
	"github.com/roach88/greenline/internal/kv"
)

// Key is the persistence key of the activity log.
const Key = "activity-log"

// DefaultCapacity is the number of records kept by Record.
const DefaultCapacity = 10

// Log is a fixed-capacity FIFO of activity records persisted under Key.
// The oldest record is evicted once the capacity is exceeded.
//
// The log is loaded lazily on first use and cached for the session;
// persistence remains the source of truth across sessions. Log is not safe
// for concurrent use.
type Log struct {
	store    kv.Store
	capacity int
	logger   *slog.Logger

	records []content.Activity
	loaded  bool
}

// NewLog creates a log over store. A capacity <= 0 uses DefaultCapacity.
func NewLog(store kv.Store, capacity int, logger *slog.Logger) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{store: store, capacity: capacity, logger: logger}
}

// Capacity returns the maximum number of records kept by Record.
func (l *Log) Capacity() int {
	return l.capacity
}

// Record appends a record stamped "just now".
func (l *Log) Record(ctx context.Context, title, description string, category content.Category, icon string) error {
	return l.Append(ctx, content.Activity{
		Title:       title,
		Description: description,
		Category:    category,
		Icon:        icon,
	})
}

// Append adds a, stamped "just now", evicting from the front while the log
// exceeds its capacity, then persists. On persistence failure the cached log
// is left unchanged.
func (l *Log) Append(ctx context.Context, a content.Activity) error {
	if err := l.load(ctx); err != nil {
		return err
	}
	a.Time = content.JustNow

	next := make([]content.Activity, 0, len(l.records)+1)
	next = append(next, l.records...)
	next = append(next, a)
	if over := len(next) - l.capacity; over > 0 {
		next = next[over:]
	}

	if err := kv.SaveList(ctx, l.store, Key, next); err != nil {
		return err
	}
	l.records = next
	l.logger.Debug("activity recorded", "title", a.Title, "category", a.Category, "len", len(next))
	return nil
}

// Replace overwrites the whole log. No capacity is enforced so restored
// backups are kept as they were.
func (l *Log) Replace(ctx context.Context, records []content.Activity) error {
	next := append([]content.Activity{}, records...)
	if err := kv.SaveList(ctx, l.store, Key, next); err != nil {
		return err
	}
	l.records = next
	l.loaded = true
	return nil
}

// Latest returns the last n records in insertion order, most recent last.
// n <= 0 or n larger than the log returns every record.
func (l *Log) Latest(ctx context.Context, n int) ([]content.Activity, error) {
	if err := l.load(ctx); err != nil {
		return nil, err
	}
	start := 0
	if n > 0 && n < len(l.records) {
		start = len(l.records) - n
	}
	return append([]content.Activity{}, l.records[start:]...), nil
}

// All returns every record in insertion order.
func (l *Log) All(ctx context.Context) ([]content.Activity, error) {
	return l.Latest(ctx, 0)
}

func (l *Log) load(ctx context.Context) error {
	if l.loaded {
		return nil
	}
	records, err := kv.LoadList[content.Activity](ctx, l.store, Key)
	if err != nil {
		return err
	}
	l.records = records
	l.loaded = true
	return nil
}
