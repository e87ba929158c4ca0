package collection

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"time"

	"github.com/roach88/greenline/internal/clock"
	"github.com/roach88/greenline/internal/content"
	"github.com/roach88/greenline/internal/kv"
)

// Recorder receives the activity emitted by store mutations.
// *activity.Log implements it.
type Recorder interface {
	Append(ctx context.Context, a content.Activity) error
}

// Kind describes one entity type to the generic Store.
type Kind[T any] struct {
	// Name is used in error messages, e.g. "picture".
	Name string

	// Key is the persistence key owning the collection.
	Key string

	// ID returns the entity id.
	ID func(T) int64

	// Build normalizes and validates a candidate.
	Build func(T) (T, error)

	// Stamp assigns the id and creation time.
	Stamp func(T, int64, time.Time) T

	// Arrange restores the collection's standing order after an insert.
	// Nil keeps insertion order.
	Arrange func([]T)

	// Added and Removed describe mutations for the activity log.
	Added   func(T) content.Activity
	Removed func(T) content.Activity
}

// Options carries a Store's optional collaborators.
type Options struct {
	// Clock stamps dateAdded. Defaults to the system clock.
	Clock clock.Clock

	// IDs generates entity ids. Defaults to a generator over Clock.
	IDs *clock.IDs

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Store is the authoritative list of one entity type.
type Store[T any] struct {
	kind     Kind[T]
	kv       kv.Store
	recorder Recorder
	clock    clock.Clock
	ids      *clock.IDs
	logger   *slog.Logger

	items  []T
	loaded bool
}

// New creates a store for kind persisted in store, emitting activity to rec.
func New[T any](kind Kind[T], store kv.Store, rec Recorder, opts Options) *Store[T] {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.IDs == nil {
		opts.IDs = clock.NewIDs(opts.Clock)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Store[T]{
		kind:     kind,
		kv:       store,
		recorder: rec,
		clock:    opts.Clock,
		ids:      opts.IDs,
		logger:   opts.Logger.With("collection", kind.Key),
	}
}

// Key returns the persistence key owned by the store.
func (s *Store[T]) Key() string {
	return s.kind.Key
}

// Create validates candidate, assigns a fresh id and dateAdded, persists the
// updated collection and records the creation. It returns the stored entity.
func (s *Store[T]) Create(ctx context.Context, candidate T) (T, error) {
	var zero T
	entity, err := s.kind.Build(candidate)
	if err != nil {
		return zero, err
	}
	if err := s.load(ctx); err != nil {
		return zero, err
	}

	now := s.clock.Now().UTC().Truncate(time.Millisecond)
	entity = s.kind.Stamp(entity, s.nextID(), now)

	next := make([]T, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, entity)
	if s.kind.Arrange != nil {
		s.kind.Arrange(next)
	}

	if err := s.commit(ctx, next); err != nil {
		return zero, err
	}
	s.logger.Info("entity created", "id", s.kind.ID(entity), "count", len(next))
	s.record(ctx, s.kind.Added(entity))
	return entity, nil
}

// Remove deletes the entity with the given id and returns it.
func (s *Store[T]) Remove(ctx context.Context, id int64) (T, error) {
	var zero T
	if err := s.load(ctx); err != nil {
		return zero, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return zero, content.NewNotFoundError(s.kind.Name, id)
	}
	removed := s.items[i]
	next := slices.Delete(slices.Clone(s.items), i, i+1)

	if err := s.commit(ctx, next); err != nil {
		return zero, err
	}
	s.logger.Info("entity removed", "id", id, "count", len(next))
	s.record(ctx, s.kind.Removed(removed))
	return removed, nil
}

// RemoveMany removes each id in turn, stopping at the first failure. It
// returns the entities removed before the failure.
func (s *Store[T]) RemoveMany(ctx context.Context, ids ...int64) ([]T, error) {
	removed := make([]T, 0, len(ids))
	for _, id := range ids {
		e, err := s.Remove(ctx, id)
		if err != nil {
			return removed, err
		}
		removed = append(removed, e)
	}
	return removed, nil
}

// Get returns the entity with the given id.
func (s *Store[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	if err := s.load(ctx); err != nil {
		return zero, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return zero, content.NewNotFoundError(s.kind.Name, id)
	}
	return s.items[i], nil
}

// List returns a copy of the collection in stored order. The first call of a
// session loads it from persistence.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.items), nil
}

// Len returns the number of entities in the collection.
func (s *Store[T]) Len(ctx context.Context) (int, error) {
	if err := s.load(ctx); err != nil {
		return 0, err
	}
	return len(s.items), nil
}

// ReplaceAll overwrites the collection with items as given: no validation,
// sorting or de-duplication is applied. No activity is recorded.
func (s *Store[T]) ReplaceAll(ctx context.Context, items []T) error {
	next := slices.Clone(items)
	if next == nil {
		next = []T{}
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.loaded = true
	s.observeIDs()
	s.logger.Info("collection replaced", "count", len(next))
	return nil
}

// ReplaceAllJSON decodes raw as a JSON array of entities and replaces the
// collection with it. Anything other than an array is a format error.
func (s *Store[T]) ReplaceAllJSON(ctx context.Context, raw json.RawMessage) error {
	items, err := DecodeList[T](raw, s.kind.Key)
	if err != nil {
		return err
	}
	return s.ReplaceAll(ctx, items)
}

func (s *Store[T]) commit(ctx context.Context, next []T) error {
	if err := kv.SaveList(ctx, s.kv, s.kind.Key, next); err != nil {
		s.logger.Error("persist failed", "error", err)
		return err
	}
	s.items = next
	return nil
}

func (s *Store[T]) record(ctx context.Context, a content.Activity) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Append(ctx, a); err != nil {
		s.logger.Warn("activity not recorded", "title", a.Title, "error", err)
	}
}

func (s *Store[T]) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	items, err := kv.LoadList[T](ctx, s.kv, s.kind.Key)
	if err != nil {
		return err
	}
	s.items = items
	s.loaded = true
	s.observeIDs()
	return nil
}

// observeIDs keeps the generator ahead of every id in the collection.
func (s *Store[T]) observeIDs() {
	for _, e := range s.items {
		s.ids.Observe(s.kind.ID(e))
	}
}

func (s *Store[T]) nextID() int64 {
	id := s.ids.Next()
	for s.indexOf(id) >= 0 {
		id = s.ids.Next()
	}
	return id
}

func (s *Store[T]) indexOf(id int64) int {
	return slices.IndexFunc(s.items, func(e T) bool { return s.kind.ID(e) == id })
}
