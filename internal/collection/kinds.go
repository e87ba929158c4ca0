package collection

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/roach88/greenline/internal/content"
	"github.com/roach88/greenline/internal/kv"
)

// Persistence keys of the two collections.
const (
	PicturesKey = "pictures-collection"
	LeadersKey  = "leaders-collection"
)

// PictureKind describes the Pictures collection.
var PictureKind = Kind[content.Picture]{
	Name:  "picture",
	Key:   PicturesKey,
	ID:    func(p content.Picture) int64 { return p.ID },
	Build: content.NewPicture,
	Stamp: func(p content.Picture, id int64, at time.Time) content.Picture {
		p.ID = id
		p.DateAdded = at
		return p
	},
	Added:   content.Picture.AddedActivity,
	Removed: content.Picture.RemovedActivity,
}

// LeaderKind describes the Leaders collection. The collection is kept sorted
// ascending by Order after every insert; leaders sharing an Order keep their
// insertion order.
var LeaderKind = Kind[content.Leader]{
	Name:  "leader",
	Key:   LeadersKey,
	ID:    func(l content.Leader) int64 { return l.ID },
	Build: content.NewLeader,
	Stamp: func(l content.Leader, id int64, at time.Time) content.Leader {
		l.ID = id
		l.DateAdded = at
		return l
	},
	Arrange: SortByOrder,
	Added:   content.Leader.AddedActivity,
	Removed: content.Leader.RemovedActivity,
}

// SortByOrder stably sorts leaders ascending by Order.
func SortByOrder(leaders []content.Leader) {
	slices.SortStableFunc(leaders, func(a, b content.Leader) int {
		return cmp.Compare(a.Order, b.Order)
	})
}

// Pictures is the store of media pictures.
type Pictures = Store[content.Picture]

// Leaders is the store of leadership-team profiles.
type Leaders = Store[content.Leader]

// NewPictures creates the Pictures store.
func NewPictures(store kv.Store, rec Recorder, opts Options) *Pictures {
	return New(PictureKind, store, rec, opts)
}

// NewLeaders creates the Leaders store.
func NewLeaders(store kv.Store, rec Recorder, opts Options) *Leaders {
	return New(LeaderKind, store, rec, opts)
}

// DecodeList decodes raw as a JSON array of T. what names the payload in
// error messages. A value that is not an array (including null) is a format
// error; an array whose elements do not decode is a parse error.
func DecodeList[T any](raw json.RawMessage, what string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, content.NewFormatError(fmt.Sprintf("%s must be a JSON array", what))
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, content.NewParseError(fmt.Sprintf("%s contains malformed entries", what), err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
