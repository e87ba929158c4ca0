// Package query projects collection snapshots into the ordered views shown
// by the console: filter, then search, then sort.
//
// Projections are pure. They never modify the snapshot and give the same
// output for the same input, so they can run over List results freely.
package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/roach88/greenline/internal/content"
)

// All is the filter value that matches every entity. An empty filter means
// the same.
const All = "all"

// SortKey names a projection ordering.
type SortKey string

// Sort keys. Pictures accept Newest, Oldest and Name; leaders accept Order,
// Name, Department and Newest. Any other key leaves the filtered snapshot in
// stored order.
const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortName       SortKey = "name"
	SortOrder      SortKey = "order"
	SortDepartment SortKey = "department"
)

// PictureQuery selects and orders pictures.
type PictureQuery struct {
	Page    string
	Section string
	Search  string
	Sort    SortKey
}

// LeaderQuery selects and orders leaders.
type LeaderQuery struct {
	Department string
	Search     string
	Sort       SortKey
}

// Engine runs projections with locale-aware name comparison.
type Engine struct {
	lang language.Tag
}

// New creates an engine comparing names by the collation rules of lang.
func New(lang language.Tag) *Engine {
	return &Engine{lang: lang}
}

// Default compares names with English collation.
var Default = New(language.English)

// ProjectPictures runs q over snapshot with the default engine.
func ProjectPictures(snapshot []content.Picture, q PictureQuery) []content.Picture {
	return Default.Pictures(snapshot, q)
}

// ProjectLeaders runs q over snapshot with the default engine.
func ProjectLeaders(snapshot []content.Leader, q LeaderQuery) []content.Leader {
	return Default.Leaders(snapshot, q)
}

// Pictures filters by page and section, keeps pictures whose alt text or any
// tag contains the search term, and sorts by q.Sort.
func (e *Engine) Pictures(snapshot []content.Picture, q PictureQuery) []content.Picture {
	m := newMatcher(q.Search)
	keep := func(p content.Picture) bool {
		if !matchesFilter(q.Page, p.Page) || !matchesFilter(q.Section, p.Section) {
			return false
		}
		return m.any(p.Alt) || m.any(p.Tags...)
	}

	var order func(a, b content.Picture) int
	switch q.Sort {
	case SortNewest:
		order = func(a, b content.Picture) int { return b.DateAdded.Compare(a.DateAdded) }
	case SortOldest:
		order = func(a, b content.Picture) int { return a.DateAdded.Compare(b.DateAdded) }
	case SortName:
		c := e.collator()
		order = func(a, b content.Picture) int { return c.CompareString(a.Alt, b.Alt) }
	}
	return project(snapshot, keep, order)
}

// Leaders filters by department, keeps leaders whose name, title or bio
// contains the search term, and sorts by q.Sort.
func (e *Engine) Leaders(snapshot []content.Leader, q LeaderQuery) []content.Leader {
	m := newMatcher(q.Search)
	keep := func(l content.Leader) bool {
		if !matchesFilter(q.Department, l.Department) {
			return false
		}
		return m.any(l.Name, l.Title, l.Bio)
	}

	var order func(a, b content.Leader) int
	switch q.Sort {
	case SortOrder:
		order = func(a, b content.Leader) int { return cmp.Compare(a.Order, b.Order) }
	case SortName:
		c := e.collator()
		order = func(a, b content.Leader) int { return c.CompareString(a.Name, b.Name) }
	case SortDepartment:
		c := e.collator()
		order = func(a, b content.Leader) int { return c.CompareString(a.Department, b.Department) }
	case SortNewest:
		order = func(a, b content.Leader) int { return b.DateAdded.Compare(a.DateAdded) }
	}
	return project(snapshot, keep, order)
}

// collator is created per projection; collate.Collator is not safe for
// concurrent use.
func (e *Engine) collator() *collate.Collator {
	return collate.New(e.lang)
}

func project[T any](snapshot []T, keep func(T) bool, order func(a, b T) int) []T {
	out := make([]T, 0, len(snapshot))
	for _, item := range snapshot {
		if keep(item) {
			out = append(out, item)
		}
	}
	if order != nil {
		slices.SortStableFunc(out, order)
	}
	return out
}

func matchesFilter(filter, value string) bool {
	return filter == "" || filter == All || filter == value
}

// matcher does case-insensitive substring search using Unicode case folding.
type matcher struct {
	fold cases.Caser
	term string
}

func newMatcher(term string) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.term = m.fold.String(strings.TrimSpace(term))
	return m
}

// any reports whether any of values contains the term. An empty term
// matches everything.
func (m *matcher) any(values ...string) bool {
	if m.term == "" {
		return true
	}
	for _, v := range values {
		if strings.Contains(m.fold.String(v), m.term) {
			return true
		}
	}
	return false
}
