package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/greenline/internal/activity"
	"github.com/roach88/greenline/internal/clock"
	"github.com/roach88/greenline/internal/collection"
	"github.com/roach88/greenline/internal/content"
)

// Version is written to every full backup.
const Version = "1.0"

// Scope selects what Export serializes.
type Scope string

const (
	ScopePictures Scope = "pictures"
	ScopeLeaders  Scope = "leaders"
	ScopeActivity Scope = "activity"
)

// Scopes lists the valid scope names.
var Scopes = []Scope{ScopePictures, ScopeLeaders, ScopeActivity}

// ParseScope validates a scope name.
func ParseScope(s string) (Scope, error) {
	for _, sc := range Scopes {
		if string(sc) == strings.ToLower(strings.TrimSpace(s)) {
			return sc, nil
		}
	}
	return "", fmt.Errorf("unknown scope %q: must be one of %v", s, Scopes)
}

// Snapshot is the full backup document.
type Snapshot struct {
	Timestamp  time.Time          `json:"timestamp"`
	Version    string             `json:"version"`
	Pictures   []content.Picture  `json:"pictures"`
	Leaders    []content.Leader   `json:"leaders"`
	Activities []content.Activity `json:"activities,omitempty"`
}

// Service exports and imports the stores it was built with.
type Service struct {
	pictures *collection.Pictures
	leaders  *collection.Leaders
	log      *activity.Log
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a backup service. A nil clock uses the system clock and a nil
// logger uses slog.Default().
func New(pictures *collection.Pictures, leaders *collection.Leaders, log *activity.Log, c clock.Clock, logger *slog.Logger) *Service {
	if c == nil {
		c = clock.System{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{pictures: pictures, leaders: leaders, log: log, clock: c, logger: logger}
}

// Export serializes the selected scopes. With only ScopePictures or only
// ScopeLeaders the result is a bare JSON array; otherwise it is a full
// Snapshot, including the activity log when ScopeActivity is selected.
func (s *Service) Export(ctx context.Context, scopes ...Scope) ([]byte, error) {
	sel := make(map[Scope]bool, len(scopes))
	for _, sc := range scopes {
		sel[sc] = true
	}

	switch {
	case len(sel) == 1 && sel[ScopePictures]:
		pictures, err := s.pictures.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("export pictures: %w", err)
		}
		return encode(pictures)
	case len(sel) == 1 && sel[ScopeLeaders]:
		leaders, err := s.leaders.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("export leaders: %w", err)
		}
		return encode(leaders)
	}

	snap, err := s.Snapshot(ctx, sel[ScopeActivity])
	if err != nil {
		return nil, err
	}
	return encode(snap)
}

// Snapshot materializes a full backup document.
func (s *Service) Snapshot(ctx context.Context, withActivity bool) (Snapshot, error) {
	pictures, err := s.pictures.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot pictures: %w", err)
	}
	leaders, err := s.leaders.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot leaders: %w", err)
	}
	snap := Snapshot{
		Timestamp: s.clock.Now().UTC().Truncate(time.Millisecond),
		Version:   Version,
		Pictures:  pictures,
		Leaders:   leaders,
	}
	if withActivity {
		if snap.Activities, err = s.log.All(ctx); err != nil {
			return Snapshot{}, fmt.Errorf("snapshot activity: %w", err)
		}
	}
	return snap, nil
}

// FileName returns the conventional download name for an export of scopes
// taken at t, e.g. "greenline-backup-2026-10-18.json".
func FileName(t time.Time, scopes ...Scope) string {
	what := "backup"
	if len(scopes) == 1 && (scopes[0] == ScopePictures || scopes[0] == ScopeLeaders) {
		what = string(scopes[0])
	}
	return fmt.Sprintf("greenline-%s-%s.json", what, t.UTC().Format(time.DateOnly))
}

// Import restores a full backup produced by Export.
//
// It fails with a parse error if blob is not well-formed JSON and with a
// format error if it is not an object carrying "pictures" and "leaders"
// arrays. In both cases no store is modified.
func (s *Service) Import(ctx context.Context, blob []byte) error {
	doc, err := decodeBackup(blob)
	if err != nil {
		return err
	}

	prevPictures, picturesErr := s.pictures.List(ctx)
	prevLeaders, leadersErr := s.leaders.List(ctx)

	if err := s.pictures.ReplaceAll(ctx, doc.pictures); err != nil {
		return fmt.Errorf("import pictures: %w", err)
	}
	if err := s.leaders.ReplaceAll(ctx, doc.leaders); err != nil {
		rollback(ctx, s.logger, s.pictures, prevPictures, picturesErr)
		return fmt.Errorf("import leaders: %w", err)
	}
	if doc.activities != nil {
		if err := s.log.Replace(ctx, doc.activities); err != nil {
			rollback(ctx, s.logger, s.pictures, prevPictures, picturesErr)
			rollback(ctx, s.logger, s.leaders, prevLeaders, leadersErr)
			return fmt.Errorf("import activity: %w", err)
		}
	}

	s.logger.Info("backup imported",
		"pictures", len(doc.pictures),
		"leaders", len(doc.leaders),
		"activities", len(doc.activities),
	)
	return nil
}

// rollback puts a store back to its pre-import contents. A store whose prior
// contents could not be read is left with the imported data.
func rollback[T any](ctx context.Context, logger *slog.Logger, st *collection.Store[T], prev []T, loadErr error) {
	if loadErr != nil {
		logger.Warn("cannot roll back store: prior contents unreadable", "key", st.Key(), "error", loadErr)
		return
	}
	if err := st.ReplaceAll(ctx, prev); err != nil {
		logger.Error("rollback failed", "key", st.Key(), "error", err)
	}
}

type decoded struct {
	pictures   []content.Picture
	leaders    []content.Leader
	activities []content.Activity
}

func decodeBackup(blob []byte) (decoded, error) {
	if !json.Valid(blob) {
		return decoded{}, content.NewParseError("backup is not well-formed JSON", nil)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(blob, &doc); err != nil || doc == nil {
		return decoded{}, content.NewFormatError("backup must be a JSON object")
	}

	for _, key := range []string{"pictures", "leaders"} {
		if _, ok := doc[key]; !ok {
			return decoded{}, content.NewFormatError(fmt.Sprintf("backup is missing %q", key))
		}
	}

	var out decoded
	var err error
	if out.pictures, err = collection.DecodeList[content.Picture](doc["pictures"], "pictures"); err != nil {
		return decoded{}, err
	}
	if out.leaders, err = collection.DecodeList[content.Leader](doc["leaders"], "leaders"); err != nil {
		return decoded{}, err
	}
	if raw, ok := doc["activities"]; ok {
		if out.activities, err = collection.DecodeList[content.Activity](raw, "activities"); err != nil {
			return decoded{}, err
		}
	}
	return out, nil
}

func encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}
