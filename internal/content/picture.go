package content

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

// Picture is a media item placed on a page section of the site.
type Picture struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url" validate:"required"`
	Alt       string    `json:"alt" validate:"required"`
	Page      string    `json:"page"`
	Section   string    `json:"section"`
	Tags      []string  `json:"tags"`
	DateAdded time.Time `json:"dateAdded"`
	Size      string    `json:"size,omitempty"`
	Format    string    `json:"format"`
}

// NewPicture trims the candidate, derives its format from the URL and checks
// required fields. ID and DateAdded are left for the store to assign.
func NewPicture(candidate Picture) (Picture, error) {
	p := candidate.normalize()
	if err := checkFields("picture", p); err != nil {
		return Picture{}, err
	}
	return p, nil
}

func (p Picture) normalize() Picture {
	p.URL = strings.TrimSpace(p.URL)
	p.Alt = strings.TrimSpace(p.Alt)
	p.Page = strings.TrimSpace(p.Page)
	p.Section = strings.TrimSpace(p.Section)
	p.Size = strings.TrimSpace(p.Size)
	p.Tags = trimAll(p.Tags)
	p.Format = FormatFromURL(p.URL)
	return p
}

// FormatFromURL returns the upper-cased suffix of the URL path without the
// dot, e.g. "JPG". Query strings and fragments are ignored. It returns "" when
// the path has no suffix.
func FormatFromURL(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	ext := path.Ext(p)
	return strings.ToUpper(strings.TrimPrefix(ext, "."))
}

// AddedActivity describes the creation of p.
func (p Picture) AddedActivity() Activity {
	return Activity{
		Title:       "Image Added",
		Description: fmt.Sprintf("Added \"%s...\" to %s page", truncate(p.Alt, 30), p.Page),
		Category:    CategorySuccess,
		Icon:        "fa-image",
	}
}

// RemovedActivity describes the removal of p.
func (p Picture) RemovedActivity() Activity {
	return Activity{
		Title:       "Image Removed",
		Description: fmt.Sprintf("Removed \"%s...\"", truncate(p.Alt, 30)),
		Category:    CategoryWarning,
		Icon:        "fa-trash",
	}
}
