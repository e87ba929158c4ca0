package content

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// PlaceholderPhotoBase is the image service used when a leader has no photo.
const PlaceholderPhotoBase = "https://via.placeholder.com/150/1e5631/FFFFFF?text="

// Leader is a leadership-team profile. Leaders are displayed by Order.
type Leader struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name" validate:"required"`
	Title      string    `json:"title" validate:"required"`
	Bio        string    `json:"bio" validate:"required"`
	Photo      string    `json:"photo"`
	Department string    `json:"department"`
	Order      int       `json:"order" validate:"gte=1"`
	Expertise  []string  `json:"expertise"`
	DateAdded  time.Time `json:"dateAdded"`
}

// NewLeader trims the candidate, defaults Photo and Order, and checks
// required fields. An Order of 0 means unset and becomes 1; negative orders
// are rejected.
func NewLeader(candidate Leader) (Leader, error) {
	l := candidate.normalize()
	if err := checkFields("leader", l); err != nil {
		return Leader{}, err
	}
	return l, nil
}

func (l Leader) normalize() Leader {
	l.Name = strings.TrimSpace(l.Name)
	l.Title = strings.TrimSpace(l.Title)
	l.Bio = strings.TrimSpace(l.Bio)
	l.Photo = strings.TrimSpace(l.Photo)
	l.Department = strings.TrimSpace(l.Department)
	l.Expertise = trimAll(l.Expertise)
	if l.Order == 0 {
		l.Order = 1
	}
	if l.Photo == "" && l.Name != "" {
		l.Photo = PlaceholderPhoto(l.Name)
	}
	return l
}

// PlaceholderPhoto returns a placeholder image URL showing the first letter
// of name.
func PlaceholderPhoto(name string) string {
	return PlaceholderPhotoBase + url.QueryEscape(truncate(name, 1))
}

// AddedActivity describes the creation of l.
func (l Leader) AddedActivity() Activity {
	return Activity{
		Title:       "Team Member Added",
		Description: fmt.Sprintf("Added \"%s\" to leadership team", l.Name),
		Category:    CategorySuccess,
		Icon:        "fa-user-plus",
	}
}

// RemovedActivity describes the removal of l.
func (l Leader) RemovedActivity() Activity {
	return Activity{
		Title:       "Team Member Removed",
		Description: fmt.Sprintf("Removed \"%s\" from leadership", l.Name),
		Category:    CategoryWarning,
		Icon:        "fa-user-minus",
	}
}
