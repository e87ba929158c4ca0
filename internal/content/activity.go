package content

// Category classifies an activity record for display.
type Category string

const (
	CategorySuccess Category = "success"
	CategoryWarning Category = "warning"
	CategoryInfo    Category = "info"
	CategoryError   Category = "error"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySuccess, CategoryWarning, CategoryInfo, CategoryError:
		return true
	}
	return false
}

// JustNow is the display time of a freshly recorded activity.
const JustNow = "just now"

// Activity is a human-readable record of a store mutation.
// Category is serialized as "type" for compatibility with existing backups.
type Activity struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"type"`
	Icon        string   `json:"icon"`
	Time        string   `json:"time"`
}
