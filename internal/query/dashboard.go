package query

import "github.com/roach88/greenline/internal/content"

// Preview sizes of the dashboard.
const (
	previewPictures = 3
	previewLeaders  = 2
	previewActivity = 3
)

// Dashboard summarizes the console's state for the overview screen.
type Dashboard struct {
	PictureCount   int                `json:"pictureCount"`
	LeaderCount    int                `json:"leaderCount"`
	LatestPictures []content.Picture  `json:"latestPictures"`
	LatestLeaders  []content.Leader   `json:"latestLeaders"`
	RecentActivity []content.Activity `json:"recentActivity"`
}

// Summarize builds the dashboard from collection snapshots. Counts are the
// snapshot lengths; previews are the tail of each snapshot in stored order.
func Summarize(pictures []content.Picture, leaders []content.Leader, activities []content.Activity) Dashboard {
	return Dashboard{
		PictureCount:   len(pictures),
		LeaderCount:    len(leaders),
		LatestPictures: tail(pictures, previewPictures),
		LatestLeaders:  tail(leaders, previewLeaders),
		RecentActivity: tail(activities, previewActivity),
	}
}

func tail[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[len(items)-n:]
	}
	return append([]T{}, items...)
}
