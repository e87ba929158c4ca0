package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/greenline/internal/query"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard summary",
		Long: `Show the dashboard summary: collection counts, the most recently added
pictures and team members, and the latest activity.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	pictures, err := a.pictures.List(a.ctx)
	if err != nil {
		return a.out.Fail("failed to list pictures", err)
	}
	leaders, err := a.leaders.List(a.ctx)
	if err != nil {
		return a.out.Fail("failed to list leaders", err)
	}
	records, err := a.log.All(a.ctx)
	if err != nil {
		return a.out.Fail("failed to read activity log", err)
	}
	return a.out.Success(dashboardView{query.Summarize(pictures, leaders, records)})
}

type dashboardView struct {
	query.Dashboard
}

func (d dashboardView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Pictures: %d\nLeaders:  %d\n", d.PictureCount, d.LeaderCount)
	if len(d.LatestPictures) > 0 {
		sb.WriteString("\nLatest pictures\n")
		sb.WriteString(pictureList(d.LatestPictures).String())
		sb.WriteString("\n")
	}
	if len(d.LatestLeaders) > 0 {
		sb.WriteString("\nLatest team members\n")
		sb.WriteString(leaderList(d.LatestLeaders).String())
		sb.WriteString("\n")
	}
	if len(d.RecentActivity) > 0 {
		sb.WriteString("\nRecent activity\n")
		sb.WriteString(activityList(d.RecentActivity).String())
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
