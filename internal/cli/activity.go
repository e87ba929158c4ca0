package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/greenline/internal/content"
)

// NewActivityCommand creates the activity command group.
func NewActivityCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Inspect the activity log",
	}

	var limit int
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List recent activity, newest last",
		Long: `List the most recent activity records, oldest first.

The log keeps a bounded number of records (activity_capacity, default 10);
older records are evicted as new ones arrive.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActivityList(rootOpts, limit, cmd)
		},
	}
	ls.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n records (0 for all)")
	cmd.AddCommand(ls)

	return cmd
}

func runActivityList(opts *RootOptions, limit int, cmd *cobra.Command) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.log.Latest(a.ctx, limit)
	if err != nil {
		return a.out.Fail("failed to read activity log", err)
	}
	return a.out.Success(activityList(records))
}

type activityList []content.Activity

func (l activityList) String() string {
	if len(l) == 0 {
		return "No activity recorded."
	}
	t := newTable("TYPE", "TITLE", "DESCRIPTION", "TIME")
	for _, r := range l {
		t.add(string(r.Category), r.Title, r.Description, r.Time)
	}
	return t.String()
}
