package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/greenline/internal/content"
	"github.com/roach88/greenline/internal/query"
)

// LeaderAddOptions holds flags for the leader add command.
type LeaderAddOptions struct {
	*RootOptions
	Name       string
	Title      string
	Bio        string
	Photo      string
	Department string
	Order      int
	Expertise  string
	Template   int
}

// LeaderListOptions holds flags for the leader ls command.
type LeaderListOptions struct {
	*RootOptions
	Department string
	Search     string
	Sort       string
}

// NewLeaderCommand creates the leader command group.
func NewLeaderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leader",
		Short: "Manage the leadership team",
	}
	cmd.AddCommand(newLeaderAddCommand(rootOpts))
	cmd.AddCommand(newLeaderRemoveCommand(rootOpts))
	cmd.AddCommand(newLeaderListCommand(rootOpts))
	cmd.AddCommand(newLeaderTemplatesCommand(rootOpts))
	return cmd
}

func newLeaderAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LeaderAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a member to the leadership team",
		Long: `Add a member to the leadership team.

The team is kept sorted by display order. Without --photo a placeholder image
showing the member's initial is used. With --template n, blank fields are
filled from the n-th profile listed by "greenline leader templates".

Example:
  greenline leader add --name "Ada Okafor" --title "Chief Sustainability Officer" \
    --bio "Leads sustainability strategy." --department executive --order 1`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeaderAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "full name (required)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "job title (required)")
	cmd.Flags().StringVar(&opts.Bio, "bio", "", "short biography (required)")
	cmd.Flags().StringVar(&opts.Photo, "photo", "", "photo URL")
	cmd.Flags().StringVar(&opts.Department, "department", "", "department")
	cmd.Flags().IntVar(&opts.Order, "order", 1, "display order, starting at 1")
	cmd.Flags().StringVar(&opts.Expertise, "expertise", "", "comma-separated areas of expertise")
	cmd.Flags().IntVar(&opts.Template, "template", 0, "fill blank fields from template n")

	return cmd
}

func runLeaderAdd(opts *LeaderAddOptions, cmd *cobra.Command) error {
	candidate := content.Leader{
		Name:       opts.Name,
		Title:      opts.Title,
		Bio:        opts.Bio,
		Photo:      opts.Photo,
		Department: opts.Department,
		Order:      opts.Order,
		Expertise:  content.ParseList(opts.Expertise),
	}
	if opts.Template != 0 {
		templates := content.LeaderTemplates()
		if opts.Template < 1 || opts.Template > len(templates) {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown template %d: must be between 1 and %d", opts.Template, len(templates)))
		}
		candidate = content.ApplyTemplate(candidate, templates[opts.Template-1])
	}

	a, err := openApp(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	l, err := a.leaders.Create(a.ctx, candidate)
	if err != nil {
		return a.out.Fail("failed to add leader", err)
	}
	return a.out.Success(leaderAdded{l})
}

func newLeaderRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Remove team members by id",
		Long: `Remove one or more team members by id.

Removal stops at the first unknown id; members removed before it stay removed.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeaderRemove(rootOpts, args, cmd)
		},
	}
}

func runLeaderRemove(opts *RootOptions, args []string, cmd *cobra.Command) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	removed, err := a.leaders.RemoveMany(a.ctx, ids...)
	if err != nil {
		return a.out.Fail("failed to remove leader", err)
	}
	result := removedResult{Kind: "leader", IDs: make([]int64, len(removed))}
	for i, l := range removed {
		result.IDs[i] = l.ID
	}
	return a.out.Success(result)
}

func newLeaderListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LeaderListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List the leadership team",
		Long: `List the leadership team, filtered by department, searched by name, title
and bio, and sorted by order, name, department or newest.

Example:
  greenline leader ls --department executive --sort name`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeaderList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Department, "department", query.All, "department filter")
	cmd.Flags().StringVar(&opts.Search, "search", "", "case-insensitive search over name, title and bio")
	cmd.Flags().StringVar(&opts.Sort, "sort", string(query.SortOrder), "sort order (order|name|department|newest)")

	return cmd
}

func runLeaderList(opts *LeaderListOptions, cmd *cobra.Command) error {
	a, err := openApp(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	snapshot, err := a.leaders.List(a.ctx)
	if err != nil {
		return a.out.Fail("failed to list leaders", err)
	}
	return a.out.Success(leaderList(a.query.Leaders(snapshot, query.LeaderQuery{
		Department: opts.Department,
		Search:     opts.Search,
		Sort:       query.SortKey(opts.Sort),
	})))
}

func newLeaderTemplatesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "templates",
		Short:         "List the profile templates usable with leader add --template",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newOutput(cmd, rootOpts)
			return out.Success(templateList(content.LeaderTemplates()))
		},
	}
}

type leaderAdded struct {
	content.Leader
}

func (l leaderAdded) String() string {
	return fmt.Sprintf("Added %s (%s) as leader %d at position %d", l.Name, l.Title, l.ID, l.Order)
}

type leaderList []content.Leader

func (l leaderList) String() string {
	if len(l) == 0 {
		return "No team members found."
	}
	t := newTable("ID", "ORDER", "NAME", "TITLE", "DEPARTMENT", "EXPERTISE")
	for _, m := range l {
		t.add(
			strconv.FormatInt(m.ID, 10),
			strconv.Itoa(m.Order),
			m.Name,
			m.Title,
			m.Department,
			strings.Join(m.Expertise, ","),
		)
	}
	return t.String()
}

type templateList []content.Leader

func (l templateList) String() string {
	t := newTable("#", "TITLE", "DEPARTMENT", "EXPERTISE")
	for i, m := range l {
		t.add(strconv.Itoa(i+1), m.Title, m.Department, strings.Join(m.Expertise, ","))
	}
	return t.String()
}
