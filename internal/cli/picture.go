package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/greenline/internal/content"
	"github.com/roach88/greenline/internal/query"
)

// PictureAddOptions holds flags for the picture add command.
type PictureAddOptions struct {
	*RootOptions
	URL     string
	Alt     string
	Page    string
	Section string
	Tags    string
	Size    string
}

// PictureListOptions holds flags for the picture ls command.
type PictureListOptions struct {
	*RootOptions
	Page    string
	Section string
	Search  string
	Sort    string
}

// NewPictureCommand creates the picture command group.
func NewPictureCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "picture",
		Short: "Manage the picture gallery",
	}
	cmd.AddCommand(newPictureAddCommand(rootOpts))
	cmd.AddCommand(newPictureRemoveCommand(rootOpts))
	cmd.AddCommand(newPictureListCommand(rootOpts))
	return cmd
}

func newPictureAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PictureAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a picture to the gallery",
		Long: `Add a picture to the gallery.

The file format is derived from the URL extension.

Example:
  greenline picture add --url https://cdn.example.com/field.jpg \
    --alt "Green field at dawn" --page home --section banner --tags agriculture,field`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPictureAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.URL, "url", "", "image URL (required)")
	cmd.Flags().StringVar(&opts.Alt, "alt", "", "alternative text (required)")
	cmd.Flags().StringVar(&opts.Page, "page", "", "site page the picture belongs to")
	cmd.Flags().StringVar(&opts.Section, "section", "", "section of the page")
	cmd.Flags().StringVar(&opts.Tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&opts.Size, "size", "", "pixel dimensions, e.g. 1920x1080")

	return cmd
}

func runPictureAdd(opts *PictureAddOptions, cmd *cobra.Command) error {
	a, err := openApp(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.pictures.Create(a.ctx, content.Picture{
		URL:     opts.URL,
		Alt:     opts.Alt,
		Page:    opts.Page,
		Section: opts.Section,
		Tags:    content.ParseList(opts.Tags),
		Size:    opts.Size,
	})
	if err != nil {
		return a.out.Fail("failed to add picture", err)
	}
	return a.out.Success(pictureAdded{p})
}

func newPictureRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>...",
		Short: "Remove pictures by id",
		Long: `Remove one or more pictures by id.

Removal stops at the first unknown id; pictures removed before it stay removed.

Example:
  greenline picture rm 1792315800000 1792315860000`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPictureRemove(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runPictureRemove(opts *RootOptions, args []string, cmd *cobra.Command) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	removed, err := a.pictures.RemoveMany(a.ctx, ids...)
	if err != nil {
		return a.out.Fail("failed to remove picture", err)
	}
	result := removedResult{Kind: "picture", IDs: make([]int64, len(removed))}
	for i, p := range removed {
		result.IDs[i] = p.ID
	}
	return a.out.Success(result)
}

func newPictureListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PictureListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List pictures",
		Long: `List pictures, filtered by page and section, searched by alt text and tags,
and sorted by newest, oldest or name.

Example:
  greenline picture ls --page home --search field --sort name`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPictureList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Page, "page", query.All, "page filter")
	cmd.Flags().StringVar(&opts.Section, "section", query.All, "section filter")
	cmd.Flags().StringVar(&opts.Search, "search", "", "case-insensitive search over alt text and tags")
	cmd.Flags().StringVar(&opts.Sort, "sort", string(query.SortNewest), "sort order (newest|oldest|name)")

	return cmd
}

func runPictureList(opts *PictureListOptions, cmd *cobra.Command) error {
	a, err := openApp(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	snapshot, err := a.pictures.List(a.ctx)
	if err != nil {
		return a.out.Fail("failed to list pictures", err)
	}
	return a.out.Success(pictureList(a.query.Pictures(snapshot, query.PictureQuery{
		Page:    opts.Page,
		Section: opts.Section,
		Search:  opts.Search,
		Sort:    query.SortKey(opts.Sort),
	})))
}

// parseIDs converts id arguments. A malformed id is a command error.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("invalid id %q", arg), err)
		}
		ids[i] = id
	}
	return ids, nil
}

type pictureAdded struct {
	content.Picture
}

func (p pictureAdded) String() string {
	return fmt.Sprintf("Added picture %d (%s) to %s/%s", p.ID, p.Format, p.Page, p.Section)
}

type pictureList []content.Picture

func (l pictureList) String() string {
	if len(l) == 0 {
		return "No pictures found."
	}
	t := newTable("ID", "ALT", "PAGE", "SECTION", "FORMAT", "TAGS", "ADDED")
	for _, p := range l {
		t.add(
			strconv.FormatInt(p.ID, 10),
			p.Alt,
			p.Page,
			p.Section,
			p.Format,
			strings.Join(p.Tags, ","),
			p.DateAdded.Format(time.DateOnly),
		)
	}
	return t.String()
}

type removedResult struct {
	Kind string  `json:"kind"`
	IDs  []int64 `json:"removed"`
}

func (r removedResult) String() string {
	ids := make([]string, len(r.IDs))
	for i, id := range r.IDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	noun := r.Kind
	if len(r.IDs) != 1 {
		noun += "s"
	}
	return fmt.Sprintf("Removed %d %s: %s", len(r.IDs), noun, strings.Join(ids, ", "))
}
