package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/greenline/internal/backup"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export [pictures|leaders|activity]...",
		Short: "Export content as JSON",
		Long: `Export content as JSON.

With no scope, or with both pictures and leaders, a full backup document is
written. Adding "activity" includes the activity log. A lone "pictures" or
"leaders" scope writes a bare JSON array of that collection.

With --output - the document goes to stdout; with --output set to a
directory the conventional file name is used, e.g.
greenline-backup-2026-10-18.json.

Examples:
  greenline export -o backup.json
  greenline export pictures -o .
  greenline export activity`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-", "output file or directory (- for stdout)")

	return cmd
}

func runExport(opts *ExportOptions, args []string, cmd *cobra.Command) error {
	scopes := make([]backup.Scope, 0, len(args))
	for _, arg := range args {
		sc, err := backup.ParseScope(arg)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid export scope", err)
		}
		scopes = append(scopes, sc)
	}

	a, err := openApp(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := a.backup.Export(a.ctx, scopes...)
	if err != nil {
		return a.out.Fail("failed to export", err)
	}

	if opts.Output == "-" {
		if a.out.Format == "json" {
			return a.out.Success(json.RawMessage(data))
		}
		_, err := fmt.Fprintln(a.out.Writer, string(data))
		return err
	}

	path := opts.Output
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, backup.FileName(a.clock.Now(), scopes...))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return a.out.Fail("failed to write export", WrapExitError(ExitCommandError, "write "+path, err))
	}
	a.logger.Debug("export written", "path", path, "bytes", len(data))
	return a.out.Success(exportResult{File: path, Bytes: len(data)})
}

type exportResult struct {
	File  string `json:"file"`
	Bytes int    `json:"bytes"`
}

func (r exportResult) String() string {
	return fmt.Sprintf("Exported %d bytes to %s", r.Bytes, r.File)
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a full backup",
		Long: `Restore a full backup written by "greenline export".

The pictures and leaders collections are replaced wholesale; the activity
log is replaced only when the backup carries one. Entities are restored as
written, without validation; run "greenline check" first to vet a backup.
A malformed backup leaves the console unchanged.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}
}

func runImport(opts *RootOptions, file string, cmd *cobra.Command) error {
	blob, err := os.ReadFile(file)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read backup", err)
	}

	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.backup.Import(a.ctx, blob); err != nil {
		return a.out.Fail("failed to import backup", err)
	}

	var result importResult
	if result.Pictures, err = a.pictures.Len(a.ctx); err != nil {
		return a.out.Fail("failed to count pictures", err)
	}
	if result.Leaders, err = a.leaders.Len(a.ctx); err != nil {
		return a.out.Fail("failed to count leaders", err)
	}
	records, err := a.log.All(a.ctx)
	if err != nil {
		return a.out.Fail("failed to read activity log", err)
	}
	result.Activities = len(records)
	return a.out.Success(result)
}

type importResult struct {
	Pictures   int `json:"pictures"`
	Leaders    int `json:"leaders"`
	Activities int `json:"activities"`
}

func (r importResult) String() string {
	return fmt.Sprintf("Restored %d pictures, %d leaders and %d activity records", r.Pictures, r.Leaders, r.Activities)
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a backup without importing it",
		Long: `Validate a backup against the backup schema without importing it.

Reports entity problems that import would accept as-is: blank required
fields, display orders below 1 and unknown activity types. Exits with
status 1 when problems are found.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
}

func runCheck(opts *RootOptions, file string, cmd *cobra.Command) error {
	out := newOutput(cmd, opts)

	blob, err := os.ReadFile(file)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read backup", err)
	}
	issues, err := backup.Check(blob)
	if err != nil {
		return out.Fail("failed to check backup", err)
	}

	result := checkResult{File: file, Valid: len(issues) == 0, Issues: issues}
	if err := out.Success(result); err != nil {
		return err
	}
	if !result.Valid {
		return &ExitError{
			Code:     ExitFailure,
			Message:  fmt.Sprintf("%s has %d problems", file, len(issues)),
			reported: true,
		}
	}
	return nil
}

type checkResult struct {
	File   string         `json:"file"`
	Valid  bool           `json:"valid"`
	Issues []backup.Issue `json:"issues"`
}

func (r checkResult) String() string {
	if r.Valid {
		return fmt.Sprintf("%s: ok", r.File)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d problems", r.File, len(r.Issues))
	for _, issue := range r.Issues {
		sb.WriteString("\n  ")
		sb.WriteString(issue.String())
	}
	return sb.String()
}
