package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/greenline/internal/clock"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
	EnvFile    string
	Backend    string // overrides the configured backend when set
	Database   string // overrides the configured SQLite path when set

	// Clock and Traces replace the system clock and the UUIDv7 trace
	// generator. Tests set them; nil uses the real implementations.
	Clock  clock.Clock
	Traces TraceGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the greenline CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greenline",
		Short: "GreenLine - content console",
		Long: `Manage the GreenLine site content: the picture gallery, the leadership
team, the activity log, and JSON backups of all three.

Content is persisted in a key-value backend (SQLite by default, Redis or
in-memory on request).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "path to .env file (default .env when present)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "persistence backend (sqlite|redis|memory)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database")

	// Add subcommands
	cmd.AddCommand(NewPictureCommand(opts))
	cmd.AddCommand(NewLeaderCommand(opts))
	cmd.AddCommand(NewActivityCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
