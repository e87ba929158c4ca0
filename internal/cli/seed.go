package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/greenline/internal/content"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo content into an empty console",
		Long: `Load a small demo data set: three pictures, two team members and two
activity records.

Seeding refuses to run when the console already has pictures or leaders
unless --force is given, in which case all content is replaced.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(rootOpts, force, cmd)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace existing content")

	return cmd
}

func runSeed(opts *RootOptions, force bool, cmd *cobra.Command) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if !force {
		pictures, err := a.pictures.Len(a.ctx)
		if err != nil {
			return a.out.Fail("failed to read pictures", err)
		}
		leaders, err := a.leaders.Len(a.ctx)
		if err != nil {
			return a.out.Fail("failed to read leaders", err)
		}
		if pictures+leaders > 0 {
			return a.out.Fail("refusing to seed", NewExitError(ExitFailure,
				fmt.Sprintf("console already has %d pictures and %d leaders; use --force to replace them", pictures, leaders)))
		}
	}

	sample := content.SampleData(a.clock.Now())
	if err := a.pictures.ReplaceAll(a.ctx, sample.Pictures); err != nil {
		return a.out.Fail("failed to seed pictures", err)
	}
	if err := a.leaders.ReplaceAll(a.ctx, sample.Leaders); err != nil {
		return a.out.Fail("failed to seed leaders", err)
	}
	if err := a.log.Replace(a.ctx, sample.Activities); err != nil {
		return a.out.Fail("failed to seed activity", err)
	}
	a.logger.Info("sample data loaded")

	return a.out.Success(importResult{
		Pictures:   len(sample.Pictures),
		Leaders:    len(sample.Leaders),
		Activities: len(sample.Activities),
	})
}
