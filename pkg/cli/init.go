package cli

import (
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create ~/.bujorc and the data directory",
		Long: `Create ~/.bujorc and the data directory with an empty journal.

Anything that already exists is reported and left alone.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.Config.Initialize(cmd.OutOrStdout()); err != nil {
				return WrapExitError(ExitFailure, "init failed", err)
			}
			return nil
		},
	}
}

// NewCleanCommand creates the clean command.
func NewCleanCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clean",
		Short:         "Delete ~/.bujorc and the data directory",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.Config.Clean(cmd.OutOrStdout()); err != nil {
				return WrapExitError(ExitFailure, "clean failed", err)
			}
			return nil
		},
	}
}
