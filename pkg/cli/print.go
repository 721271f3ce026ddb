package cli

import (
	"github.com/spf13/cobra"

	"github.com/stefanpenner/bujo/pkg/store"
	"github.com/stefanpenner/bujo/pkg/view"
)

// NewPrintCommand creates the print command.
func NewPrintCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "print",
		Short:         "List every entry by date",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(rootOpts, func(j *store.Journal) error {
				p := view.New(cmd.OutOrStdout())
				if rootOpts.JSON {
					var roots []store.Entry
					for _, e := range j.AllEntries() {
						if e.Depth == 0 {
							roots = append(roots, e)
						}
					}
					return p.JSON(roots)
				}
				return p.Print(j)
			})
		},
	}
}

// NewDebugCommand creates the debug command.
func NewDebugCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "debug",
		Aliases:       []string{"raw"},
		Short:         "Dump every entry with its internal fields",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(rootOpts, func(j *store.Journal) error {
				p := view.New(cmd.OutOrStdout())
				if rootOpts.JSON {
					return p.JSON(j.AllEntries())
				}
				return p.Debug(j)
			})
		},
	}
}
