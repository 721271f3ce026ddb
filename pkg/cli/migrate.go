package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/bujo/pkg/store"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Move every open task to today",
		Long: `Move every open top-level task to today.

Notes, events, completed tasks, and subtasks keep their dates.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(rootOpts, func(j *store.Journal) error {
				moved := j.Migrate()
				slog.Debug("migrated tasks", "count", len(moved))
				if rootOpts.JSON {
					return report(cmd.OutOrStdout(), rootOpts, "Migrated", moved...)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d open %s to today\n", len(moved), plural(len(moved), "task", "tasks"))
				return nil
			})
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
