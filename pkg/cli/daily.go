package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/bujo/pkg/store"
	"github.com/stefanpenner/bujo/pkg/view"
)

// NewDailyCommand creates the daily command and its subcommands.
func NewDailyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show today's entries",
		Long: `Show the entries scheduled for today, numbered by daily id.

Daily ids are renumbered every time the journal is loaded, so they are only
good for the current day. The subcommands take a daily id.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(rootOpts, func(j *store.Journal) error {
				p := view.New(cmd.OutOrStdout())
				if rootOpts.JSON {
					return p.JSON(j.DailyEntries())
				}
				return p.Daily(j)
			})
		},
	}

	cmd.AddCommand(newCompleteCommand(rootOpts))
	cmd.AddCommand(newScheduleCommand(rootOpts))
	cmd.AddCommand(newSubtaskCommand(rootOpts))

	return cmd
}

func newCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <daily_id>",
		Short: "Mark an entry complete",
		Long: `Mark the entry with the given daily id complete.

The id may belong to a top-level entry or to one of its direct subtasks.
Deeper subtasks cannot be completed by daily id.`,
		Args:          usageArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDailyID(args[0])
			if err != nil {
				return err
			}
			return withJournal(rootOpts, func(j *store.Journal) error {
				done, err := j.Complete(store.DailyRef(id))
				if err != nil {
					return err
				}
				return report(cmd.OutOrStdout(), rootOpts, "Completed", done...)
			})
		},
	}
}

func newScheduleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <daily_id> <YYYYMMDD>",
		Short: "Move an entry to another day",
		Long: `Move the entry with the given daily id to another day.

Example:
  bujo daily schedule 2 20991231`,
		Args:          usageArgs(cobra.ExactArgs(2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDailyID(args[0])
			if err != nil {
				return err
			}
			return withJournal(rootOpts, func(j *store.Journal) error {
				r, err := j.Schedule(store.DailyRef(id), args[1])
				if err != nil {
					return err
				}
				if rootOpts.JSON {
					// The daily id is only renumbered on the next load.
					moved := *r
					if !store.SameDay(moved.EffectiveDate, j.Today()) {
						moved.DailyID = 0
					}
					return report(cmd.OutOrStdout(), rootOpts, "Scheduled", &moved)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s %s for %s\n",
					r.Signifier(), r.Content, r.EffectiveDate.Format("2006-01-02"))
				return nil
			})
		},
	}
}

func newSubtaskCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "subtask <daily_id> <text...> [task|note|event]",
		Short: "Add a subtask under an entry",
		Long: `Add a subtask under the entry with the given daily id.

Like add, a trailing task, note, or event sets the kind.`,
		Args:          usageArgs(cobra.MinimumNArgs(2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDailyID(args[0])
			if err != nil {
				return err
			}
			content, kind := store.SplitKind(args[1:])
			return withJournal(rootOpts, func(j *store.Journal) error {
				child, err := j.AddSubtask(store.DailyRef(id), content, kind)
				if err != nil {
					return err
				}
				return report(cmd.OutOrStdout(), rootOpts, "Added", child)
			})
		},
	}
}

func parseDailyID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid daily id %q", s))
	}
	return id, nil
}
