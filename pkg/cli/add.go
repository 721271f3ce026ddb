package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/bujo/pkg/store"
	"github.com/stefanpenner/bujo/pkg/view"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...> [task|note|event]",
		Short: "Add an entry for today",
		Long: `Add an entry scheduled for today.

The words are joined with single spaces. A trailing task, note, or event
sets the kind; the default is task.

Example:
  bujo add Buy milk
  bujo add Standup at 10 event`,
		Args:          usageArgs(cobra.MinimumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, kind := store.SplitKind(args)
			return withJournal(rootOpts, func(j *store.Journal) error {
				key := j.Add(content, kind)
				r, _ := j.Root(key)
				return report(cmd.OutOrStdout(), rootOpts, "Added", r)
			})
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <key>",
		Short:         "Delete an entry and its subtasks by stable key",
		Args:          usageArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid key %q", args[0]))
			}
			key := store.Key(n)

			return withJournal(rootOpts, func(j *store.Journal) error {
				r, _ := j.Root(key)
				if err := j.Delete(key); err != nil {
					return err
				}
				return report(cmd.OutOrStdout(), rootOpts, "Deleted", r)
			})
		},
	}
}

// report prints one line per record, or the records as JSON.
func report(w io.Writer, opts *RootOptions, verb string, recs ...*store.Record) error {
	if opts.JSON {
		out := make([]view.EntryJSON, 0, len(recs))
		for _, r := range recs {
			out = append(out, view.NewEntryJSON(store.Entry{Record: r}))
		}
		return outputJSON(w, out)
	}
	for _, r := range recs {
		fmt.Fprintf(w, "%s %s %s (%s)\n", verb, r.Signifier(), r.Content, describe(r))
	}
	return nil
}

func describe(r *store.Record) string {
	id := fmt.Sprintf("key %d", r.Key)
	if !r.IsRoot() {
		id = fmt.Sprintf("local key %d", r.LocalKey)
	}
	if r.DailyID != 0 {
		id += fmt.Sprintf(", daily id %d", r.DailyID)
	}
	return id
}
