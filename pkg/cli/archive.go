package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/bujo/pkg/archive"
	"github.com/stefanpenner/bujo/pkg/store"
)

// ArchiveEntryJSON is the JSON form of an archived root record.
type ArchiveEntryJSON struct {
	UUID          string `json:"uuid"`
	Key           int64  `json:"key"`
	Kind          string `json:"kind"`
	Content       string `json:"content"`
	Complete      bool   `json:"complete"`
	EffectiveDate int64  `json:"effective_date"`
	CreatedAt     int64  `json:"created_at"`
	ArchivedAt    int64  `json:"archived_at"`
	Subtasks      int    `json:"subtasks"`
}

// NewArchiveCommand creates the archive command.
func NewArchiveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Move completed entries into the archive",
		Long: `Move every completed top-level entry, with all of its subtasks, out of
the journal into archive.db in the data directory.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := rootOpts.Config.Store()
			if !s.Exists() {
				return classify(fmt.Errorf("%s: %w", s.DataPath(), store.ErrStorageMissing))
			}

			a, err := archive.Open(s.ArchivePath())
			if err != nil {
				return WrapExitError(ExitFailure, "failed to open archive", err)
			}
			defer func() {
				if closeErr := a.Close(); closeErr != nil {
					slog.Error("error closing archive", "error", closeErr)
				}
			}()

			return withJournal(rootOpts, func(j *store.Journal) error {
				moved, err := a.Archive(cmd.Context(), j)
				if err != nil {
					return err
				}
				slog.Debug("archived entries", "count", len(moved), "path", s.ArchivePath())
				if rootOpts.JSON {
					return report(cmd.OutOrStdout(), rootOpts, "Archived", moved...)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Archived %d %s\n", len(moved), plural(len(moved), "entry", "entries"))
				return nil
			})
		},
	}

	cmd.AddCommand(newArchiveListCommand(rootOpts))
	return cmd
}

func newArchiveListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List archived entries, newest first",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := rootOpts.Config.Store()
			if !s.Exists() {
				return classify(fmt.Errorf("%s: %w", s.DataPath(), store.ErrStorageMissing))
			}

			a, err := archive.Open(s.ArchivePath())
			if err != nil {
				return WrapExitError(ExitFailure, "failed to open archive", err)
			}
			defer a.Close()

			entries, err := a.List(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "failed to read archive", err)
			}

			w := cmd.OutOrStdout()
			if rootOpts.JSON {
				out := make([]ArchiveEntryJSON, 0, len(entries))
				for _, e := range entries {
					out = append(out, ArchiveEntryJSON{
						UUID:          e.UUID,
						Key:           int64(e.Key),
						Kind:          e.Kind.String(),
						Content:       e.Content,
						Complete:      e.Complete,
						EffectiveDate: e.EffectiveDate.Unix(),
						CreatedAt:     e.CreatedAt.Unix(),
						ArchivedAt:    e.ArchivedAt.Unix(),
						Subtasks:      e.Subtasks,
					})
				}
				return outputJSON(w, out)
			}

			if len(entries) == 0 {
				fmt.Fprintln(w, "Archive is empty.")
				return nil
			}
			for _, e := range entries {
				glyph := e.Kind.Glyph()
				if e.Complete {
					glyph = store.GlyphComplete
				}
				var b strings.Builder
				fmt.Fprintf(&b, "%s %s %s", e.ArchivedAt.Format("2006-01-02"), glyph, e.Content)
				if e.Subtasks > 0 {
					fmt.Fprintf(&b, " (+%d %s)", e.Subtasks, plural(e.Subtasks, "subtask", "subtasks"))
				}
				fmt.Fprintln(w, b.String())
			}
			return nil
		},
	}
}
