// Package cli implements the bujo command tree.
package cli

import (
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/bujo/pkg/config"
	"github.com/stefanpenner/bujo/pkg/store"
)

// now is the clock handed to every loaded journal. Tests pin it.
var now = time.Now

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Dir     string
	JSON    bool
	Verbose bool

	// Config is resolved in PersistentPreRunE.
	Config *config.Config
}

// NewRootCommand creates the root command. Run without a subcommand it
// opens the TUI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bujo",
		Short: "A bullet journal for the terminal",
		Long: `bujo keeps tasks, notes, and events in a single journal file.

Entries get a stable key when they are created and a daily id that is
renumbered every time the journal is loaded. Only entries scheduled for
today carry a daily id.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(opts, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitCommandError, Err: err}
	})

	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", "", "data directory (overrides $"+config.EnvDir+" and ~/"+config.RCFileName+")")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "JSON output")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewCleanCommand(opts))
	cmd.AddCommand(NewPrintCommand(opts))
	cmd.AddCommand(NewDebugCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewDailyCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewArchiveCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))

	return cmd
}

// setup configures logging and resolves the data directory.
func setup(opts *RootOptions, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load(opts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	opts.Config = cfg
	slog.Debug("config resolved", "data_dir", cfg.DataDir, "rc", cfg.RCPath)
	return nil
}

// withJournal runs one load, op, save cycle. The journal is saved verbatim
// even when op only reads it.
func withJournal(opts *RootOptions, op func(j *store.Journal) error) error {
	s := opts.Config.Store()
	s.Now = now
	j, err := s.Load()
	if err != nil {
		return classify(err)
	}
	slog.Debug("journal loaded", "path", s.DataPath(), "roots", j.Len())

	if err := op(j); err != nil {
		return classify(err)
	}

	if err := s.Save(j); err != nil {
		return classify(err)
	}
	slog.Debug("journal saved", "path", s.DataPath())
	return nil
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
