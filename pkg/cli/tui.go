package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/bujo/pkg/store"
	"github.com/stefanpenner/bujo/pkg/tui"
)

// NewTUICommand creates the tui command.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "tui",
		Short:         "Open the interactive daily view",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(rootOpts)
		},
	}
}

func runTUI(opts *RootOptions) error {
	s := opts.Config.Store()
	if !s.Exists() {
		return classify(fmt.Errorf("%s: %w", s.DataPath(), store.ErrStorageMissing))
	}
	s.Now = now
	if err := tui.Run(s); err != nil {
		return classify(err)
	}
	return nil
}
