package cli

import (
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/autospec/internal/tui"
)

// runTUI launches the interactive four-step wizard. It is the root
// command's default action.
func runTUI(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.newPipeline()
	if err != nil {
		return err
	}

	return tui.Run(p)
}
