package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/autospec/internal/log"
)

var clearForce bool

// clearCmd is the clear command instance registered with root.
var clearCmd = newClearCmd()

// newClearCmd creates a new clear command.
func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all ingested embeddings and catalog records",
		Long: `Delete all ingested embeddings and catalog records.

This drops the entire vector collection and the API catalog. There is
no per-record delete; this is the only way to remove data.`,
		Args: cobra.NoArgs,
		RunE: runClear,
	}

	cmd.Flags().BoolVar(&clearForce, "force", false, "Skip confirmation")

	return cmd
}

func runClear(cmd *cobra.Command, _ []string) error {
	if !clearForce {
		return fmt.Errorf("refusing to clear without --force")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.ingest.Clear(cmd.Context()); err != nil {
		return err
	}

	log.Println("Cleared all vector data.")
	return nil
}
