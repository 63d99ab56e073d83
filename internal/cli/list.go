package cli

import (
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/autospec/internal/log"
)

// listCmd is the list command instance registered with root.
var listCmd = newListCmd()

// newListCmd creates a new list command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ingested APIs and their embedding ids",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	names, err := a.catalog.ListNames()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		log.Println("No APIs ingested yet. Run 'autospec ingest <path>' first.")
		return nil
	}

	ids, err := a.ingest.ListIngested(cmd.Context())
	if err != nil {
		return err
	}

	log.Printf("%d APIs ingested (%d embeddings):\n", len(names), len(ids))
	for _, name := range names {
		log.Printf("  %s\n", name)
	}
	return nil
}
