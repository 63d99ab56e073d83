package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/autospec/internal/config"
	"github.com/asteroid-belt/autospec/internal/log"
	"github.com/asteroid-belt/autospec/internal/models"
)

// ingestCmd is the ingest command instance registered with root.
var ingestCmd = newIngestCmd()

// newIngestCmd creates a new ingest command.
// This is a factory function to support testing.
func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest [path]",
		Short: "Ingest API spec files into the vector store",
		Long: `Ingest API spec files into the vector store.

Path may be a single JSON file or a directory of JSON files, each
shaped {"name", "description", "input_schema", "output_schema"}.
Defaults to the apis folder under the AutoSpec home directory.

Each spec produces three embeddings (description, input schema,
output schema). Re-ingesting a name overwrites its embeddings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIngest,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	path := config.GetPaths(a.cfg).APIs
	if len(args) > 0 {
		path = args[0]
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	ctx := cmd.Context()

	if info.IsDir() {
		n, err := a.ingest.IngestFolder(ctx, path)
		if err != nil {
			return err
		}
		log.Printf("Ingested %d API specs from %s\n", n, path)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	rec, err := models.ParseAPIRecord(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return a.ingest.IngestSpec(ctx, rec)
}
