package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/autospec/internal/log"
	"github.com/asteroid-belt/autospec/internal/models"
)

var searchK int

// searchCmd is the search command instance registered with root.
var searchCmd = newSearchCmd()

// newSearchCmd creates a new search command.
func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <requirement>",
		Short: "Generate a schema and find the closest catalogued API",
		Long: `Generate an output schema from the requirement, then search the
vector store for the most similar catalogued API.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVarP(&searchK, "results", "k", 1, "Number of matches to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.newPipeline()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	schema, err := p.GenerateOutputSchema(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	log.Println("Generated output schema:")
	log.Println(schema.PrettyJSON())

	matches, err := a.retrieval.RetrieveSimilarAPI(ctx, schema, searchK)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		log.Println("No catalogued APIs to match against.")
		return nil
	}

	log.Println("\nClosest matches:")
	for _, m := range matches {
		log.Printf("  %s (distance %.4f)\n", m.Name, m.Distance)
	}
	log.Println("\nBest match:")
	log.Println(models.PrettyJSON(matches[0]))
	return nil
}
