package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/autospec/internal/log"
	"github.com/asteroid-belt/autospec/internal/models"
)

// mapCmd is the map command instance registered with root.
var mapCmd = newMapCmd()

// newMapCmd creates a new map command.
func newMapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map <requirement>",
		Short: "Run the full pipeline: schema, match, input schema, mapping",
		Long: `Run the full pipeline non-interactively:

  1. Generate an output JSON Schema from the requirement
  2. Find the closest catalogued API
  3. Generate an input schema for the matched API
  4. Propose a field mapping between the two output schemas`,
		Args: cobra.MinimumNArgs(1),
		RunE: runMap,
	}
}

func runMap(cmd *cobra.Command, args []string) error {
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
	log.Println("1. Generated output schema:")
	log.Println(schema.PrettyJSON())
	if schema.HasError() {
		log.Errorf("Model returned invalid JSON; stopping.")
		return nil
	}

	match, err := p.SearchMatch(ctx)
	if err != nil {
		return err
	}
	if match == nil {
		log.Println("\n2. No catalogued APIs to match against; stopping.")
		return nil
	}
	log.Printf("\n2. Matched API: %s (distance %.4f)\n", match.Name, match.Distance)
	log.Println(models.PrettyJSON(match))

	input, err := p.GenerateInputSchema(ctx)
	if err != nil {
		return err
	}
	log.Println("\n3. Generated input schema:")
	log.Println(input.PrettyJSON())

	mapping, err := p.GenerateMapping(ctx)
	if err != nil {
		return err
	}
	log.Println("\n4. Field mapping:")
	if mapping.HasError() {
		log.Errorf("Model returned invalid JSON; raw response:")
		log.Println(mapping.Raw)
		return nil
	}
	log.Println(models.PrettyJSON(mapping))
	return nil
}
