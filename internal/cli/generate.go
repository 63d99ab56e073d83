package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/autospec/internal/log"
)

// generateCmd is the generate command instance registered with root.
var generateCmd = newGenerateCmd()

// newGenerateCmd creates a new generate command.
func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <requirement>",
		Short: "Generate an output JSON Schema from a requirement",
		Long: `Generate an output JSON Schema from a free-text API requirement.

Example:
  autospec generate "I need an API that returns flight status, gate
  info and passenger name based on PNR"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runGenerate,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.newPipeline()
	if err != nil {
		return err
	}

	schema, err := p.GenerateOutputSchema(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if schema.HasError() {
		log.Errorf("Model returned invalid JSON; raw response:")
		log.Println(schema.Raw())
		return nil
	}

	log.Println(schema.PrettyJSON())
	return nil
}
