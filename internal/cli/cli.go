// Package cli provides the command-line interface for AutoSpec.
package cli

import (
	"context"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/autospec/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "autospec",
	Short: "AI-driven API schema generation and mapping",
	Long: `AI-driven API schema generation and mapping.

AutoSpec turns a free-text API requirement into a JSON Schema, finds
the most similar previously catalogued API via embedding search,
derives an input schema for the match, and proposes a field-level
mapping between the two output schemas.

Run without arguments to launch the interactive four-step wizard.

Requires OPENAI_API_KEY for embeddings; generation uses OpenAI or
Anthropic (ANTHROPIC_API_KEY).`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(mapCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}
