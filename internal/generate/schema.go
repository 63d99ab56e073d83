// Package generate builds prompts for schema and mapping generation
// and parses the model responses.
package generate

import (
	"context"
	"fmt"

	"github.com/asteroid-belt/autospec/internal/jsonx"
	"github.com/asteroid-belt/autospec/internal/llm"
	"github.com/asteroid-belt/autospec/internal/models"
)

// Sampling temperatures per call. Schema generation tolerates a little
// variance; mapping is pinned to 0 for determinism-seeking.
const (
	schemaTemperature  = 0.2
	mappingTemperature = 0
)

// SchemaGenerator derives JSON Schemas from free text or API records.
type SchemaGenerator struct {
	provider llm.Provider
	model    string
}

// NewSchemaGenerator creates a schema generator on the given provider.
// model may be empty to use the provider default.
func NewSchemaGenerator(provider llm.Provider, model string) *SchemaGenerator {
	return &SchemaGenerator{
		provider: provider,
		model:    model,
	}
}

// GenerateOutputSchema converts a free-text API requirement into a
// JSON Schema for the API's output. A response that cannot be parsed
// comes back as the {error, raw} sentinel schema, not an error; the
// returned error covers provider/network failures only.
func (g *SchemaGenerator) GenerateOutputSchema(ctx context.Context, requirement string) (models.Schema, error) {
	prompt := fmt.Sprintf(outputSchemaPromptTemplate, requirement)

	resp, err := g.provider.Complete(ctx, []llm.Message{llm.NewUserMessage(prompt)}, llm.Options{
		Model:       g.model,
		Temperature: schemaTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate output schema: %w", err)
	}

	return jsonx.Extract(resp.Content), nil
}

// GenerateInputSchema derives an input-request JSON Schema for an
// existing API from its serialized record.
func (g *SchemaGenerator) GenerateInputSchema(ctx context.Context, rec models.APIRecord) (models.Schema, error) {
	prompt := fmt.Sprintf(inputSchemaPromptTemplate, models.PrettyJSON(rec))

	resp, err := g.provider.Complete(ctx, []llm.Message{llm.NewUserMessage(prompt)}, llm.Options{
		Model:       g.model,
		Temperature: schemaTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate input schema: %w", err)
	}

	return jsonx.Extract(resp.Content), nil
}
