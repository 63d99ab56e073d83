package generate

import (
	"context"
	"fmt"

	"github.com/asteroid-belt/autospec/internal/jsonx"
	"github.com/asteroid-belt/autospec/internal/llm"
	"github.com/asteroid-belt/autospec/internal/models"
)

// MappingGenerator proposes field-level mappings between two schemas.
type MappingGenerator struct {
	provider llm.Provider
	model    string
}

// NewMappingGenerator creates a mapping generator on the given provider.
func NewMappingGenerator(provider llm.Provider, model string) *MappingGenerator {
	return &MappingGenerator{
		provider: provider,
		model:    model,
	}
}

// GenerateMapping asks the model to map fields from the custom output
// schema onto the existing API's output schema. Paths in the result
// are not validated against either schema. Unparseable responses come
// back as a Mapping carrying Error/Raw, mirroring the schema sentinel.
func (g *MappingGenerator) GenerateMapping(ctx context.Context, customSchema, existingSchema models.Schema) (*models.Mapping, error) {
	prompt := fmt.Sprintf(mappingPromptTemplate, customSchema.PrettyJSON(), existingSchema.PrettyJSON())

	resp, err := g.provider.Complete(ctx, []llm.Message{llm.NewUserMessage(prompt)}, llm.Options{
		Model:       g.model,
		Temperature: mappingTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate mapping: %w", err)
	}

	var mapping models.Mapping
	if !jsonx.ExtractInto(resp.Content, &mapping) {
		return &models.Mapping{
			Error: jsonx.ExtractErrorMessage,
			Raw:   resp.Content,
		}, nil
	}

	return &mapping, nil
}
