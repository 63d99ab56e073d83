package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/autospec/internal/llm"
	"github.com/asteroid-belt/autospec/internal/models"
)

// stubProvider returns canned content and records the request.
type stubProvider struct {
	content     string
	err         error
	lastPrompt  string
	lastOptions llm.Options
}

func (s *stubProvider) Complete(_ context.Context, messages []llm.Message, opts llm.Options) (*llm.Response, error) {
	if len(messages) > 0 {
		s.lastPrompt = messages[len(messages)-1].Content
	}
	s.lastOptions = opts
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Response{Content: s.content}, nil
}

func (s *stubProvider) Name() string         { return "stub" }
func (s *stubProvider) Models() []string     { return nil }
func (s *stubProvider) DefaultModel() string { return "stub-model" }

func TestGenerateOutputSchema(t *testing.T) {
	stub := &stubProvider{content: `Here you go:
{"type": "object", "properties": {"status": {"type": "string"}}}`}
	gen := NewSchemaGenerator(stub, "")

	schema, err := gen.GenerateOutputSchema(context.Background(), "I need an API that returns flight status by PNR")
	require.NoError(t, err)

	assert.False(t, schema.HasError())
	assert.Equal(t, "object", schema["type"])

	// The requirement is embedded in the prompt; temperature is 0.2.
	assert.Contains(t, stub.lastPrompt, "flight status by PNR")
	assert.InDelta(t, 0.2, stub.lastOptions.Temperature, 0.001)
}

func TestGenerateOutputSchema_MalformedResponse(t *testing.T) {
	stub := &stubProvider{content: "I can't help with that."}
	gen := NewSchemaGenerator(stub, "")

	schema, err := gen.GenerateOutputSchema(context.Background(), "whatever")
	require.NoError(t, err)

	assert.True(t, schema.HasError())
	assert.Equal(t, "I can't help with that.", schema.Raw())
}

func TestGenerateOutputSchema_ProviderError(t *testing.T) {
	stub := &stubProvider{err: errors.New("connection refused")}
	gen := NewSchemaGenerator(stub, "")

	_, err := gen.GenerateOutputSchema(context.Background(), "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGenerateInputSchema(t *testing.T) {
	stub := &stubProvider{content: `{"type": "object", "properties": {"pnr": {"type": "string"}}, "required": ["pnr"]}`}
	gen := NewSchemaGenerator(stub, "")

	rec := models.APIRecord{
		Name:         "flights",
		Description:  "flight status API",
		OutputSchema: models.Schema{"type": "object"},
	}

	schema, err := gen.GenerateInputSchema(context.Background(), rec)
	require.NoError(t, err)

	assert.False(t, schema.HasError())
	assert.Equal(t, "object", schema["type"])

	// The serialized record is embedded in the prompt.
	assert.Contains(t, stub.lastPrompt, `"flights"`)
	assert.Contains(t, stub.lastPrompt, "flight status API")
}

func TestGenerateMapping(t *testing.T) {
	stub := &stubProvider{content: `{
  "mappings": [
    {"custom_path": "status", "existing_path": "status", "transformation": null},
    {"custom_path": "gate", "existing_path": "gate_number", "transformation": "rename"}
  ]
}`}
	gen := NewMappingGenerator(stub, "")

	custom := models.Schema{"type": "object", "properties": map[string]any{"status": map[string]any{"type": "string"}}}
	existing := models.Schema{"type": "object", "properties": map[string]any{"status": map[string]any{"type": "string"}}}

	mapping, err := gen.GenerateMapping(context.Background(), custom, existing)
	require.NoError(t, err)
	require.False(t, mapping.HasError())
	require.Len(t, mapping.Mappings, 2)

	// Identical field names map with no transformation.
	assert.Equal(t, "status", mapping.Mappings[0].CustomPath)
	assert.Equal(t, "status", mapping.Mappings[0].ExistingPath)
	assert.Nil(t, mapping.Mappings[0].Transformation)

	require.NotNil(t, mapping.Mappings[1].Transformation)
	assert.Equal(t, "rename", *mapping.Mappings[1].Transformation)

	// Mapping generation is pinned to temperature 0.
	assert.Zero(t, stub.lastOptions.Temperature)

	// Both schemas appear in the prompt.
	assert.True(t, strings.Contains(stub.lastPrompt, "Custom Output Schema"))
	assert.True(t, strings.Contains(stub.lastPrompt, "Existing Output Schema"))
}

func TestGenerateMapping_MalformedResponse(t *testing.T) {
	stub := &stubProvider{content: "mapping unavailable"}
	gen := NewMappingGenerator(stub, "")

	mapping, err := gen.GenerateMapping(context.Background(), models.Schema{}, models.Schema{})
	require.NoError(t, err)

	assert.True(t, mapping.HasError())
	assert.Equal(t, "mapping unavailable", mapping.Raw)
	assert.Empty(t, mapping.Mappings)
}

func TestGenerateMapping_ProviderError(t *testing.T) {
	stub := &stubProvider{err: errors.New("timeout")}
	gen := NewMappingGenerator(stub, "")

	_, err := gen.GenerateMapping(context.Background(), models.Schema{}, models.Schema{})
	assert.Error(t, err)
}
