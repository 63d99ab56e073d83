package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/autospec/internal/models"
)

func TestExtract_BareObject(t *testing.T) {
	got := Extract(`{"type": "object", "properties": {"status": {"type": "string"}}}`)
	require.False(t, got.HasError())
	assert.Equal(t, "object", got["type"])
}

func TestExtract_ProseAroundObject(t *testing.T) {
	got := Extract(`Sure! {"a":1} thanks`)
	require.False(t, got.HasError())
	assert.Equal(t, float64(1), got["a"])
}

func TestExtract_CodeFence(t *testing.T) {
	raw := "```json\n{\"type\": \"object\"}\n```"
	got := Extract(raw)
	require.False(t, got.HasError())
	assert.Equal(t, "object", got["type"])
}

func TestExtract_BracesInsideStrings(t *testing.T) {
	// Plain first-{/last-} slicing breaks here; the tokenizer must not.
	raw := `prefix {"note": "unbalanced } brace", "n": 2} and a stray { at the end`
	got := Extract(raw)
	require.False(t, got.HasError())
	assert.Equal(t, "unbalanced } brace", got["note"])
	assert.Equal(t, float64(2), got["n"])
}

func TestExtract_PicksFirstValidObject(t *testing.T) {
	got := Extract(`{"first": true} then {"second": true}`)
	require.False(t, got.HasError())
	assert.Equal(t, true, got["first"])
	_, hasSecond := got["second"]
	assert.False(t, hasSecond)
}

func TestExtract_NoBraces(t *testing.T) {
	raw := "I could not produce a schema for that."
	got := Extract(raw)
	require.True(t, got.HasError())
	assert.Equal(t, ExtractErrorMessage, got[models.SchemaErrorKey])
	assert.Equal(t, raw, got.Raw())
}

func TestExtract_OpenBraceOnly(t *testing.T) {
	raw := `{"type": "object"`
	got := Extract(raw)
	require.True(t, got.HasError())
	assert.Equal(t, raw, got.Raw())
}

func TestExtract_EmptyInput(t *testing.T) {
	got := Extract("")
	require.True(t, got.HasError())
	assert.Equal(t, "", got.Raw())
}

func TestExtract_NestedObject(t *testing.T) {
	got := Extract(`noise {"a": {"b": {"c": 3}}} noise`)
	require.False(t, got.HasError())
	inner := got["a"].(map[string]any)["b"].(map[string]any)
	assert.Equal(t, float64(3), inner["c"])
}

func TestExtractInto_Mapping(t *testing.T) {
	raw := `Here is the mapping:
{"mappings": [{"custom_path": "status", "existing_path": "status", "transformation": null}]}`

	var m models.Mapping
	require.True(t, ExtractInto(raw, &m))
	require.Len(t, m.Mappings, 1)
	assert.Equal(t, "status", m.Mappings[0].CustomPath)
	assert.Equal(t, "status", m.Mappings[0].ExistingPath)
	assert.Nil(t, m.Mappings[0].Transformation)
}

func TestExtractInto_Failure(t *testing.T) {
	var m models.Mapping
	assert.False(t, ExtractInto("no json here", &m))
	assert.Empty(t, m.Mappings)
}
