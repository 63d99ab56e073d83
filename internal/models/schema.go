// Package models defines the core data structures for AutoSpec.
package models

import (
	"encoding/json"
)

// Schema is a JSON-Schema-shaped document. It is treated as an opaque
// nested mapping and is never validated against the JSON Schema spec.
type Schema map[string]any

// Sentinel keys set by the JSON extractor when a model response could
// not be parsed. Callers check HasError instead of handling an error.
const (
	SchemaErrorKey = "error"
	SchemaRawKey   = "raw"
)

// ErrorSchema builds the sentinel schema carrying the raw model output.
func ErrorSchema(msg, raw string) Schema {
	return Schema{
		SchemaErrorKey: msg,
		SchemaRawKey:   raw,
	}
}

// HasError reports whether this schema is the extraction-failure sentinel.
func (s Schema) HasError() bool {
	_, ok := s[SchemaErrorKey]
	return ok
}

// Raw returns the raw model output stored in a sentinel schema.
func (s Schema) Raw() string {
	raw, _ := s[SchemaRawKey].(string)
	return raw
}

// JSON serializes the schema to a compact JSON string.
// Used as the embedding input for similarity search.
func (s Schema) JSON() string {
	b, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// PrettyJSON serializes the schema with indentation for display.
func (s Schema) PrettyJSON() string {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// PrettyJSON renders any JSON-marshalable value with indentation.
func PrettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
