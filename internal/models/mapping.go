package models

// FieldMapping is one correspondence between a path in the custom
// output schema and a path in the matched API's output schema.
// Transformation is nil when the field carries over unchanged.
type FieldMapping struct {
	CustomPath     string  `json:"custom_path"`
	ExistingPath   string  `json:"existing_path"`
	Transformation *string `json:"transformation"`
}

// Mapping is the output of one mapping-generation call. Paths are
// taken from the model verbatim; nothing verifies they resolve within
// their schemas.
type Mapping struct {
	Mappings []FieldMapping `json:"mappings"`

	// Error/Raw are set when the model response could not be parsed.
	Error string `json:"error,omitempty"`
	Raw   string `json:"raw,omitempty"`
}

// HasError reports whether this mapping is the extraction-failure sentinel.
func (m *Mapping) HasError() bool {
	return m.Error != ""
}
