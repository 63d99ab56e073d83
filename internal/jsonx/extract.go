// Package jsonx extracts JSON objects from free-form model output.
package jsonx

import (
	"encoding/json"
	"strings"

	"github.com/asteroid-belt/autospec/internal/models"
)

// ExtractErrorMessage is the sentinel message set when no JSON object
// could be recovered from a model response.
const ExtractErrorMessage = "invalid JSON returned by model"

// Extract recovers the first syntactically valid top-level JSON object
// embedded in raw and returns it as a Schema. It tolerates prose
// before and after the object. When nothing parses it returns the
// {error, raw} sentinel schema instead of an error, so callers always
// have something to render.
func Extract(raw string) models.Schema {
	if obj, ok := firstObject(raw); ok {
		return obj
	}
	if obj, ok := braceSlice(raw); ok {
		return obj
	}
	return models.ErrorSchema(ExtractErrorMessage, raw)
}

// ExtractInto decodes the extracted object into v. Returns false when
// no object could be recovered; v is left untouched in that case.
func ExtractInto(raw string, v any) bool {
	if span, ok := firstObjectSpan(raw); ok {
		if err := json.Unmarshal([]byte(span), v); err == nil {
			return true
		}
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), v); err == nil {
			return true
		}
	}
	return false
}

// firstObject scans forward from each "{" and asks a json.Decoder for
// one complete value. Unlike plain brace matching this is immune to
// unbalanced braces inside string values.
func firstObject(raw string) (models.Schema, bool) {
	span, ok := firstObjectSpan(raw)
	if !ok {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return nil, false
	}
	return models.Schema(obj), true
}

// firstObjectSpan returns the raw text of the first valid top-level
// object in raw.
func firstObjectSpan(raw string) (string, bool) {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(raw[i:]))
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			continue
		}
		return string(v), true
	}
	return "", false
}

// braceSlice is the original first-"{" to last-"}" fallback. It is
// lossy for brace-bearing string values but kept as a second chance
// for responses the tokenizer rejects.
func braceSlice(raw string) (models.Schema, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return nil, false
	}
	return models.Schema(obj), true
}
