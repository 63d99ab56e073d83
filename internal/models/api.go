package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// EmbeddingType tags a stored embedding with the part of the API
// record it was computed from.
type EmbeddingType string

const (
	EmbeddingDescription  EmbeddingType = "description"
	EmbeddingInputSchema  EmbeddingType = "input_schema"
	EmbeddingOutputSchema EmbeddingType = "output_schema"
)

// Metadata keys attached to every vector store document.
const (
	MetaAPIName = "api_name"
	MetaType    = "type"
)

// APIRecord is a catalogued API: name, human description and its
// input/output JSON Schemas. Records are immutable after ingestion;
// re-ingesting the same name overwrites.
type APIRecord struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	InputSchema  Schema `json:"input_schema"`
	OutputSchema Schema `json:"output_schema"`
}

// Vector store document ids derived from the record name.
func (r *APIRecord) DescriptionID() string  { return r.Name + "_desc" }
func (r *APIRecord) InputSchemaID() string  { return r.Name + "_input" }
func (r *APIRecord) OutputSchemaID() string { return r.Name + "_output" }

// Validate checks the invariants required before ingestion.
func (r *APIRecord) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("api record missing required key %q", "name")
	}
	return nil
}

// ParseAPIRecord decodes an ingestion file. Only "name" is required;
// missing description/schemas default to empty, matching the folder
// ingestion contract.
func ParseAPIRecord(data []byte) (*APIRecord, error) {
	var rec APIRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse api record: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if rec.InputSchema == nil {
		rec.InputSchema = Schema{}
	}
	if rec.OutputSchema == nil {
		rec.OutputSchema = Schema{}
	}
	return &rec, nil
}

// MatchResult is the nearest catalogued API to a query embedding plus
// its distance score. Ephemeral; recomputed per query.
type MatchResult struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	InputSchema  Schema  `json:"input_schema"`
	OutputSchema Schema  `json:"output_schema"`
	Distance     float32 `json:"distance"`
}

// Record returns the match as an APIRecord for downstream generation.
func (m *MatchResult) Record() APIRecord {
	return APIRecord{
		Name:         m.Name,
		Description:  m.Description,
		InputSchema:  m.InputSchema,
		OutputSchema: m.OutputSchema,
	}
}

// CatalogEntry is the SQLite row backing an ingested API record.
// Schemas are stored as JSON text; the vector store carries only
// {api_name, type} metadata and match results are rebuilt from here.
type CatalogEntry struct {
	Name         string    `gorm:"primaryKey;size:255" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	InputSchema  string    `gorm:"type:text" json:"input_schema"`
	OutputSchema string    `gorm:"type:text" json:"output_schema"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (CatalogEntry) TableName() string {
	return "api_specs"
}

// Record decodes the stored JSON columns back into an APIRecord.
func (e *CatalogEntry) Record() (*APIRecord, error) {
	rec := &APIRecord{
		Name:        e.Name,
		Description: e.Description,
	}
	if e.InputSchema != "" {
		if err := json.Unmarshal([]byte(e.InputSchema), &rec.InputSchema); err != nil {
			return nil, fmt.Errorf("decode input schema for %s: %w", e.Name, err)
		}
	}
	if e.OutputSchema != "" {
		if err := json.Unmarshal([]byte(e.OutputSchema), &rec.OutputSchema); err != nil {
			return nil, fmt.Errorf("decode output schema for %s: %w", e.Name, err)
		}
	}
	return rec, nil
}

// NewCatalogEntry encodes an APIRecord into its storable row.
func NewCatalogEntry(rec *APIRecord) *CatalogEntry {
	return &CatalogEntry{
		Name:         rec.Name,
		Description:  rec.Description,
		InputSchema:  rec.InputSchema.JSON(),
		OutputSchema: rec.OutputSchema.JSON(),
	}
}
