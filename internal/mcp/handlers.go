package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asteroid-belt/autospec/internal/models"
)

// Match limits for the search tool.
const (
	defaultMatchLimit = 1
	maxMatchLimit     = 10
)

// parseLimit extracts and validates the limit parameter from MCP tool
// arguments. Returns defaultVal if not present, caps at maxVal.
func parseLimit(arguments map[string]interface{}, defaultVal, maxVal int) int {
	if l, ok := arguments["limit"].(float64); ok && l > 0 {
		limit := int(l)
		if limit > maxVal {
			return maxVal
		}
		return limit
	}
	return defaultVal
}

// stringArg extracts a required non-empty string argument.
func stringArg(arguments map[string]interface{}, name string) (string, bool) {
	v, ok := arguments[name].(string)
	return v, ok && v != ""
}

// SchemaResult wraps a generated schema in MCP tool responses. Invalid
// model output is reported as data, not as a tool error: the schema
// carries the sentinel and Raw holds the unparsed response.
type SchemaResult struct {
	Schema  models.Schema `json:"schema"`
	Invalid bool          `json:"invalid,omitempty"`
	Raw     string        `json:"raw,omitempty"`
}

// MatchResponse represents one search hit in MCP tool responses.
type MatchResponse struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	InputSchema  models.Schema `json:"input_schema"`
	OutputSchema models.Schema `json:"output_schema"`
	Distance     float32       `json:"distance"`
}

// IngestResult represents the result of ingesting a spec.
type IngestResult struct {
	Success      bool     `json:"success"`
	Name         string   `json:"name"`
	EmbeddingIDs []string `json:"embedding_ids"`
}

// APIInfo is a catalog listing entry.
type APIInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func schemaResult(schema models.Schema) SchemaResult {
	res := SchemaResult{Schema: schema}
	if schema.HasError() {
		res.Invalid = true
		res.Raw = schema.Raw()
	}
	return res
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleGenerateOutputSchema handles the autospec_generate_output_schema tool.
func (s *Server) handleGenerateOutputSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requirement, ok := stringArg(req.Params.Arguments, "requirement")
	if !ok {
		return mcp.NewToolResultError("requirement parameter is required"), nil
	}

	schema, err := s.schemaGen.GenerateOutputSchema(ctx, requirement)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	return jsonResult(schemaResult(schema))
}

// handleSearchSimilarAPI handles the autospec_search_similar_api tool.
func (s *Server) handleSearchSimilarAPI(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := stringArg(req.Params.Arguments, "output_schema")
	if !ok {
		return mcp.NewToolResultError("output_schema parameter is required"), nil
	}

	var schema models.Schema
	if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("output_schema is not valid JSON: %v", err)), nil
	}

	limit := parseLimit(req.Params.Arguments, defaultMatchLimit, maxMatchLimit)

	matches, err := s.retriever.RetrieveSimilarAPI(ctx, schema, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	results := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		results = append(results, MatchResponse{
			Name:         m.Name,
			Description:  m.Description,
			InputSchema:  m.InputSchema,
			OutputSchema: m.OutputSchema,
			Distance:     m.Distance,
		})
	}

	return jsonResult(results)
}

// handleGenerateInputSchema handles the autospec_generate_input_schema tool.
func (s *Server) handleGenerateInputSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, ok := stringArg(req.Params.Arguments, "api")
	if !ok {
		return mcp.NewToolResultError("api parameter is required"), nil
	}

	rec, err := s.catalog.Get(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read catalog: %v", err)), nil
	}
	if rec == nil {
		return mcp.NewToolResultError(fmt.Sprintf("api not found: %s", name)), nil
	}

	schema, err := s.schemaGen.GenerateInputSchema(ctx, *rec)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	return jsonResult(schemaResult(schema))
}

// handleGenerateMapping handles the autospec_generate_mapping tool.
func (s *Server) handleGenerateMapping(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := stringArg(req.Params.Arguments, "custom_schema")
	if !ok {
		return mcp.NewToolResultError("custom_schema parameter is required"), nil
	}
	name, ok := stringArg(req.Params.Arguments, "api")
	if !ok {
		return mcp.NewToolResultError("api parameter is required"), nil
	}

	var customSchema models.Schema
	if err := json.Unmarshal([]byte(raw), &customSchema); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("custom_schema is not valid JSON: %v", err)), nil
	}

	rec, err := s.catalog.Get(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read catalog: %v", err)), nil
	}
	if rec == nil {
		return mcp.NewToolResultError(fmt.Sprintf("api not found: %s", name)), nil
	}

	mapping, err := s.mappingGen.GenerateMapping(ctx, customSchema, rec.OutputSchema)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	return jsonResult(mapping)
}

// handleIngestSpec handles the autospec_ingest_spec tool.
func (s *Server) handleIngestSpec(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := stringArg(req.Params.Arguments, "spec")
	if !ok {
		return mcp.NewToolResultError("spec parameter is required"), nil
	}

	rec, err := models.ParseAPIRecord([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid spec: %v", err)), nil
	}

	if err := s.ingest.IngestSpec(ctx, rec); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	return jsonResult(IngestResult{
		Success: true,
		Name:    rec.Name,
		EmbeddingIDs: []string{
			rec.DescriptionID(),
			rec.InputSchemaID(),
			rec.OutputSchemaID(),
		},
	})
}

// handleListAPIs handles the autospec_list_apis tool.
func (s *Server) handleListAPIs(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.catalog.ListNames()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read catalog: %v", err)), nil
	}

	infos := make([]APIInfo, 0, len(names))
	for _, name := range names {
		rec, err := s.catalog.Get(name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read catalog: %v", err)), nil
		}
		if rec == nil {
			continue
		}
		infos = append(infos, APIInfo{Name: rec.Name, Description: rec.Description})
	}

	return jsonResult(infos)
}
