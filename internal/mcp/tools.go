package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions for the AutoSpec MCP server.

// generateOutputSchemaTool returns the autospec_generate_output_schema tool definition.
func generateOutputSchemaTool() mcp.Tool {
	return mcp.NewTool("autospec_generate_output_schema",
		mcp.WithDescription("Generate a JSON Schema describing the response payload of an API from a free-text requirement."),
		mcp.WithString("requirement",
			mcp.Required(),
			mcp.Description("Free-text description of the API the user needs"),
		),
	)
}

// searchSimilarAPITool returns the autospec_search_similar_api tool definition.
func searchSimilarAPITool() mcp.Tool {
	return mcp.NewTool("autospec_search_similar_api",
		mcp.WithDescription("Find the catalogued APIs most similar to a JSON Schema via embedding search. Lower distance means a closer match."),
		mcp.WithString("output_schema",
			mcp.Required(),
			mcp.Description("The JSON Schema to search with, as a JSON string"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of matches to return (default: 1, max: 10)"),
		),
	)
}

// generateInputSchemaTool returns the autospec_generate_input_schema tool definition.
func generateInputSchemaTool() mcp.Tool {
	return mcp.NewTool("autospec_generate_input_schema",
		mcp.WithDescription("Generate a plausible request JSON Schema for a catalogued API from its description and output schema."),
		mcp.WithString("api",
			mcp.Required(),
			mcp.Description("Name of the catalogued API"),
		),
	)
}

// generateMappingTool returns the autospec_generate_mapping tool definition.
func generateMappingTool() mcp.Tool {
	return mcp.NewTool("autospec_generate_mapping",
		mcp.WithDescription("Propose field-level mappings from a custom output schema to a catalogued API's output schema, including JSONPath-style paths and transformation notes."),
		mcp.WithString("custom_schema",
			mcp.Required(),
			mcp.Description("The generated output schema, as a JSON string"),
		),
		mcp.WithString("api",
			mcp.Required(),
			mcp.Description("Name of the catalogued API to map against"),
		),
	)
}

// ingestSpecTool returns the autospec_ingest_spec tool definition.
func ingestSpecTool() mcp.Tool {
	return mcp.NewTool("autospec_ingest_spec",
		mcp.WithDescription("Ingest an API spec into the catalog. Stores three embeddings (description, input schema, output schema) and the full record. Re-ingesting a name overwrites it."),
		mcp.WithString("spec",
			mcp.Required(),
			mcp.Description("The API spec as a JSON string with name, description, input_schema and output_schema fields"),
		),
	)
}

// listAPIsTool returns the autospec_list_apis tool definition.
func listAPIsTool() mcp.Tool {
	return mcp.NewTool("autospec_list_apis",
		mcp.WithDescription("List all catalogued APIs with their descriptions."),
	)
}
