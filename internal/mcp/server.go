// Package mcp provides the Model Context Protocol server for AutoSpec.
//
// The server exposes the schema generation pipeline and the API catalog
// to MCP-compatible clients over stdio. It reuses the same generate,
// ingest and retrieval services as the TUI and CLI.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/asteroid-belt/autospec/internal/catalog"
	"github.com/asteroid-belt/autospec/internal/ingest"
	"github.com/asteroid-belt/autospec/internal/pipeline"
	"github.com/asteroid-belt/autospec/pkg/version"
)

// Deps carries the wired services the MCP server exposes.
type Deps struct {
	Catalog    *catalog.Catalog
	Ingest     *ingest.Service
	SchemaGen  pipeline.SchemaGenerator
	MappingGen pipeline.MappingGenerator
	Retriever  pipeline.Retriever
}

// Server wraps the MCP server with the AutoSpec toolset.
type Server struct {
	catalog    *catalog.Catalog
	ingest     *ingest.Service
	schemaGen  pipeline.SchemaGenerator
	mappingGen pipeline.MappingGenerator
	retriever  pipeline.Retriever
	server     *server.MCPServer
}

// NewServer creates a new MCP server instance over wired services.
func NewServer(deps Deps) *Server {
	s := &Server{
		catalog:    deps.Catalog,
		ingest:     deps.Ingest,
		schemaGen:  deps.SchemaGen,
		mappingGen: deps.MappingGen,
		retriever:  deps.Retriever,
	}

	s.server = server.NewMCPServer(
		"autospec",
		version.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// Serve starts the MCP server over stdio.
func (s *Server) Serve(_ context.Context) error {
	return server.ServeStdio(s.server)
}

// registerTools adds all AutoSpec tools to the MCP server.
func (s *Server) registerTools() {
	s.server.AddTool(generateOutputSchemaTool(), s.handleGenerateOutputSchema)
	s.server.AddTool(searchSimilarAPITool(), s.handleSearchSimilarAPI)
	s.server.AddTool(generateInputSchemaTool(), s.handleGenerateInputSchema)
	s.server.AddTool(generateMappingTool(), s.handleGenerateMapping)
	s.server.AddTool(ingestSpecTool(), s.handleIngestSpec)
	s.server.AddTool(listAPIsTool(), s.handleListAPIs)
}

// registerResources adds the catalog resource templates.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"autospec://api/{name}",
			"API record",
			mcp.WithTemplateDescription("Full catalogued API record: description, input schema and output schema"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleAPIResource,
	)
}
