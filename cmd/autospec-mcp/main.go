// Package main provides the autospec-mcp server for agent integration.
//
// autospec-mcp exposes the AutoSpec pipeline via the Model Context
// Protocol: schema generation, similarity search over the API catalog,
// input schema derivation and field mapping.
//
// Usage:
//
//	autospec-mcp [flags]
//
// The server communicates via JSON-RPC 2.0 over stdio (stdin/stdout).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/autospec/internal/catalog"
	"github.com/asteroid-belt/autospec/internal/config"
	"github.com/asteroid-belt/autospec/internal/embedding"
	"github.com/asteroid-belt/autospec/internal/generate"
	"github.com/asteroid-belt/autospec/internal/ingest"
	"github.com/asteroid-belt/autospec/internal/llm"
	"github.com/asteroid-belt/autospec/internal/mcp"
	"github.com/asteroid-belt/autospec/internal/retrieval"
	"github.com/asteroid-belt/autospec/internal/vector"
	"github.com/asteroid-belt/autospec/pkg/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("autospec-mcp %s\n", version.Long())
		os.Exit(0)
	}
	if len(os.Args) > 1 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		printHelp()
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Embedding.APIKey == "" {
		fmt.Fprintln(os.Stderr, "OPENAI_API_KEY not set (required for embeddings)")
		os.Exit(1)
	}

	paths := config.GetPaths(cfg)

	cat, err := catalog.New(catalog.DefaultConfig(paths.Catalog))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open catalog: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = cat.Close()
	}()

	embedder := embedding.NewOpenAI(cfg.Embedding.APIKey, cfg.Embedding.Model)
	store, err := vector.New(vector.Config{DataDir: paths.Vectors}, embedder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open vector store: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close()
	}()

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure LLM provider: %v\n", err)
		os.Exit(1)
	}

	server := mcp.NewServer(mcp.Deps{
		Catalog:    cat,
		Ingest:     ingest.NewService(store, cat),
		SchemaGen:  generate.NewSchemaGenerator(provider, cfg.LLM.DefaultModel),
		MappingGen: generate.NewMappingGenerator(provider, cfg.LLM.DefaultModel),
		Retriever:  retrieval.NewService(store, cat, cfg.Retrieval),
	})
	if err := server.Serve(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `autospec-mcp - MCP server for the AutoSpec pipeline

USAGE:
    autospec-mcp [FLAGS]

FLAGS:
    -h, --help       Show this help message
    -v, --version    Show version information

TOOLS:
    autospec_generate_output_schema    Requirement -> output JSON Schema
    autospec_search_similar_api        Schema -> closest catalogued APIs
    autospec_generate_input_schema     Catalogued API -> input JSON Schema
    autospec_generate_mapping          Custom schema -> field mapping
    autospec_ingest_spec               Add an API spec to the catalog
    autospec_list_apis                 List catalogued APIs

ENVIRONMENT:
    OPENAI_API_KEY       Required. Embeddings and default generation.
    ANTHROPIC_API_KEY    Optional. Anthropic generation models.
    AUTOSPEC_HOME        Data directory (default: ~/.autospec)

The server speaks JSON-RPC 2.0 over stdio. Configure it in your agent's
MCP settings, e.g. ~/.claude.json:

    {
      "mcpServers": {
        "autospec": {
          "command": "autospec-mcp"
        }
      }
    }
`
	fmt.Print(help)
}
