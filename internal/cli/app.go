package cli

import (
	"fmt"

	"github.com/asteroid-belt/autospec/internal/catalog"
	"github.com/asteroid-belt/autospec/internal/config"
	"github.com/asteroid-belt/autospec/internal/embedding"
	"github.com/asteroid-belt/autospec/internal/generate"
	"github.com/asteroid-belt/autospec/internal/ingest"
	"github.com/asteroid-belt/autospec/internal/llm"
	"github.com/asteroid-belt/autospec/internal/pipeline"
	"github.com/asteroid-belt/autospec/internal/retrieval"
	"github.com/asteroid-belt/autospec/internal/vector"
)

// app bundles the wired services behind each command. Everything hangs
// off the Config object built at startup; no package-level clients.
type app struct {
	cfg       *config.Config
	catalog   *catalog.Catalog
	store     vector.Store
	ingest    *ingest.Service
	retrieval *retrieval.Service
}

// openApp loads config and wires the storage-side services. The vector
// store needs the embedding key; generation providers are wired
// separately by newPipeline since not every command generates.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.Embedding.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set (required for embeddings)")
	}

	paths := config.GetPaths(cfg)

	cat, err := catalog.New(catalog.DefaultConfig(paths.Catalog))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	embedder := embedding.NewOpenAI(cfg.Embedding.APIKey, cfg.Embedding.Model)
	store, err := vector.New(vector.Config{DataDir: paths.Vectors}, embedder)
	if err != nil {
		_ = cat.Close()
		return nil, fmt.Errorf("open vector store: %w", err)
	}

	return &app{
		cfg:       cfg,
		catalog:   cat,
		store:     store,
		ingest:    ingest.NewService(store, cat),
		retrieval: retrieval.NewService(store, cat, cfg.Retrieval),
	}, nil
}

// newPipeline wires the generation side on top of an open app.
func (a *app) newPipeline() (*pipeline.Pipeline, error) {
	provider, err := llm.NewProvider(a.cfg.LLM)
	if err != nil {
		return nil, err
	}

	schemaGen := generate.NewSchemaGenerator(provider, a.cfg.LLM.DefaultModel)
	mappingGen := generate.NewMappingGenerator(provider, a.cfg.LLM.DefaultModel)

	return pipeline.New(schemaGen, mappingGen, a.retrieval), nil
}

// Close releases the app's resources.
func (a *app) Close() {
	_ = a.store.Close()
	_ = a.catalog.Close()
}
