// Package config handles application configuration management.
package config

import "os"

// Config holds all application configuration. It is constructed once
// at startup and passed by reference to every component; there are no
// process-wide client singletons.
type Config struct {
	// Base directory for all AutoSpec data (~/.autospec)
	BaseDir string

	// LLM settings for schema and mapping generation
	LLM LLMConfig

	// Embedding/vector store settings
	Embedding VectorConfig

	// Retrieval behavior
	Retrieval RetrievalConfig
}

// LLMConfig holds LLM provider configuration for generation calls.
type LLMConfig struct {
	// API keys for supported providers
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// Default provider: "openai" or "anthropic" (auto-detected if empty)
	DefaultProvider string
	// Default model (provider-specific default if empty)
	DefaultModel string
}

// VectorConfig holds embedding and vector store configuration.
type VectorConfig struct {
	// OpenAI API key for embeddings (OPENAI_API_KEY env var)
	APIKey string
	// Model for embeddings (default: text-embedding-3-large)
	Model string
	// DataDir for chromem-go persistence (default: ~/.autospec/vectors)
	DataDir string
}

// RetrievalConfig holds similarity search behavior.
type RetrievalConfig struct {
	// FilterByType restricts nearest-neighbor queries to documents
	// tagged type=output_schema. On by default; set
	// AUTOSPEC_SEARCH_ALL_TYPES=1 to query across all embedding types.
	FilterByType bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if dir := os.Getenv("AUTOSPEC_HOME"); dir != "" {
		cfg.BaseDir = dir
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.LLM.OpenAIAPIKey = apiKey
		cfg.Embedding.APIKey = apiKey
	}

	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		cfg.LLM.AnthropicAPIKey = apiKey
	}

	if model := os.Getenv("AUTOSPEC_MODEL"); model != "" {
		cfg.LLM.DefaultModel = model
	}

	if model := os.Getenv("AUTOSPEC_EMBEDDING_MODEL"); model != "" {
		cfg.Embedding.Model = model
	}

	if dir := os.Getenv("AUTOSPEC_DATA_DIR"); dir != "" {
		cfg.Embedding.DataDir = dir
	}

	if os.Getenv("AUTOSPEC_SEARCH_ALL_TYPES") == "1" {
		cfg.Retrieval.FilterByType = false
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	dirs := []string{
		cfg.BaseDir,
		GetPaths(cfg).Vectors,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
