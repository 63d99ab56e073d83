package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		LLM: LLMConfig{
			DefaultProvider: "", // Auto-detect based on available keys
			DefaultModel:    "", // Provider-specific defaults
		},

		Embedding: VectorConfig{
			Model:   "text-embedding-3-large",
			DataDir: "", // Will use ~/.autospec/vectors
		},

		Retrieval: RetrievalConfig{
			FilterByType: true,
		},
	}
}

// EmbeddingModels defines available embedding models and their dimensions.
var EmbeddingModels = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}
