package config

import (
	"os"
	"path/filepath"
)

// Paths contains commonly used file paths.
type Paths struct {
	Catalog string // SQLite catalog of ingested API records
	Vectors string // chromem-go persistence directory
	Logs    string // Log directory
	APIs    string // Default folder for bulk API spec ingestion
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	vectors := cfg.Embedding.DataDir
	if vectors == "" {
		vectors = filepath.Join(cfg.BaseDir, "vectors")
	}
	return Paths{
		Catalog: filepath.Join(cfg.BaseDir, "catalog.db"),
		Vectors: vectors,
		Logs:    filepath.Join(cfg.BaseDir, "logs"),
		APIs:    filepath.Join(cfg.BaseDir, "apis"),
	}
}

// DefaultBaseDir returns the default base directory (~/.autospec).
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".autospec"
	}
	return filepath.Join(home, ".autospec")
}
