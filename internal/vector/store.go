// Package vector abstracts embedding storage and similarity search.
package vector

import (
	"context"

	"github.com/asteroid-belt/autospec/internal/embedding"
)

// Document is one embedded text with its metadata tags.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// Hit is a similarity search result. Similarity is cosine similarity
// in [0, 1]; Distance converts to the distance score surfaced to users.
type Hit struct {
	ID         string
	Content    string
	Metadata   map[string]string
	Similarity float32
}

// Distance returns the cosine distance for this hit.
func (h Hit) Distance() float32 {
	return 1 - h.Similarity
}

// Store persists embeddings with metadata and supports metadata-filtered
// nearest-neighbor queries. Adding a document under an existing ID
// overwrites it; there is no merge.
type Store interface {
	// Add embeds and stores one document.
	Add(ctx context.Context, doc Document) error

	// Query returns up to k nearest documents to the query text,
	// optionally restricted to documents whose metadata matches where.
	Query(ctx context.Context, text string, k int, where map[string]string) ([]Hit, error)

	// Get returns a stored document by ID.
	Get(ctx context.Context, id string) (*Document, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Reset deletes the entire collection.
	Reset(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// Config holds vector store configuration.
type Config struct {
	// DataDir is where chromem-go persists vectors.
	DataDir string
}

// New creates a Store backed by chromem-go, delegating embedding to
// the given provider.
func New(cfg Config, provider embedding.Provider) (Store, error) {
	return NewChromemStore(cfg, providerEmbeddingFunc(provider))
}
