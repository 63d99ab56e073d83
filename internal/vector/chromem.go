package vector

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/philippgille/chromem-go"

	"github.com/asteroid-belt/autospec/internal/embedding"
)

// collectionName is the single chromem collection holding API spec embeddings.
const collectionName = "api_specs"

// ChromemStore implements Store using chromem-go, a local persistent
// vector database with no external service dependency.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
	dataDir    string
}

// providerEmbeddingFunc adapts an embedding.Provider to chromem's
// EmbeddingFunc signature.
func providerEmbeddingFunc(provider embedding.Provider) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return provider.Embed(ctx, text)
	}
}

// NewChromemStore creates a chromem-backed store with an explicit
// embedding function. Tests inject a deterministic local function here.
func NewChromemStore(cfg Config, embedFunc chromem.EmbeddingFunc) (*ChromemStore, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("vector store data directory is required")
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create vector dir: %w", err)
	}

	db, err := chromem.NewPersistentDB(cfg.DataDir, false)
	if err != nil {
		return nil, fmt.Errorf("create chromem db: %w", err)
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, embedFunc)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemStore{
		db:         db,
		collection: collection,
		embedFunc:  embedFunc,
		dataDir:    cfg.DataDir,
	}, nil
}

// Add embeds and stores one document. Re-adding an ID overwrites the
// previous document, which is what gives re-ingestion its overwrite
// semantics.
func (s *ChromemStore) Add(ctx context.Context, doc Document) error {
	cdoc := chromem.Document{
		ID:       doc.ID,
		Content:  doc.Content,
		Metadata: doc.Metadata,
	}

	if err := s.collection.AddDocuments(ctx, []chromem.Document{cdoc}, 1); err != nil {
		return fmt.Errorf("add document %s: %w", doc.ID, err)
	}

	return nil
}

// Query returns up to k nearest documents to the query text.
func (s *ChromemStore) Query(ctx context.Context, text string, k int, where map[string]string) ([]Hit, error) {
	if k <= 0 {
		k = 1
	}

	// chromem errors when asked for more results than (filtered)
	// documents exist. Cap at the collection size, then walk k down
	// until the filtered subset is large enough.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	var results []chromem.Result
	var err error
	for ; k >= 1; k-- {
		results, err = s.collection.Query(ctx, text, k, where, nil)
		if err == nil {
			break
		}
		if !strings.Contains(err.Error(), "nResults") {
			return nil, fmt.Errorf("query: %w", err)
		}
	}
	if err != nil {
		// Filter matched nothing: missing-match, not a failure.
		return nil, nil
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		hits = append(hits, Hit{
			ID:         r.ID,
			Content:    r.Content,
			Metadata:   r.Metadata,
			Similarity: r.Similarity,
		})
	}

	return hits, nil
}

// Get returns a stored document by ID, or nil when absent.
func (s *ChromemStore) Get(ctx context.Context, id string) (*Document, error) {
	doc, err := s.collection.GetByID(ctx, id)
	if err != nil {
		return nil, nil
	}
	return &Document{
		ID:       doc.ID,
		Content:  doc.Content,
		Metadata: doc.Metadata,
	}, nil
}

// Count returns the number of stored documents.
func (s *ChromemStore) Count(_ context.Context) (int, error) {
	return s.collection.Count(), nil
}

// Reset deletes the collection and recreates it empty.
func (s *ChromemStore) Reset(_ context.Context) error {
	if err := s.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	collection, err := s.db.GetOrCreateCollection(collectionName, nil, s.embedFunc)
	if err != nil {
		return fmt.Errorf("recreate collection: %w", err)
	}
	s.collection = collection

	return nil
}

// Close releases resources. chromem-go persists on write, so there is
// nothing to flush.
func (s *ChromemStore) Close() error {
	return nil
}
