// Package retrieval finds the catalogued API most similar to a schema.
package retrieval

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asteroid-belt/autospec/internal/catalog"
	"github.com/asteroid-belt/autospec/internal/config"
	"github.com/asteroid-belt/autospec/internal/models"
	"github.com/asteroid-belt/autospec/internal/vector"
)

// Service performs similarity search over ingested API specs.
type Service struct {
	store   vector.Store
	catalog *catalog.Catalog
	cfg     config.RetrievalConfig
}

// NewService creates a retrieval service.
func NewService(store vector.Store, cat *catalog.Catalog, cfg config.RetrievalConfig) *Service {
	return &Service{
		store:   store,
		catalog: cat,
		cfg:     cfg,
	}
}

// RetrieveSimilarAPI embeds the serialized schema, queries the vector
// store for the nearest records and rebuilds each full API record from
// the catalog. Returns nil when nothing is stored. No score threshold
// applies: an arbitrarily distant match is still the match. At most k
// results come back, fewer when fewer exist.
func (s *Service) RetrieveSimilarAPI(ctx context.Context, schema models.Schema, k int) ([]models.MatchResult, error) {
	if k <= 0 {
		k = 1
	}

	var where map[string]string
	if s.cfg.FilterByType {
		where = map[string]string{models.MetaType: string(models.EmbeddingOutputSchema)}
	}

	hits, err := s.store.Query(ctx, schema.JSON(), k, where)
	if err != nil {
		return nil, fmt.Errorf("similarity query: %w", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}

	results := make([]models.MatchResult, 0, len(hits))
	for _, hit := range hits {
		match, err := s.buildMatch(hit)
		if err != nil {
			return nil, err
		}
		results = append(results, *match)
	}

	return results, nil
}

// buildMatch resolves a vector hit into a full MatchResult using the
// catalog row named in the hit's metadata. When the catalog row is
// gone the hit's own document text is the only thing recoverable.
func (s *Service) buildMatch(hit vector.Hit) (*models.MatchResult, error) {
	name := hit.Metadata[models.MetaAPIName]

	rec, err := s.catalog.Get(name)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return partialMatch(name, hit), nil
	}

	return &models.MatchResult{
		Name:         rec.Name,
		Description:  rec.Description,
		InputSchema:  rec.InputSchema,
		OutputSchema: rec.OutputSchema,
		Distance:     hit.Distance(),
	}, nil
}

// partialMatch reconstructs what it can from the matched document alone.
func partialMatch(name string, hit vector.Hit) *models.MatchResult {
	match := &models.MatchResult{
		Name:     name,
		Distance: hit.Distance(),
	}

	switch models.EmbeddingType(hit.Metadata[models.MetaType]) {
	case models.EmbeddingDescription:
		match.Description = hit.Content
	case models.EmbeddingInputSchema:
		_ = json.Unmarshal([]byte(hit.Content), &match.InputSchema)
	case models.EmbeddingOutputSchema:
		_ = json.Unmarshal([]byte(hit.Content), &match.OutputSchema)
	}

	return match
}
