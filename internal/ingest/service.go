// Package ingest computes and persists embeddings plus metadata for
// catalogued API records.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"

	"github.com/asteroid-belt/autospec/internal/catalog"
	"github.com/asteroid-belt/autospec/internal/log"
	"github.com/asteroid-belt/autospec/internal/models"
	"github.com/asteroid-belt/autospec/internal/vector"
)

// Embedding requests per second during ingestion. Each ingested record
// costs three embedding calls; bulk folder loads would otherwise burst
// straight into provider rate limits.
const embedRatePerSecond = 5

// Service ingests API specs into the vector store and catalog.
type Service struct {
	store   vector.Store
	catalog *catalog.Catalog
	limiter *rate.Limiter
}

// NewService creates an ingestion service.
func NewService(store vector.Store, cat *catalog.Catalog) *Service {
	return &Service{
		store:   store,
		catalog: cat,
		limiter: rate.NewLimiter(rate.Limit(embedRatePerSecond), embedRatePerSecond),
	}
}

// IngestSpec stores three embeddings for the record (description,
// input schema, output schema) under {name}_desc/_input/_output, each
// tagged with {api_name, type}, and upserts the full record into the
// catalog. Ingesting an existing name overwrites all three documents
// and the catalog row; there is no merge.
func (s *Service) IngestSpec(ctx context.Context, rec *models.APIRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	docs := []vector.Document{
		{
			ID:      rec.DescriptionID(),
			Content: rec.Description,
			Metadata: map[string]string{
				models.MetaAPIName: rec.Name,
				models.MetaType:    string(models.EmbeddingDescription),
			},
		},
		{
			ID:      rec.InputSchemaID(),
			Content: rec.InputSchema.JSON(),
			Metadata: map[string]string{
				models.MetaAPIName: rec.Name,
				models.MetaType:    string(models.EmbeddingInputSchema),
			},
		},
		{
			ID:      rec.OutputSchemaID(),
			Content: rec.OutputSchema.JSON(),
			Metadata: map[string]string{
				models.MetaAPIName: rec.Name,
				models.MetaType:    string(models.EmbeddingOutputSchema),
			},
		},
	}

	for _, doc := range docs {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
		if err := s.store.Add(ctx, doc); err != nil {
			return fmt.Errorf("ingest %s: %w", rec.Name, err)
		}
	}

	if err := s.catalog.Upsert(rec); err != nil {
		return err
	}

	log.Printf("Ingested 3 embeddings for: %s\n", rec.Name)
	return nil
}

// IngestFolder bulk-loads every *.json file in dir, one IngestSpec per
// file. A file missing the required name key fails loudly and aborts
// the whole run; records ingested before the failure stay ingested and
// there is no partial-progress report. Returns the number of records
// ingested.
func (s *Service) IngestFolder(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read api folder: %w", err)
	}

	ingested := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return ingested, fmt.Errorf("read %s: %w", path, err)
		}

		rec, err := models.ParseAPIRecord(data)
		if err != nil {
			return ingested, fmt.Errorf("%s: %w", entry.Name(), err)
		}

		if err := s.IngestSpec(ctx, rec); err != nil {
			return ingested, err
		}
		ingested++
	}

	return ingested, nil
}

// ListIngested returns every vector store id, three per catalogued API.
func (s *Service) ListIngested(_ context.Context) ([]string, error) {
	names, err := s.catalog.ListNames()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(names)*3)
	for _, name := range names {
		rec := models.APIRecord{Name: name}
		ids = append(ids, rec.DescriptionID(), rec.InputSchemaID(), rec.OutputSchemaID())
	}
	return ids, nil
}

// Clear deletes the entire vector collection and the catalog. This is
// the only delete path; individual records cannot be removed.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	return s.catalog.Clear()
}
