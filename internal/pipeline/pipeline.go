// Package pipeline carries the wizard's intermediate results through
// its four stages, gating each stage on its predecessors.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/asteroid-belt/autospec/internal/models"
)

// ErrStageNotReady is returned when a stage is invoked before its
// required predecessor stages have produced output.
var ErrStageNotReady = errors.New("previous pipeline stage has not run")

// SchemaGenerator derives schemas from free text or API records.
type SchemaGenerator interface {
	GenerateOutputSchema(ctx context.Context, requirement string) (models.Schema, error)
	GenerateInputSchema(ctx context.Context, rec models.APIRecord) (models.Schema, error)
}

// MappingGenerator proposes field mappings between two schemas.
type MappingGenerator interface {
	GenerateMapping(ctx context.Context, customSchema, existingSchema models.Schema) (*models.Mapping, error)
}

// Retriever finds the most similar catalogued APIs to a schema.
type Retriever interface {
	RetrieveSimilarAPI(ctx context.Context, schema models.Schema, k int) ([]models.MatchResult, error)
}

// Pipeline holds one wizard session's state: each stage's output is an
// explicit optional field rather than an ambient session bag. State
// lives in memory only and is lost on process restart.
type Pipeline struct {
	SessionID    string
	Requirement  string
	OutputSchema models.Schema
	Match        *models.MatchResult
	InputSchema  models.Schema
	Mapping      *models.Mapping

	schemaGen  SchemaGenerator
	mappingGen MappingGenerator
	retriever  Retriever
}

// New creates an empty pipeline over the given collaborators.
func New(schemaGen SchemaGenerator, mappingGen MappingGenerator, retriever Retriever) *Pipeline {
	return &Pipeline{
		SessionID:  uuid.NewString(),
		schemaGen:  schemaGen,
		mappingGen: mappingGen,
		retriever:  retriever,
	}
}

// Reset clears all stage outputs and starts a new session.
func (p *Pipeline) Reset() {
	p.SessionID = uuid.NewString()
	p.Requirement = ""
	p.OutputSchema = nil
	p.Match = nil
	p.InputSchema = nil
	p.Mapping = nil
}

// Each stage comes as a Compute/Commit pair plus a combined method.
// Compute calls the provider without touching stage fields, so a
// caller driving stages from another goroutine (the TUI) computes
// there and commits from the goroutine that owns the pipeline. The
// combined methods serve synchronous callers like the CLI.

// ComputeOutputSchema derives an output schema from the requirement
// without recording it.
func (p *Pipeline) ComputeOutputSchema(ctx context.Context, requirement string) (models.Schema, error) {
	if requirement == "" {
		return nil, errors.New("requirement text is required")
	}
	return p.schemaGen.GenerateOutputSchema(ctx, requirement)
}

// CommitOutputSchema records stage 1 output and invalidates every
// later stage's output.
func (p *Pipeline) CommitOutputSchema(requirement string, schema models.Schema) {
	p.Requirement = requirement
	p.OutputSchema = schema
	p.Match = nil
	p.InputSchema = nil
	p.Mapping = nil
}

// GenerateOutputSchema runs stage 1 and records the result.
func (p *Pipeline) GenerateOutputSchema(ctx context.Context, requirement string) (models.Schema, error) {
	schema, err := p.ComputeOutputSchema(ctx, requirement)
	if err != nil {
		return nil, err
	}
	p.CommitOutputSchema(requirement, schema)
	return schema, nil
}

// ComputeMatch finds the catalogued API nearest to the generated
// output schema. A nil result with nil error means the store had
// nothing to offer; that is "nothing to show", not a failure.
func (p *Pipeline) ComputeMatch(ctx context.Context) (*models.MatchResult, error) {
	if p.OutputSchema == nil {
		return nil, fmt.Errorf("%w: generate the output schema first", ErrStageNotReady)
	}

	results, err := p.retriever.RetrieveSimilarAPI(ctx, p.OutputSchema, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// CommitMatch records stage 2 output, invalidating the stages built
// on it. A nil match clears them too.
func (p *Pipeline) CommitMatch(match *models.MatchResult) {
	p.Match = match
	p.InputSchema = nil
	p.Mapping = nil
}

// SearchMatch runs stage 2 and records the result.
func (p *Pipeline) SearchMatch(ctx context.Context) (*models.MatchResult, error) {
	match, err := p.ComputeMatch(ctx)
	if err != nil {
		return nil, err
	}
	p.CommitMatch(match)
	return match, nil
}

// ComputeInputSchema derives an input schema for the matched API
// without recording it.
func (p *Pipeline) ComputeInputSchema(ctx context.Context) (models.Schema, error) {
	if p.Match == nil {
		return nil, fmt.Errorf("%w: search for a matching API first", ErrStageNotReady)
	}
	return p.schemaGen.GenerateInputSchema(ctx, p.Match.Record())
}

// CommitInputSchema records stage 3 output.
func (p *Pipeline) CommitInputSchema(schema models.Schema) {
	p.InputSchema = schema
}

// GenerateInputSchema runs stage 3 and records the result.
func (p *Pipeline) GenerateInputSchema(ctx context.Context) (models.Schema, error) {
	schema, err := p.ComputeInputSchema(ctx)
	if err != nil {
		return nil, err
	}
	p.CommitInputSchema(schema)
	return schema, nil
}

// ComputeMapping proposes the field mapping. It requires stages 1 and
// 2 but not 3: the mapping relates the generated output schema to the
// matched API's output schema and never touches the input schema.
func (p *Pipeline) ComputeMapping(ctx context.Context) (*models.Mapping, error) {
	if p.OutputSchema == nil {
		return nil, fmt.Errorf("%w: generate the output schema first", ErrStageNotReady)
	}
	if p.Match == nil {
		return nil, fmt.Errorf("%w: search for a matching API first", ErrStageNotReady)
	}
	return p.mappingGen.GenerateMapping(ctx, p.OutputSchema, p.Match.OutputSchema)
}

// CommitMapping records stage 4 output.
func (p *Pipeline) CommitMapping(mapping *models.Mapping) {
	p.Mapping = mapping
}

// GenerateMapping runs stage 4 and records the result.
func (p *Pipeline) GenerateMapping(ctx context.Context) (*models.Mapping, error) {
	mapping, err := p.ComputeMapping(ctx)
	if err != nil {
		return nil, err
	}
	p.CommitMapping(mapping)
	return mapping, nil
}
