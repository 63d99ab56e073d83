package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/autospec/internal/models"
	"github.com/asteroid-belt/autospec/internal/pipeline"
)

type fakeSchemaGen struct {
	output models.Schema
	input  models.Schema
	err    error
}

func (f *fakeSchemaGen) GenerateOutputSchema(_ context.Context, _ string) (models.Schema, error) {
	return f.output, f.err
}

func (f *fakeSchemaGen) GenerateInputSchema(_ context.Context, _ models.APIRecord) (models.Schema, error) {
	return f.input, f.err
}

type fakeMappingGen struct {
	mapping *models.Mapping
	err     error
}

func (f *fakeMappingGen) GenerateMapping(_ context.Context, _, _ models.Schema) (*models.Mapping, error) {
	return f.mapping, f.err
}

type fakeRetriever struct {
	results []models.MatchResult
	err     error
}

func (f *fakeRetriever) RetrieveSimilarAPI(_ context.Context, _ models.Schema, _ int) ([]models.MatchResult, error) {
	return f.results, f.err
}

func newTestPipeline(t *testing.T) (*pipeline.Pipeline, *fakeSchemaGen, *fakeRetriever) {
	t.Helper()
	schemaGen := &fakeSchemaGen{
		output: models.Schema{"type": "object", "title": "FlightStatus"},
		input:  models.Schema{"type": "object", "title": "FlightStatusInput"},
	}
	retriever := &fakeRetriever{
		results: []models.MatchResult{{
			Name:         "flights",
			Description:  "Flight status API",
			OutputSchema: models.Schema{"type": "object"},
			Distance:     0.12,
		}},
	}
	mappingGen := &fakeMappingGen{mapping: &models.Mapping{}}
	return pipeline.New(schemaGen, mappingGen, retriever), schemaGen, retriever
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func keyPress(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestWizardInitialView(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	m := sized(t, NewModel(p))

	view := m.View()
	assert.Contains(t, view, "AutoSpec")
	assert.Contains(t, view, "1 Output schema")
	assert.Contains(t, view, "4 Field mapping")
	assert.True(t, m.editing, "requirement editor should start focused")
}

func TestWizardEmptyRequirementDoesNotRun(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	m := sized(t, NewModel(p))

	m, cmd := keyPress(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.busy)
	assert.Equal(t, "Type a requirement first.", m.status)
}

func TestWizardGeneratesOutputSchema(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	m := sized(t, NewModel(p))
	m.textarea.SetValue("flight status by PNR")

	m, cmd := keyPress(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	m = deliverStep(t, m, cmd)
	require.NotNil(t, p.OutputSchema)
	assert.False(t, m.busy)
	assert.False(t, m.editing)
	assert.Contains(t, m.View(), "FlightStatus")
}

func TestWizardStepGating(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	m := sized(t, NewModel(p))
	m.editing = false
	m.textarea.Blur()

	// No schema yet, tab must not advance.
	m, _ = keyPress(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, stepOutputSchema, m.step)

	assert.False(t, m.stepUnlocked(stepMatch))
	assert.False(t, m.stepUnlocked(stepInputSchema))
	assert.False(t, m.stepUnlocked(stepMapping))
}

func TestWizardFullFlow(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	m := sized(t, NewModel(p))
	m.textarea.SetValue("flight status by PNR")

	m, cmd := keyPress(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliverStep(t, m, cmd)

	// Step 2: search for the match.
	m, _ = keyPress(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, stepMatch, m.step)
	m, cmd = keyPress(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliverStep(t, m, cmd)
	require.NotNil(t, p.Match)
	assert.Contains(t, m.View(), "flights")

	// Step 3: input schema for the match.
	m, _ = keyPress(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd = keyPress(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliverStep(t, m, cmd)
	require.NotNil(t, p.InputSchema)

	// Step 4: field mapping.
	m, _ = keyPress(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd = keyPress(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliverStep(t, m, cmd)
	require.NotNil(t, p.Mapping)
	assert.Equal(t, stepMapping, m.step)
}

func TestWizardNoMatchShowsHint(t *testing.T) {
	p, _, retriever := newTestPipeline(t)
	retriever.results = nil
	m := sized(t, NewModel(p))
	m.textarea.SetValue("flight status by PNR")

	m, cmd := keyPress(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliverStep(t, m, cmd)

	m, _ = keyPress(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd = keyPress(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliverStep(t, m, cmd)

	assert.Nil(t, p.Match)
	assert.Contains(t, m.status, "Ingest")
}

func TestWizardProviderErrorShownInFooter(t *testing.T) {
	p, schemaGen, _ := newTestPipeline(t)
	schemaGen.err = errors.New("api unreachable")
	m := sized(t, NewModel(p))
	m.textarea.SetValue("flight status by PNR")

	m, cmd := keyPress(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliverStep(t, m, cmd)

	assert.False(t, m.busy)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "api unreachable")
}

func TestWizardReset(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	m := sized(t, NewModel(p))
	m.textarea.SetValue("flight status by PNR")

	m, cmd := keyPress(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliverStep(t, m, cmd)
	oldSession := p.SessionID

	m, _ = keyPress(t, m, runeKey('r'))
	assert.Nil(t, p.OutputSchema)
	assert.NotEqual(t, oldSession, p.SessionID)
	assert.Equal(t, stepOutputSchema, m.step)
	assert.True(t, m.editing)
}

func TestWizardCommitsResultsInUpdate(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	m := sized(t, NewModel(p))
	m.textarea.SetValue("flight status by PNR")

	m, cmd := keyPress(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	done := extractStepDone(t, cmd)

	// The command carries the result; the pipeline is only written once
	// Update handles the message, never from the command goroutine.
	require.NotNil(t, done.schema)
	assert.Nil(t, p.OutputSchema)
	assert.Empty(t, p.Requirement)

	updated, _ := m.Update(done)
	m = updated.(Model)
	require.NotNil(t, p.OutputSchema)
	assert.Equal(t, "flight status by PNR", p.Requirement)

	// Same for the match stage.
	m, _ = keyPress(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd = keyPress(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	done = extractStepDone(t, cmd)
	require.NotNil(t, done.match)
	assert.Nil(t, p.Match)

	updated, _ = m.Update(done)
	_ = updated.(Model)
	require.NotNil(t, p.Match)
}

func TestWizardKeysIgnoredWhileBusy(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	m := sized(t, NewModel(p))
	m.textarea.SetValue("flight status by PNR")

	m, _ = keyPress(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.busy)

	m, cmd := keyPress(t, m, runeKey('r'))
	assert.Nil(t, cmd)
	assert.True(t, m.busy)
}

// extractStepDone runs the stage command synchronously and returns its
// completion message, skipping spinner ticks.
func extractStepDone(t *testing.T, cmd tea.Cmd) stepDoneMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if done, ok := c().(stepDoneMsg); ok {
				return done
			}
		}
		t.Fatal("batch contained no step completion message")
	}
	done, ok := msg.(stepDoneMsg)
	require.True(t, ok, "expected step completion message, got %T", msg)
	return done
}

// deliverStep runs the stage command and feeds its completion message
// back into the model.
func deliverStep(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	updated, _ := m.Update(extractStepDone(t, cmd))
	return updated.(Model)
}
