package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asteroid-belt/autospec/internal/models"
	"github.com/asteroid-belt/autospec/internal/pipeline"
)

// Wizard steps, in pipeline order.
const (
	stepOutputSchema = iota
	stepMatch
	stepInputSchema
	stepMapping
	stepCount
)

var stepTitles = [stepCount]string{
	"Output schema",
	"Similar API",
	"Input schema",
	"Field mapping",
}

// stepDoneMsg carries a finished stage's output back to Update. The
// command goroutine only computes; the result is committed to the
// pipeline here, on the program goroutine, so View never races a
// stage write.
type stepDoneMsg struct {
	step        int
	requirement string
	schema      models.Schema
	match       *models.MatchResult
	mapping     *models.Mapping
	err         error
}

// Model is the Bubble Tea model for the four-step wizard.
type Model struct {
	pipeline *pipeline.Pipeline
	keymap   Keymap
	styles   Styles

	step     int
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	busy     bool
	editing  bool
	status   string
	err      error
	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel creates the wizard model over a pipeline.
func NewModel(p *pipeline.Pipeline) Model {
	styles := NewStyles(BlueprintTheme)

	ta := textarea.New()
	ta.Placeholder = "Describe the API you need, e.g. \"flight status, gate and passenger name by PNR\""
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(BlueprintTheme.Accent)

	return Model{
		pipeline: p,
		keymap:   DefaultKeymap(),
		styles:   styles,
		textarea: ta,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		editing:  true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stepDoneMsg:
		return m.handleStepDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.busy {
		return m, nil
	}

	// While the requirement editor is focused, keys go to the textarea
	// except escape (blur) and enter-with-empty (nothing to run yet).
	if m.editing {
		switch msg.Type {
		case tea.KeyEsc:
			m.editing = false
			m.textarea.Blur()
			return m, nil
		case tea.KeyEnter:
			return m.runStep(stepOutputSchema)
		}
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Edit):
		m.step = stepOutputSchema
		m.editing = true
		return m, m.textarea.Focus()

	case key.Matches(msg, m.keymap.Run):
		return m.runStep(m.step)

	case key.Matches(msg, m.keymap.Next):
		if m.stepUnlocked(m.step + 1) {
			m.step++
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Prev):
		if m.step > stepOutputSchema {
			m.step--
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Copy):
		return m.copyCurrent()

	case key.Matches(msg, m.keymap.Reset):
		m.pipeline.Reset()
		m.step = stepOutputSchema
		m.editing = true
		m.textarea.Reset()
		m.err = nil
		m.status = "New session started."
		return m, m.textarea.Focus()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// runStep kicks off the pipeline call behind a step. Gating errors
// surface the same way provider errors do.
func (m Model) runStep(step int) (tea.Model, tea.Cmd) {
	p := m.pipeline

	if step == stepOutputSchema {
		requirement := strings.TrimSpace(m.textarea.Value())
		if requirement == "" {
			m.status = "Type a requirement first."
			return m, nil
		}
		m.busy = true
		m.err = nil
		m.status = "Generating output schema..."
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			schema, err := p.ComputeOutputSchema(context.Background(), requirement)
			return stepDoneMsg{step: stepOutputSchema, requirement: requirement, schema: schema, err: err}
		})
	}

	m.busy = true
	m.err = nil
	switch step {
	case stepMatch:
		m.status = "Searching catalogued APIs..."
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			match, err := p.ComputeMatch(context.Background())
			return stepDoneMsg{step: stepMatch, match: match, err: err}
		})
	case stepInputSchema:
		m.status = "Generating input schema..."
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			schema, err := p.ComputeInputSchema(context.Background())
			return stepDoneMsg{step: stepInputSchema, schema: schema, err: err}
		})
	case stepMapping:
		m.status = "Generating field mapping..."
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			mapping, err := p.ComputeMapping(context.Background())
			return stepDoneMsg{step: stepMapping, mapping: mapping, err: err}
		})
	}

	m.busy = false
	return m, nil
}

func (m Model) handleStepDone(msg stepDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.status = ""

	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}

	switch msg.step {
	case stepOutputSchema:
		m.pipeline.CommitOutputSchema(msg.requirement, msg.schema)
		m.editing = false
		m.textarea.Blur()
	case stepMatch:
		m.pipeline.CommitMatch(msg.match)
		if msg.match == nil {
			m.status = "No catalogued APIs to match against. Ingest some specs first."
			m.refreshViewport()
			return m, nil
		}
	case stepInputSchema:
		m.pipeline.CommitInputSchema(msg.schema)
	case stepMapping:
		m.pipeline.CommitMapping(msg.mapping)
	}

	m.step = msg.step
	m.refreshViewport()
	return m, nil
}

func (m Model) copyCurrent() (tea.Model, tea.Cmd) {
	content := m.stepJSON(m.step)
	if content == "" {
		m.status = "Nothing to copy yet."
		return m, nil
	}
	if err := clipboard.WriteAll(content); err != nil {
		m.err = fmt.Errorf("copy to clipboard: %w", err)
		return m, nil
	}
	m.status = fmt.Sprintf("Copied %s JSON to clipboard.", strings.ToLower(stepTitles[m.step]))
	return m, nil
}

// stepUnlocked reports whether a step can be viewed or run, mirroring
// the pipeline's gating. The mapping step skips over the input schema.
func (m Model) stepUnlocked(step int) bool {
	p := m.pipeline
	switch step {
	case stepOutputSchema:
		return true
	case stepMatch:
		return p.OutputSchema != nil
	case stepInputSchema:
		return p.Match != nil
	case stepMapping:
		return p.OutputSchema != nil && p.Match != nil
	}
	return false
}

// stepJSON returns the pretty JSON produced by a step, or "" if the
// step has not run.
func (m Model) stepJSON(step int) string {
	p := m.pipeline
	switch step {
	case stepOutputSchema:
		if p.OutputSchema != nil {
			return p.OutputSchema.PrettyJSON()
		}
	case stepMatch:
		if p.Match != nil {
			return models.PrettyJSON(p.Match)
		}
	case stepInputSchema:
		if p.InputSchema != nil {
			return p.InputSchema.PrettyJSON()
		}
	case stepMapping:
		if p.Mapping != nil {
			return models.PrettyJSON(p.Mapping)
		}
	}
	return ""
}

func (m *Model) refreshViewport() {
	content := m.stepJSON(m.step)
	if content == "" {
		content = m.styles.Muted.Render("Press enter to run this step.")
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m *Model) resize() {
	bodyWidth := m.width - 4
	if bodyWidth < 20 {
		bodyWidth = 20
	}
	bodyHeight := m.height - 8
	if bodyHeight < 5 {
		bodyHeight = 5
	}
	m.textarea.SetWidth(bodyWidth)
	m.textarea.SetHeight(min(bodyHeight, 6))
	m.viewport.Width = bodyWidth
	m.viewport.Height = bodyHeight
	m.refreshViewport()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	title := m.styles.HeaderTitle.Render("AutoSpec")
	session := m.styles.Session.Render("session " + shortID(m.pipeline.SessionID))
	b.WriteString(m.styles.Header.Render(title + "  " + session))
	b.WriteString("\n")
	b.WriteString(m.stepBar())
	b.WriteString("\n")

	if m.step == stepOutputSchema && (m.editing || m.pipeline.OutputSchema == nil) {
		b.WriteString(m.styles.Box.Render(m.textarea.View()))
	} else {
		b.WriteString(m.styles.Box.Render(m.viewport.View()))
	}
	b.WriteString("\n")

	b.WriteString(m.footer())
	return b.String()
}

// stepBar renders the four steps with done/active/pending markers.
func (m Model) stepBar() string {
	parts := make([]string, 0, stepCount)
	for i, title := range stepTitles {
		label := fmt.Sprintf("%d %s", i+1, title)
		switch {
		case i == m.step:
			parts = append(parts, m.styles.StepActive.Render("▶ "+label))
		case m.stepJSON(i) != "":
			parts = append(parts, m.styles.StepDone.Render("✓ "+label))
		default:
			parts = append(parts, m.styles.StepPending.Render("  "+label))
		}
	}
	return m.styles.Header.Render(strings.Join(parts, "   "))
}

func (m Model) footer() string {
	if m.busy {
		return m.styles.Footer.Render(m.spinner.View() + " " + m.status)
	}
	if m.err != nil {
		return m.styles.Footer.Render(m.styles.ErrText.Render("Error: " + m.err.Error()))
	}

	help := "enter run · tab/shift+tab steps · c copy · i edit · r reset · q quit"
	if m.editing {
		help = "enter generate · esc done editing · ctrl+c quit"
	}
	if m.status != "" {
		return m.styles.Footer.Render(m.styles.Status.Render(m.status) + "  " + help)
	}
	return m.styles.Footer.Render(help)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run launches the wizard over a wired pipeline and blocks until the
// user quits.
func Run(p *pipeline.Pipeline) error {
	program := tea.NewProgram(NewModel(p), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
