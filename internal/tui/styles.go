package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the reusable Lipgloss styles for the wizard.
type Styles struct {
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	Session     lipgloss.Style

	StepActive  lipgloss.Style
	StepDone    lipgloss.Style
	StepPending lipgloss.Style

	Box    lipgloss.Style
	Footer lipgloss.Style

	Muted   lipgloss.Style
	Status  lipgloss.Style
	ErrText lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Padding(0, 1),
		HeaderTitle: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Session: lipgloss.NewStyle().
			Foreground(theme.TextMuted),

		StepActive: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
		StepDone: lipgloss.NewStyle().
			Foreground(theme.Success),
		StepPending: lipgloss.NewStyle().
			Foreground(theme.TextMuted),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Secondary).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(theme.TextMuted).
			Padding(0, 1),

		Muted: lipgloss.NewStyle().
			Foreground(theme.TextMuted),
		Status: lipgloss.NewStyle().
			Foreground(theme.Warning),
		ErrText: lipgloss.NewStyle().
			Foreground(theme.Error),
	}
}
