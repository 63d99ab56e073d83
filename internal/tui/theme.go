// Package tui contains the Bubble Tea wizard for the four-step
// schema generation flow.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Text      lipgloss.Color
	TextMuted lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// BlueprintTheme is the default color scheme.
var BlueprintTheme = Theme{
	Primary:   lipgloss.Color("#4A9EFF"),
	Secondary: lipgloss.Color("#8B7FD7"),
	Accent:    lipgloss.Color("#00D7AF"),
	Text:      lipgloss.Color("#E0E0E0"),
	TextMuted: lipgloss.Color("#6C6C6C"),
	Success:   lipgloss.Color("#5FD700"),
	Warning:   lipgloss.Color("#FFAF00"),
	Error:     lipgloss.Color("#FF5F5F"),
}
