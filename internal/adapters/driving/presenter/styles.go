package presenter

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for command output.
type Theme struct {
	// Primary is the accent colour for labels.
	Primary lipgloss.Color

	// Muted is for hints and secondary text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates empty results and caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains pre-configured lipgloss styles bound to one renderer.
type Styles struct {
	// Success style for success labels and confirmations.
	Success lipgloss.Style

	// Warning style for empty results.
	Warning lipgloss.Style

	// Error style for failure notices.
	Error lipgloss.Style

	// Info style for hints.
	Info lipgloss.Style

	// Key style for setting names in listings.
	Key lipgloss.Style
}

// NewStyles creates styles from a theme for renderer r.
// The renderer detects the colour profile of its writer, so output to a
// pipe or file carries no escape sequences.
func NewStyles(r *lipgloss.Renderer, theme *Theme) *Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		Success: r.NewStyle().
			Bold(true).
			Foreground(theme.Success),

		Warning: r.NewStyle().
			Bold(true).
			Foreground(theme.Warning),

		Error: r.NewStyle().
			Bold(true).
			Foreground(theme.Error),

		Info: r.NewStyle().
			Foreground(theme.Muted),

		Key: r.NewStyle().
			Foreground(theme.Primary),
	}
}
