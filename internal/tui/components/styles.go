package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/neora-dev/neora/internal/theme"
)

// Styles holds all shared Lipgloss styles used by the installer screen.
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Body        lipgloss.Style
	Muted       lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	Panel       lipgloss.Style
	Footer      lipgloss.Style
	StatusDone  string
	StatusFail  string
	AccentColor lipgloss.TerminalColor
}

// DefaultStyles returns the light palette styles on lipgloss' default renderer.
func DefaultStyles() Styles {
	return NewStyles(nil, theme.Light())
}

// NewStyles derives the styles from pal. The accent follows the palette's
// primary color so the chrome matches the step circles. A nil renderer uses
// lipgloss' default.
func NewStyles(r *lipgloss.Renderer, pal theme.Palette) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	accent := pal.Primary.Lipgloss()
	text := pal.Text.Lipgloss()
	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	success := lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}
	errColor := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(accent),

		Subtitle: r.NewStyle().
			Bold(true).
			Foreground(text),

		Body: r.NewStyle().
			Foreground(text),

		Muted: r.NewStyle().
			Foreground(muted),

		Success: r.NewStyle().
			Foreground(success),

		Error: r.NewStyle().
			Bold(true).
			Foreground(errColor),

		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Footer: r.NewStyle().
			Foreground(muted),

		StatusDone: "✓",
		StatusFail: "✗",

		AccentColor: accent,
	}
}
