// Package theme defines the fixed color palette for the dashboard panel.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is the complete set of colors used by the panel. Higher layers
// never reference raw hex values; they go through the semantic styles below.
type Theme struct {
	// Text colors
	Text    lipgloss.Color // Primary text
	Subtext lipgloss.Color // Secondary text
	Overlay lipgloss.Color // Dimmed text

	// Accent colors
	Mauve  lipgloss.Color
	Red    lipgloss.Color
	Yellow lipgloss.Color
	Green  lipgloss.Color
	Blue   lipgloss.Color

	// Surfaces
	Surface lipgloss.Color // Empty progress cells, dividers
}

// CatppuccinMocha is the default (and currently only) theme.
var CatppuccinMocha = Theme{
	Text:    lipgloss.Color("#cdd6f4"),
	Subtext: lipgloss.Color("#a6adc8"),
	Overlay: lipgloss.Color("#6c7086"),

	Mauve:  lipgloss.Color("#cba6f7"),
	Red:    lipgloss.Color("#f38ba8"),
	Yellow: lipgloss.Color("#f9e2af"),
	Green:  lipgloss.Color("#a6e3a1"),
	Blue:   lipgloss.Color("#89b4fa"),

	Surface: lipgloss.Color("#313244"),
}

// Current returns the active theme.
func Current() Theme {
	return CatppuccinMocha
}

// Styles is the semantic style table consumed by the widgets and the panel.
// One instance is built from a Theme at startup and shared read-only.
type Styles struct {
	Title  lipgloss.Style // Panel title
	Text   lipgloss.Style // Regular content
	Hint   lipgloss.Style // Footer hints, secondary info
	Dim    lipgloss.Style // Empty bar cells, countdowns
	Border lipgloss.Style // Box border glyphs

	Ok     lipgloss.Style // Usage <= 50%
	Warn   lipgloss.Style // 50% < usage <= 80%
	Danger lipgloss.Style // Usage > 80%

	Error lipgloss.Style // Error line
}

// DefaultStyles builds the semantic style table from a theme.
func DefaultStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Mauve),
		Text:   lipgloss.NewStyle().Foreground(t.Text),
		Hint:   lipgloss.NewStyle().Foreground(t.Subtext),
		Dim:    lipgloss.NewStyle().Foreground(t.Overlay),
		Border: lipgloss.NewStyle().Foreground(t.Blue),

		Ok:     lipgloss.NewStyle().Foreground(t.Green),
		Warn:   lipgloss.NewStyle().Foreground(t.Yellow),
		Danger: lipgloss.NewStyle().Bold(true).Foreground(t.Red),

		Error: lipgloss.NewStyle().Bold(true).Foreground(t.Red),
	}
}
