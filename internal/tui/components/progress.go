// Package components provides the stateless formatting widgets the panel is
// assembled from: progress bars, colored percentages, and countdowns.
package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/tui/theme"
)

const (
	filledChar = "█"
	emptyChar  = "░"
)

// PercentColor maps a utilization percentage to its semantic style.
// Callers clamp pct to [0, 100]; values outside are mapped as-is.
func PercentColor(st theme.Styles, pct float64) lipgloss.Style {
	switch {
	case pct > 80:
		return st.Danger
	case pct > 50:
		return st.Warn
	default:
		return st.Ok
	}
}

// ProgressBar renders a bar of exactly width display cells. Filled cells use
// the percent color, empty cells the dim style. Rounding is half away from
// zero, so 2.5% of a 20-cell bar fills one cell.
func ProgressBar(st theme.Styles, pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(pct / 100 * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	var b strings.Builder
	if filled > 0 {
		b.WriteString(PercentColor(st, pct).Render(strings.Repeat(filledChar, filled)))
	}
	if filled < width {
		b.WriteString(st.Dim.Render(strings.Repeat(emptyChar, width-filled)))
	}
	return b.String()
}

// FormatPercent renders an integer percentage (rounded, not truncated) in
// its percent color.
func FormatPercent(st theme.Styles, pct float64) string {
	return PercentColor(st, pct).Render(fmt.Sprintf("%d%%", int(math.Round(pct))))
}
