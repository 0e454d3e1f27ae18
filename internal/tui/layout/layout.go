// Package layout provides ANSI-aware width, padding, and truncation
// primitives. All functions treat embedded escape sequences as zero-width,
// so styled and unstyled strings measure the same.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
)

// Ellipsis is appended when a string is shortened by Truncate.
const Ellipsis = "..."

// DisplayWidth returns the number of terminal cells s occupies, ignoring
// ANSI escape sequences.
func DisplayWidth(s string) int {
	return ansi.PrintableRuneWidth(s)
}

// Pad right-pads s with spaces to the given display width. Strings already
// at or beyond the width are returned unchanged.
func Pad(s string, width int) string {
	gap := width - DisplayWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// Center left-pads s so it sits centered within width. There is no trailing
// pad; the panel paints rows left-anchored, so only the leading offset
// matters.
func Center(s string, width int) string {
	gap := width - DisplayWidth(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap/2) + s
}

// Truncate shortens s to at most maxWidth display cells, replacing the tail
// with an ellipsis. Widths below len(Ellipsis)+1 cannot fit any content next
// to the ellipsis, so the string is cut to maxWidth printable runes with no
// ellipsis; maxWidth <= 0 returns "".
func Truncate(s string, maxWidth int) string {
	if DisplayWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 0 {
		return ""
	}
	if maxWidth <= len(Ellipsis) {
		return cut(s, maxWidth)
	}
	return cut(s, maxWidth-len(Ellipsis)) + Ellipsis
}

// cut returns the longest prefix of s whose printable width does not exceed
// max, keeping escape sequences intact and zero-cost.
func cut(s string, max int) string {
	var b strings.Builder
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			b.WriteRune(r)
			if ansi.IsTerminator(r) {
				inEscape = false
			}
		case r == ansi.Marker:
			b.WriteRune(r)
			inEscape = true
		default:
			w := runewidth.RuneWidth(r)
			if width+w > max {
				return b.String()
			}
			width += w
			b.WriteRune(r)
		}
	}
	return b.String()
}
