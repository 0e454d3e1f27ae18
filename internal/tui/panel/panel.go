// Package panel turns content lines into a bordered box and paints it
// centered in the terminal. Painting is the only imperative output in the
// rendering stack: every repaint clears the screen and redraws the whole
// box, one write per row, at absolute cursor positions.
package panel

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/tui/layout"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/tui/theme"
)

// MaxBoxWidth caps the box; narrower terminals shrink it further.
const MaxBoxWidth = 72

// Single-line box glyphs.
const (
	glyphTopLeft     = "┌"
	glyphTopRight    = "┐"
	glyphBottomLeft  = "└"
	glyphBottomRight = "┘"
	glyphHorizontal  = "─"
	glyphVertical    = "│"
)

// BoxWidth returns the total box width for a terminal of the given columns.
func BoxWidth(cols int) int {
	if cols < MaxBoxWidth {
		return cols
	}
	return MaxBoxWidth
}

// Compose frames content lines into box rows of the given total width.
// Lines narrower than the interior are padded; wider lines are left as-is
// and overflow the right border (known limitation, never an error).
func Compose(st theme.Styles, lines []string, boxWidth int) []string {
	inner := boxWidth - 4 // border glyph and one space on each side
	if inner < 0 {
		inner = 0
	}

	edge := st.Border.Render(glyphVertical)
	rows := make([]string, 0, len(lines)+2)
	rows = append(rows, st.Border.Render(glyphTopLeft+strings.Repeat(glyphHorizontal, boxWidth-2)+glyphTopRight))
	for _, line := range lines {
		rows = append(rows, edge+" "+layout.Pad(line, inner)+" "+edge)
	}
	rows = append(rows, st.Border.Render(glyphBottomLeft+strings.Repeat(glyphHorizontal, boxWidth-2)+glyphBottomRight))
	return rows
}

// Origin returns the 1-based terminal position of the box's top-left corner,
// centering it within cols x rows and clamping to 1 when the box does not
// fit. The terminal clips whatever overflows.
func Origin(cols, rows, boxWidth, boxHeight int) (startRow, startCol int) {
	startRow = (rows - boxHeight) / 2
	if startRow < 1 {
		startRow = 1
	}
	startCol = (cols - boxWidth) / 2
	if startCol < 1 {
		startCol = 1
	}
	return startRow, startCol
}

// Painter owns the terminal output handle. All writes go through it so a
// repaint and the shutdown sequence cannot interleave partial output.
type Painter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPainter wraps the terminal output stream.
func NewPainter(w io.Writer) *Painter {
	return &Painter{w: w}
}

// Paint clears the screen, hides the cursor, and draws the rows with the
// box's top-left corner at (startRow, startCol). Each row is emitted in a
// single write to avoid visible tearing.
func (p *Painter) Paint(rows []string, startRow, startCol int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, termenv.CSI+termenv.EraseDisplaySeq, 2)
	fmt.Fprint(p.w, termenv.CSI+termenv.HideCursorSeq)
	for i, row := range rows {
		fmt.Fprintf(p.w, termenv.CSI+termenv.CursorPositionSeq+"%s", startRow+i, startCol, row)
	}
}

// Restore clears the screen and shows the cursor again. Called exactly once
// during teardown.
func (p *Painter) Restore() {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, termenv.CSI+termenv.EraseDisplaySeq, 2)
	fmt.Fprintf(p.w, termenv.CSI+termenv.CursorPositionSeq, 1, 1)
	fmt.Fprint(p.w, termenv.CSI+termenv.ShowCursorSeq)
}
