package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Canvas is a fixed-size grid of terminal cells that rendered blocks are
// painted onto at absolute positions. Later blocks paint over earlier ones.
type Canvas struct {
	width  int
	height int
	rows   []string
}

// NewCanvas returns a blank canvas. Non-positive sizes yield an empty canvas.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	rows := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range rows {
		rows[i] = blank
	}
	return &Canvas{width: width, height: height, rows: rows}
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.height }

// Place paints block with its top-left corner at (x, y). Parts outside the
// canvas are clipped, so blocks may start at negative coordinates.
func (c *Canvas) Place(block string, x, y int) {
	if c.width == 0 {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= c.height {
			continue
		}
		lineWidth := ansi.StringWidth(line)
		start := x
		if start < 0 {
			line = ansi.Cut(line, -start, lineWidth)
			lineWidth += start
			start = 0
		}
		if lineWidth <= 0 || start >= c.width {
			continue
		}
		if start+lineWidth > c.width {
			line = ansi.Truncate(line, c.width-start, "")
			lineWidth = c.width - start
		}
		c.rows[row] = splice(c.rows[row], line, start, lineWidth, c.width)
	}
}

// splice replaces cells [start, start+w) of row with line.
func splice(row, line string, start, w, total int) string {
	var b strings.Builder
	b.WriteString(ansi.Truncate(row, start, ""))
	b.WriteString(line)
	if end := start + w; end < total {
		b.WriteString(ansi.Cut(row, end, total))
	}
	return b.String()
}

// String renders the canvas rows joined by newlines.
func (c *Canvas) String() string {
	return strings.Join(c.rows, "\n")
}
