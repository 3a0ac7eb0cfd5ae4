// Package ui provides shared rendering helpers for the TUI: a cell canvas for
// placing blocks at absolute positions and overlay compositing for popups.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle applies a dim gray color to background content behind modals.
// Existing ANSI codes are stripped first because SGR 2 (faint) doesn't
// reliably combine with existing color codes in most terminals.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// maxLineWidth returns the maximum visual width of the given lines.
func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// dimLine strips ANSI codes and applies dim gray styling.
func dimLine(s string) string {
	return DimStyle.Render(ansi.Strip(s))
}

// compositeRow overlays fgLine onto bgLine starting at column startX.
// With dim set, the visible background is stripped and dimmed; otherwise it
// keeps its styling.
func compositeRow(bgLine, fgLine string, startX, fgWidth int, dim bool) string {
	var result strings.Builder

	bg := bgLine
	if dim {
		bg = ansi.Strip(bgLine)
	}
	bgWidth := ansi.StringWidth(bg)
	paint := func(s string) string {
		if dim && s != "" {
			return DimStyle.Render(s)
		}
		return s
	}

	if startX > 0 {
		left := ansi.Truncate(bg, startX, "")
		result.WriteString(paint(left))
		if w := ansi.StringWidth(left); w < startX {
			result.WriteString(strings.Repeat(" ", startX-w))
		}
	}

	result.WriteString(fgLine)

	if rightStart := startX + fgWidth; bgWidth > rightStart {
		result.WriteString(paint(ansi.Cut(bg, rightStart, bgWidth)))
	}
	return result.String()
}

// OverlayModal composites a modal on top of a dimmed background.
// The modal is centered, with dimmed background visible on all sides.
func OverlayModal(background, modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")
	x := (width - maxLineWidth(modalLines)) / 2
	y := (height - len(modalLines)) / 2
	return overlay(background, modalLines, x, y, width, height, true)
}

// OverlayAt composites block with its top-left corner at (x, y), shifting it
// left or up as needed so it stays inside width x height. The background
// keeps its styling.
func OverlayAt(background, block string, x, y, width, height int) string {
	lines := strings.Split(block, "\n")
	if over := x + maxLineWidth(lines) - width; over > 0 {
		x -= over
	}
	if over := y + len(lines) - height; over > 0 {
		y -= over
	}
	return overlay(background, lines, x, y, width, height, false)
}

func overlay(background string, fgLines []string, startX, startY, width, height int, dim bool) string {
	startX = max(startX, 0)
	startY = max(startY, 0)
	fgWidth := maxLineWidth(fgLines)

	bgLines := strings.Split(background, "\n")
	result := make([]string, 0, height)
	for y := range height {
		bgLine := ""
		if y < len(bgLines) {
			bgLine = bgLines[y]
		}

		row := y - startY
		switch {
		case row >= 0 && row < len(fgLines):
			result = append(result, compositeRow(bgLine, fgLines[row], startX, fgWidth, dim))
		case dim:
			result = append(result, dimLine(bgLine))
		default:
			result = append(result, bgLine)
		}
	}
	return strings.Join(result, "\n")
}
