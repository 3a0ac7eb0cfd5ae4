package board

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/cardview/internal/layout"
	"github.com/marcus/cardview/internal/styles"
	"github.com/marcus/cardview/internal/ui"
)

const (
	// Smallest card that still fits a border and one line of text.
	minCardWidth  = 6
	minCardHeight = 3

	// Used for a content-sized card with nothing to measure against, such as
	// a single card in a list.
	naturalWidth  = 24
	naturalHeight = 6
)

// View renders the plugin.
func (p *Plugin) View(width, height int) string {
	header := p.renderHeader(width)
	bodyHeight := max(0, height-headerHeight)

	var body string
	switch {
	case p.storeErr != nil:
		body = styles.Muted.Render("Cards unavailable: " + p.storeErr.Error())
	case p.loadErr != nil:
		body = styles.Muted.Render("Error: " + p.loadErr.Error())
	case !p.loaded:
		body = styles.Muted.Render("Loading cards...")
	case len(p.cards) == 0:
		body = styles.Muted.Render("No cards. Press n to create one.")
	default:
		body = p.renderCards(width, bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body))
}

func (p *Plugin) renderHeader(width int) string {
	cfg := p.engine.Config()
	parts := []string{styles.Title.Render("Cards"), string(cfg.Mode)}
	switch cfg.Mode {
	case layout.ModeList:
		parts = append(parts, string(p.engine.ScrollDirection()))
	default:
		parts = append(parts, fmt.Sprintf("%d cols", p.engine.ColumnsCount()))
	}
	parts = append(parts, fmt.Sprintf("%d cards", len(p.cards)))
	if p.includeArchived {
		parts = append(parts, "+archived")
	}
	line := strings.Join(parts, " · ")
	return styles.Header.Width(width).MaxWidth(width).Render(ansi.Truncate(line, max(0, width-2), "…"))
}

// renderCards paints every card that reaches into the viewport onto a canvas,
// then overlays the context menu.
func (p *Plugin) renderCards(width, height int) string {
	canvas := ui.NewCanvas(width, height)
	vp := p.Viewport()
	positions := p.engine.Positions()
	gap := p.engine.Config().CardGap

	for i, pos := range positions {
		if i >= len(p.cards) {
			break
		}
		r := layout.Bounds(positions, i)
		w, h := cellSize(r, pos, gap)
		x := int(math.Floor(r.X - vp.X))
		y := int(math.Floor(r.Y - vp.Y))
		if x >= width || y >= height || x+w <= 0 || y+h <= 0 {
			continue
		}
		canvas.Place(p.renderCard(i, w, h), x, y)
	}

	out := canvas.String()
	if p.menu != nil {
		out = ui.OverlayAt(out, p.menu.render(), p.menu.x, p.menu.y, width, height)
	}
	return out
}

// cellSize converts a bounds rectangle to whole cells. Content-sized
// dimensions span the step to the next card less the gap.
func cellSize(r layout.Rect, pos layout.Position, gap float64) (int, int) {
	w := int(math.Floor(r.X+r.Width) - math.Floor(r.X))
	h := int(math.Floor(r.Y+r.Height) - math.Floor(r.Y))
	if pos.AutoWidth() {
		w = int(r.Width - gap)
		if w <= 0 {
			w = naturalWidth
		}
	}
	if pos.AutoHeight() {
		h = int(r.Height - gap)
		if h <= 0 {
			h = naturalHeight
		}
	}
	return w, h
}

// renderCard draws card i at exactly w x h cells.
func (p *Plugin) renderCard(i, w, h int) string {
	if w < minCardWidth || h < minCardHeight {
		return ""
	}
	card := p.cards[i]

	style := styles.Card
	switch card.ID {
	case p.markerID:
		style = styles.CardFocused
	case p.activeID:
		style = styles.CardActive
	}

	// Border and horizontal padding take two columns each side.
	innerW := w - 4
	innerH := h - 2

	title := card.Title
	if card.Pinned {
		title = styles.PinMarker.Render("* ") + styles.CardTitle.Render(ansi.Truncate(title, max(0, innerW-2), "…"))
	} else {
		title = styles.CardTitle.Render(ansi.Truncate(title, innerW, "…"))
	}
	lines := []string{title}
	if innerH > 1 {
		for _, line := range bodyLines(p.noteContent(card.ID), innerW, innerH-1) {
			lines = append(lines, styles.CardBody.Render(line))
		}
	}

	return style.
		Width(w - 2).
		Height(innerH).
		MaxHeight(h).
		Render(strings.Join(lines, "\n"))
}

func (p *Plugin) noteContent(id string) string {
	for i := range p.notes {
		if p.notes[i].ID == id {
			return p.notes[i].Content
		}
	}
	return ""
}

// bodyLines wraps content below the title line to at most limit lines.
func bodyLines(content string, width, limit int) []string {
	if width <= 0 || limit <= 0 {
		return nil
	}
	_, body, _ := strings.Cut(strings.TrimSpace(content), "\n")
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}
	wrapped := strings.Split(ansi.Wrap(ansi.Strip(body), width, ""), "\n")
	if len(wrapped) > limit {
		wrapped = wrapped[:limit]
		last := ansi.Truncate(wrapped[limit-1], max(0, width-1), "")
		wrapped[limit-1] = last + "…"
	}
	for i, line := range wrapped {
		wrapped[i] = ansi.Truncate(strings.TrimRight(line, " "), width, "")
	}
	return wrapped
}
