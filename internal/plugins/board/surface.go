package board

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/cardview/internal/layout"
)

// scrollFrame is the interval between smooth-scroll steps.
const scrollFrame = 16 * time.Millisecond

// panel is the area cards are arranged in. Its size is set from
// plugin.ContentSizeMsg and measured by the resize service.
type panel struct {
	width    int
	height   int
	attached bool
}

func (pn *panel) Size() (float64, float64) { return float64(pn.width), float64(pn.height) }
func (pn *panel) Attached() bool { return pn.attached }

// scrollTickMsg advances a smooth scroll. Ticks from a superseded scroll
// carry an old generation and are dropped.
type scrollTickMsg struct {
	gen uint64
}

// Cards returns the current card collection.
func (p *Plugin) Cards() []layout.Card { return p.cards }

// Positions returns the positions from the last arrangement.
func (p *Plugin) Positions() []layout.Position { return p.engine.Positions() }

// Viewport returns the visible panel area in content coordinates.
func (p *Plugin) Viewport() layout.Rect {
	r := layout.Rect{Width: float64(p.panel.width), Height: float64(p.panel.height)}
	if p.engine.ScrollDirection() == layout.Horizontal {
		r.X = float64(p.scroll)
	} else {
		r.Y = float64(p.scroll)
	}
	return r
}

// ActiveCardID returns the card last opened in the editor.
func (p *Plugin) ActiveCardID() string { return p.activeID }

// SetFocusMarker moves the focus border.
func (p *Plugin) SetFocusMarker(index int, focused bool) {
	if index < 0 || index >= len(p.cards) {
		return
	}
	id := p.cards[index].ID
	switch {
	case focused:
		p.markerID = id
	case p.markerID == id:
		p.markerID = ""
	}
}

// CenterCard scrolls so the card at index sits in the middle of the panel.
func (p *Plugin) CenterCard(index int, smooth bool) {
	positions := p.engine.Positions()
	if index < 0 || index >= len(positions) {
		return
	}
	target := p.clampScroll(p.centerOffset(layout.Bounds(positions, index)))
	p.scrollGen++
	if !smooth || target == p.scroll {
		p.scroll = target
		p.scrollTarget = target
		return
	}
	p.scrollTarget = target
	p.queue(scrollTick(p.scrollGen))
}

// FileFromCard writes the card's note to a temp file for editing.
func (p *Plugin) FileFromCard(card layout.Card) (string, bool) {
	if p.store == nil {
		return "", false
	}
	path, err := p.store.NotePath(card.ID)
	if err != nil {
		p.logger.Warn("cards: note path failed", "id", card.ID, "error", err)
		p.queue(p.showError(err))
		return "", false
	}
	return path, true
}

// OpenFile hands the note file to the external editor.
func (p *Plugin) OpenFile(path string, card layout.Card) {
	p.activeID = card.ID
	p.queue(p.openEditor(editorReadyMsg{ID: card.ID, Path: path}))
}

// ShowMenu opens the context menu next to the card.
func (p *Plugin) ShowMenu(card layout.Card, bounds layout.Rect) {
	var note *noteRef
	for i := range p.notes {
		if p.notes[i].ID == card.ID {
			note = &noteRef{Pinned: p.notes[i].Pinned, Archived: p.notes[i].Archived}
			break
		}
	}
	if note == nil {
		note = &noteRef{Pinned: card.Pinned}
	}
	vp := p.Viewport()
	p.menu = newContextMenu(card, *note,
		int(math.Floor(bounds.X-vp.X))+2,
		int(math.Floor(bounds.Y-vp.Y))+1,
	)
}

// centerOffset is the scroll offset that centers r on the scroll axis.
func (p *Plugin) centerOffset(r layout.Rect) int {
	if p.engine.ScrollDirection() == layout.Horizontal {
		return int(math.Round(r.X + r.Width/2 - float64(p.panel.width)/2))
	}
	return int(math.Round(r.Y + r.Height/2 - float64(p.panel.height)/2))
}

// clampScroll limits offset to the scrollable range.
func (p *Plugin) clampScroll(offset int) int {
	w, h := p.engine.ContentSize()
	limit := int(math.Ceil(h)) - p.panel.height
	if p.engine.ScrollDirection() == layout.Horizontal {
		limit = int(math.Ceil(w)) - p.panel.width
	}
	return max(0, min(offset, limit))
}

func scrollTick(gen uint64) tea.Cmd {
	return tea.Tick(scrollFrame, func(time.Time) tea.Msg {
		return scrollTickMsg{gen: gen}
	})
}

// stepScroll moves halfway to the target, at least one cell per frame.
func (p *Plugin) stepScroll(msg scrollTickMsg) tea.Cmd {
	if msg.gen != p.scrollGen || p.scroll == p.scrollTarget {
		return nil
	}
	step := (p.scrollTarget - p.scroll) / 2
	if step == 0 {
		step = 1
		if p.scrollTarget < p.scroll {
			step = -1
		}
	}
	p.scroll += step
	if p.scroll == p.scrollTarget {
		return nil
	}
	return scrollTick(msg.gen)
}

// relayout re-arranges the cards for the current panel size and keeps the
// focused card in view.
func (p *Plugin) relayout() {
	p.engine.Arrange(p.cards, float64(p.panel.width), float64(p.panel.height))
	p.scrollGen++
	p.scroll = p.clampScroll(p.scroll)
	p.scrollTarget = p.scroll
	if idx := p.nav.FocusedIndex(); p.nav.IsFocused() && idx >= 0 && idx < len(p.cards) {
		if !p.cardVisible(idx) {
			p.CenterCard(idx, false)
		}
	}
}

// cardVisible reports whether any part of card idx is inside the viewport.
func (p *Plugin) cardVisible(idx int) bool {
	positions := p.engine.Positions()
	if idx < 0 || idx >= len(positions) {
		return false
	}
	return layout.Bounds(positions, idx).Intersects(p.Viewport())
}
