// Package navigator implements keyboard focus movement over a laid-out card
// collection. It reads column count and scroll direction from the active
// layout on every move, so switching layouts needs no navigator changes.
package navigator

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/cardview/internal/layout"
)

// DefaultResyncDelay is how long the navigator waits after a card-collection
// change before refreshing its marker.
const DefaultResyncDelay = 100 * time.Millisecond

// Layout is the geometry the navigator needs from the layout engine.
type Layout interface {
	ColumnsCount() int
	ScrollDirection() layout.Direction
	PageSize() int
}

// Surface exposes the current card collection. It may be rebuilt at any time
// without telling the navigator; CardsChanged schedules a resync.
type Surface interface {
	Cards() []layout.Card
	Positions() []layout.Position
	Viewport() layout.Rect
	ActiveCardID() string
}

// Host performs the visible side effects of navigation.
type Host interface {
	SetFocusMarker(index int, focused bool)
	CenterCard(index int, smooth bool)
	FileFromCard(card layout.Card) (string, bool)
	OpenFile(path string, card layout.Card)
	ShowMenu(card layout.Card, bounds layout.Rect)
}

// resyncMsg fires when the card-change debounce window closes.
type resyncMsg struct {
	gen uint64
}

// Navigator is the focus state machine for one card surface.
type Navigator struct {
	layout  Layout
	surface Surface
	host    Host
	logger  *slog.Logger

	state       State
	smooth      bool
	resyncDelay time.Duration
	resyncGen   uint64
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithSmoothScroll makes CenterCard requests smooth.
func WithSmoothScroll(smooth bool) Option {
	return func(n *Navigator) { n.smooth = smooth }
}

// WithResyncDelay sets the card-change debounce window.
func WithResyncDelay(d time.Duration) Option {
	return func(n *Navigator) {
		if d > 0 {
			n.resyncDelay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// New creates an unfocused navigator.
func New(l Layout, s Surface, h Host, opts ...Option) *Navigator {
	n := &Navigator{
		layout:      l,
		surface:     s,
		host:        h,
		logger:      slog.Default(),
		state:       NewState(),
		resyncDelay: DefaultResyncDelay,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// State returns a copy of the navigation state.
func (n *Navigator) State() State { return n.state }

// FocusedIndex returns the focused card index, or NoFocus.
func (n *Navigator) FocusedIndex() int { return n.state.FocusedIndex }

// IsFocused reports whether the surface holds input focus.
func (n *Navigator) IsFocused() bool { return n.state.IsFocused }

// SetSmoothScroll changes how subsequent moves scroll.
func (n *Navigator) SetSmoothScroll(smooth bool) { n.smooth = smooth }

func (n *Navigator) count() int { return len(n.surface.Cards()) }

// Focus moves the navigator to the Focused state. The initial card is the
// active card if there is one, else the first card visible in the viewport,
// else the first card. Returns false when there are no cards.
func (n *Navigator) Focus() bool {
	n.state.IsFocused = true
	count := n.count()
	if count == 0 {
		n.state.FocusedIndex = NoFocus
		n.state.ActiveIndex = NoFocus
		return false
	}

	n.state.ActiveIndex = n.activeIndex()
	idx := n.state.ActiveIndex
	if idx == NoFocus {
		idx = n.firstVisibleIndex()
	}
	if idx == NoFocus {
		idx = 0
	}
	idx = ensureValidIndex(idx, count)

	n.setFocused(idx)
	if !n.visible(idx) {
		n.host.CenterCard(idx, false)
	}
	n.logger.Debug("navigator: focus", "state", n.state)
	return true
}

// Blur moves the navigator to the Unfocused state and clears the marker.
func (n *Navigator) Blur() {
	if n.state.FocusedIndex != NoFocus {
		n.host.SetFocusMarker(n.state.FocusedIndex, false)
	}
	n.state.PreviousFocusedIndex = n.state.FocusedIndex
	n.state.FocusedIndex = NoFocus
	n.state.IsFocused = false
}

// MoveFocus moves one step. Multi-column layouts use row/column arithmetic;
// single-column layouts move linearly and ignore directions perpendicular to
// their scroll axis. Returns false when the move is a no-op.
func (n *Navigator) MoveFocus(dir Direction) bool {
	count, ok := n.movable()
	if !ok {
		return false
	}
	if n.state.FocusedIndex == NoFocus {
		return n.moveTo(0)
	}

	var next int
	if cols := n.layout.ColumnsCount(); cols > 1 {
		next, ok = gridStep(n.state.FocusedIndex, count, cols, dir)
	} else {
		next, ok = listStep(n.state.FocusedIndex, count, n.layout.ScrollDirection(), dir)
	}
	if !ok {
		return false
	}
	return n.moveTo(next)
}

// MoveFocusPage jumps delta pages, where a page is the layout's PageSize.
func (n *Navigator) MoveFocusPage(delta int) bool {
	count, ok := n.movable()
	if !ok || delta == 0 {
		return false
	}
	page := n.layout.PageSize()
	if page < 1 {
		page = 1
	}
	cur := max(n.state.FocusedIndex, 0)
	next := ensureValidIndex(cur+delta*page, count)
	if next == n.state.FocusedIndex {
		return false
	}
	return n.moveTo(next)
}

// MoveFocusToStart focuses the first card, even if it is already focused.
func (n *Navigator) MoveFocusToStart() bool {
	if _, ok := n.movable(); !ok {
		return false
	}
	return n.moveTo(0)
}

// MoveFocusToEnd focuses the last card, even if it is already focused.
func (n *Navigator) MoveFocusToEnd() bool {
	count, ok := n.movable()
	if !ok {
		return false
	}
	return n.moveTo(count - 1)
}

// OpenFocusedCard asks the host to open the focused card's file.
func (n *Navigator) OpenFocusedCard() bool {
	card, _, ok := n.focusedCard()
	if !ok {
		return false
	}
	path, ok := n.host.FileFromCard(card)
	if !ok {
		return false
	}
	n.host.OpenFile(path, card)
	return true
}

// OpenContextMenu asks the host to show the menu for the focused card.
func (n *Navigator) OpenContextMenu() bool {
	card, idx, ok := n.focusedCard()
	if !ok {
		return false
	}
	var bounds layout.Rect
	if positions := n.surface.Positions(); idx < len(positions) {
		bounds = layout.Bounds(positions, idx)
	}
	n.host.ShowMenu(card, bounds)
	return true
}

// CardsChanged records that the card collection was rebuilt and returns the
// debounce tick. Only the last tick of a burst triggers a resync.
func (n *Navigator) CardsChanged() tea.Cmd {
	n.resyncGen++
	gen := n.resyncGen
	return tea.Tick(n.resyncDelay, func(time.Time) tea.Msg {
		return resyncMsg{gen: gen}
	})
}

// Update consumes the navigator's resync ticks. It reports whether a resync
// was applied.
func (n *Navigator) Update(msg tea.Msg) bool {
	m, ok := msg.(resyncMsg)
	if !ok || m.gen != n.resyncGen {
		return false
	}
	n.resync()
	return true
}

// resync re-applies the focus marker to the current index against the new
// collection. It never moves focus or scrolls.
func (n *Navigator) resync() {
	count := n.count()
	n.state.ActiveIndex = n.activeIndex()
	if count == 0 {
		n.state.FocusedIndex = NoFocus
		return
	}
	if !n.state.IsFocused || n.state.FocusedIndex == NoFocus {
		return
	}
	n.state.FocusedIndex = ensureValidIndex(n.state.FocusedIndex, count)
	n.host.SetFocusMarker(n.state.FocusedIndex, true)
	n.logger.Debug("navigator: resync", "state", n.state)
}

// movable returns the card count when a move can run.
func (n *Navigator) movable() (int, bool) {
	count := n.count()
	if !n.state.IsFocused || count == 0 {
		return count, false
	}
	return count, true
}

// moveTo applies a successful move: state first, then markers, then scroll.
func (n *Navigator) moveTo(idx int) bool {
	idx = ensureValidIndex(idx, n.count())
	if idx == NoFocus {
		return false
	}
	n.setFocused(idx)
	n.host.CenterCard(idx, n.smooth)
	return true
}

func (n *Navigator) setFocused(idx int) {
	prev := n.state.FocusedIndex
	n.state.PreviousFocusedIndex = prev
	n.state.FocusedIndex = idx
	if prev != NoFocus {
		n.host.SetFocusMarker(prev, false)
	}
	n.host.SetFocusMarker(idx, true)
}

func (n *Navigator) focusedCard() (layout.Card, int, bool) {
	cards := n.surface.Cards()
	idx := n.state.FocusedIndex
	if idx < 0 || idx >= len(cards) {
		return layout.Card{}, NoFocus, false
	}
	return cards[idx], idx, true
}

func (n *Navigator) activeIndex() int {
	id := n.surface.ActiveCardID()
	if id == "" {
		return NoFocus
	}
	for i, c := range n.surface.Cards() {
		if c.ID == id {
			return i
		}
	}
	return NoFocus
}

func (n *Navigator) firstVisibleIndex() int {
	positions := n.surface.Positions()
	view := n.surface.Viewport()
	for i := range positions {
		if layout.Bounds(positions, i).Intersects(view) {
			return i
		}
	}
	return NoFocus
}

func (n *Navigator) visible(idx int) bool {
	positions := n.surface.Positions()
	if idx < 0 || idx >= len(positions) {
		return false
	}
	return layout.Bounds(positions, idx).Intersects(n.surface.Viewport())
}

// gridStep computes a row/column move. A short last row clamps the column to
// its final card. Moves that leave row and column unchanged are no-ops.
func gridStep(idx, count, cols int, dir Direction) (int, bool) {
	row, col := idx/cols, idx%cols
	rows := (count + cols - 1) / cols

	newRow, newCol := row, col
	switch dir {
	case Up:
		newRow--
	case Down:
		newRow++
	case Left:
		newCol--
	case Right:
		newCol++
	}
	newRow = max(0, min(rows-1, newRow))
	newCol = max(0, min(cols-1, newCol))

	if newRow == rows-1 {
		if lastRowCount := count - (rows-1)*cols; newCol > lastRowCount-1 {
			newCol = lastRowCount - 1
		}
	}
	if newRow == row && newCol == col {
		return idx, false
	}
	return ensureValidIndex(newRow*cols+newCol, count), true
}

// listStep computes a linear move, ignoring directions across the scroll axis.
func listStep(idx, count int, scroll layout.Direction, dir Direction) (int, bool) {
	if dir.vertical() != (scroll != layout.Horizontal) {
		return idx, false
	}
	next := ensureValidIndex(idx+dir.delta(), count)
	if next == idx {
		return idx, false
	}
	return next, true
}
