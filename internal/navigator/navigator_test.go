package navigator

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/marcus/cardview/internal/layout"
)

type fakeLayout struct {
	cols int
	dir  layout.Direction
	page int
}

func (f *fakeLayout) ColumnsCount() int                  { return f.cols }
func (f *fakeLayout) ScrollDirection() layout.Direction { return f.dir }
func (f *fakeLayout) PageSize() int                      { return f.page }

type fakeSurface struct {
	cards     []layout.Card
	positions []layout.Position
	viewport  layout.Rect
	active    string
}

func (f *fakeSurface) Cards() []layout.Card         { return f.cards }
func (f *fakeSurface) Positions() []layout.Position { return f.positions }
func (f *fakeSurface) Viewport() layout.Rect        { return f.viewport }
func (f *fakeSurface) ActiveCardID() string         { return f.active }

// fakeHost records side effects in call order.
type fakeHost struct {
	calls  []string
	marked int
	opened []string
	menus  []string
	noFile bool
}

func (f *fakeHost) SetFocusMarker(index int, focused bool) {
	f.calls = append(f.calls, fmt.Sprintf("mark %d %v", index, focused))
	if focused {
		f.marked = index
	} else if f.marked == index {
		f.marked = NoFocus
	}
}

func (f *fakeHost) CenterCard(index int, smooth bool) {
	f.calls = append(f.calls, fmt.Sprintf("center %d %v", index, smooth))
}

func (f *fakeHost) FileFromCard(card layout.Card) (string, bool) {
	if f.noFile {
		return "", false
	}
	return "/notes/" + card.ID + ".md", true
}

func (f *fakeHost) OpenFile(path string, _ layout.Card) { f.opened = append(f.opened, path) }

func (f *fakeHost) ShowMenu(card layout.Card, _ layout.Rect) { f.menus = append(f.menus, card.ID) }

func cards(n int) []layout.Card {
	out := make([]layout.Card, n)
	for i := range out {
		out[i] = layout.Card{ID: fmt.Sprintf("c%d", i)}
	}
	return out
}

// gridPositions lays out n 10x10 cards in cols columns with no gap.
func gridPositions(n, cols int) []layout.Position {
	out := make([]layout.Position, n)
	for i := range out {
		out[i] = layout.Position{
			CardID: fmt.Sprintf("c%d", i),
			X:      float64(i%cols) * 10,
			Y:      float64(i/cols) * 10,
			Width:  10,
			Height: 10,
		}
	}
	return out
}

type fixture struct {
	nav     *Navigator
	layout  *fakeLayout
	surface *fakeSurface
	host    *fakeHost
}

func newFixture(n, cols int, dir layout.Direction) *fixture {
	l := &fakeLayout{cols: cols, dir: dir, page: cols * 2}
	s := &fakeSurface{
		cards:     cards(n),
		positions: gridPositions(n, cols),
		viewport:  layout.Rect{Width: 100, Height: 1000},
	}
	h := &fakeHost{marked: NoFocus}
	nav := New(l, s, h, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return &fixture{nav: nav, layout: l, surface: s, host: h}
}

// focusAt focuses the navigator and jumps to idx.
func (f *fixture) focusAt(t *testing.T, idx int) {
	t.Helper()
	f.nav.Focus()
	f.nav.state.FocusedIndex = idx
	f.host.calls = nil
}

func TestNewState(t *testing.T) {
	s := NewState()
	if s.FocusedIndex != NoFocus || s.ActiveIndex != NoFocus || s.IsFocused {
		t.Errorf("unexpected initial state %v", s)
	}
}

func TestEnsureValidIndex(t *testing.T) {
	tests := []struct{ idx, count, want int }{
		{-5, 3, 0},
		{0, 3, 0},
		{2, 3, 2},
		{9, 3, 2},
		{0, 0, NoFocus},
	}
	for _, tt := range tests {
		if got := ensureValidIndex(tt.idx, tt.count); got != tt.want {
			t.Errorf("ensureValidIndex(%d, %d) = %d, want %d", tt.idx, tt.count, got, tt.want)
		}
	}
}

func TestFocus_PrefersActiveCard(t *testing.T) {
	f := newFixture(6, 3, layout.Vertical)
	f.surface.active = "c4"

	if !f.nav.Focus() {
		t.Fatal("Focus returned false")
	}
	st := f.nav.State()
	if st.FocusedIndex != 4 || st.ActiveIndex != 4 || !st.IsFocused {
		t.Errorf("state = %v", st)
	}
	if f.host.marked != 4 {
		t.Errorf("marker at %d, want 4", f.host.marked)
	}
}

func TestFocus_FirstVisibleCard(t *testing.T) {
	f := newFixture(12, 3, layout.Vertical)
	// Rows are 10 high; a viewport starting at y=15 partially shows row 1.
	f.surface.viewport = layout.Rect{X: 0, Y: 15, Width: 30, Height: 10}

	f.nav.Focus()
	if got := f.nav.FocusedIndex(); got != 3 {
		t.Errorf("focused = %d, want 3 (first card of partially visible row)", got)
	}
	for _, c := range f.host.calls {
		if c == "center 3 false" {
			t.Error("visible card should not be scrolled into view")
		}
	}
}

func TestFocus_DefaultsToFirstCard(t *testing.T) {
	f := newFixture(4, 2, layout.Vertical)
	f.surface.viewport = layout.Rect{X: 0, Y: 500, Width: 20, Height: 10}
	f.surface.active = "missing"

	f.nav.Focus()
	if got := f.nav.FocusedIndex(); got != 0 {
		t.Errorf("focused = %d, want 0", got)
	}
	last := f.host.calls[len(f.host.calls)-1]
	if last != "center 0 false" {
		t.Errorf("last call = %q, want off-screen card centered", last)
	}
}

func TestFocus_EmptyCollection(t *testing.T) {
	f := newFixture(0, 3, layout.Vertical)
	if f.nav.Focus() {
		t.Error("Focus on empty collection should report false")
	}
	if f.nav.FocusedIndex() != NoFocus || !f.nav.IsFocused() {
		t.Errorf("state = %v", f.nav.State())
	}
	for _, move := range []func() bool{
		func() bool { return f.nav.MoveFocus(Down) },
		func() bool { return f.nav.MoveFocusPage(1) },
		f.nav.MoveFocusToStart,
		f.nav.MoveFocusToEnd,
		f.nav.OpenFocusedCard,
		f.nav.OpenContextMenu,
	} {
		if move() {
			t.Error("operation on empty collection should report false")
		}
	}
}

func TestBlur(t *testing.T) {
	f := newFixture(5, 1, layout.Vertical)
	f.nav.Focus()
	f.nav.MoveFocus(Down)

	f.nav.Blur()
	st := f.nav.State()
	if st.FocusedIndex != NoFocus || st.IsFocused || st.PreviousFocusedIndex != 1 {
		t.Errorf("state after blur = %v", st)
	}
	if f.host.marked != NoFocus {
		t.Errorf("marker still at %d", f.host.marked)
	}
	if f.nav.MoveFocus(Down) {
		t.Error("moves while unfocused should report false")
	}
}

func TestGridMove_TenCardsThreeColumns(t *testing.T) {
	tests := []struct {
		name  string
		from  int
		dir   Direction
		want  int
		moved bool
	}{
		{"right at row end", 8, Right, 8, false},
		{"down from short last row", 9, Down, 9, false},
		{"left from column 0", 3, Left, 3, false},
		{"up from top row", 1, Up, 1, false},
		{"right within row", 4, Right, 5, true},
		{"left within row", 5, Left, 4, true},
		{"down within grid", 1, Down, 4, true},
		{"up within grid", 7, Up, 4, true},
		{"down into short row clamps column", 8, Down, 9, true},
		{"down into short row same column", 6, Down, 9, true},
		{"right in short row", 9, Right, 9, false},
		{"right at end of every row", 2, Right, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(10, 3, layout.Vertical)
			f.focusAt(t, tt.from)

			moved := f.nav.MoveFocus(tt.dir)
			if moved != tt.moved {
				t.Errorf("moved = %v, want %v", moved, tt.moved)
			}
			if got := f.nav.FocusedIndex(); got != tt.want {
				t.Errorf("focused = %d, want %d", got, tt.want)
			}
			if !tt.moved && len(f.host.calls) != 0 {
				t.Errorf("no-op produced side effects: %v", f.host.calls)
			}
		})
	}
}

func TestListMove_DirectionFiltering(t *testing.T) {
	tests := []struct {
		name  string
		dir   layout.Direction
		from  int
		move  Direction
		want  int
		moved bool
	}{
		{"vertical down", layout.Vertical, 0, Down, 1, true},
		{"vertical up", layout.Vertical, 2, Up, 1, true},
		{"vertical ignores right", layout.Vertical, 1, Right, 1, false},
		{"vertical ignores left", layout.Vertical, 1, Left, 1, false},
		{"vertical top boundary", layout.Vertical, 0, Up, 0, false},
		{"vertical bottom boundary", layout.Vertical, 4, Down, 4, false},
		{"horizontal right", layout.Horizontal, 0, Right, 1, true},
		{"horizontal left", layout.Horizontal, 3, Left, 2, true},
		{"horizontal ignores down", layout.Horizontal, 1, Down, 1, false},
		{"horizontal ignores up", layout.Horizontal, 1, Up, 1, false},
		{"horizontal end boundary", layout.Horizontal, 4, Right, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(5, 1, tt.dir)
			f.focusAt(t, tt.from)
			if moved := f.nav.MoveFocus(tt.move); moved != tt.moved {
				t.Errorf("moved = %v, want %v", moved, tt.moved)
			}
			if got := f.nav.FocusedIndex(); got != tt.want {
				t.Errorf("focused = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMove_SideEffectOrder(t *testing.T) {
	f := newFixture(6, 3, layout.Vertical)
	f.nav.SetSmoothScroll(true)
	f.focusAt(t, 0)
	f.host.marked = 0

	if !f.nav.MoveFocus(Right) {
		t.Fatal("move failed")
	}
	want := []string{"mark 0 false", "mark 1 true", "center 1 true"}
	if fmt.Sprint(f.host.calls) != fmt.Sprint(want) {
		t.Errorf("calls = %v, want %v", f.host.calls, want)
	}
	if st := f.nav.State(); st.PreviousFocusedIndex != 0 {
		t.Errorf("previous = %d, want 0", st.PreviousFocusedIndex)
	}
}

func TestMoveFocusPage(t *testing.T) {
	f := newFixture(20, 3, layout.Vertical) // page = 6
	f.focusAt(t, 2)

	if !f.nav.MoveFocusPage(1) || f.nav.FocusedIndex() != 8 {
		t.Errorf("page down: focused = %d, want 8", f.nav.FocusedIndex())
	}
	if !f.nav.MoveFocusPage(5) || f.nav.FocusedIndex() != 19 {
		t.Errorf("clamped page down: focused = %d, want 19", f.nav.FocusedIndex())
	}
	if f.nav.MoveFocusPage(1) {
		t.Error("page down at end should be a no-op")
	}
	if !f.nav.MoveFocusPage(-1) || f.nav.FocusedIndex() != 13 {
		t.Errorf("page up: focused = %d, want 13", f.nav.FocusedIndex())
	}
	if !f.nav.MoveFocusPage(-10) || f.nav.FocusedIndex() != 0 {
		t.Errorf("clamped page up: focused = %d, want 0", f.nav.FocusedIndex())
	}
	if f.nav.MoveFocusPage(-1) {
		t.Error("page up at start should be a no-op")
	}
}

func TestMoveFocusToStartEnd(t *testing.T) {
	for _, from := range []int{0, 3, 6} {
		f := newFixture(7, 2, layout.Vertical)
		f.focusAt(t, from)

		if !f.nav.MoveFocusToEnd() || f.nav.FocusedIndex() != 6 {
			t.Errorf("from %d: end = %d", from, f.nav.FocusedIndex())
		}
		if !f.nav.MoveFocusToEnd() {
			t.Errorf("from %d: repeated End should still succeed", from)
		}
		if !f.nav.MoveFocusToStart() || f.nav.FocusedIndex() != 0 {
			t.Errorf("from %d: start = %d", from, f.nav.FocusedIndex())
		}
		if !f.nav.MoveFocusToStart() {
			t.Errorf("from %d: repeated Start should still succeed", from)
		}
	}
}

func TestMoveFromNoFocusLandsOnFirst(t *testing.T) {
	f := newFixture(0, 3, layout.Vertical)
	f.nav.Focus()
	f.surface.cards = cards(4)
	f.surface.positions = gridPositions(4, 3)

	if !f.nav.MoveFocus(Down) || f.nav.FocusedIndex() != 0 {
		t.Errorf("focused = %d, want 0", f.nav.FocusedIndex())
	}
}

func TestMoveClampsStaleIndex(t *testing.T) {
	f := newFixture(10, 1, layout.Vertical)
	f.focusAt(t, 9)
	f.surface.cards = cards(3)

	if !f.nav.MoveFocus(Up) || f.nav.FocusedIndex() != 2 {
		t.Errorf("focused = %d, want 2", f.nav.FocusedIndex())
	}
}

func TestOpenFocusedCard(t *testing.T) {
	f := newFixture(3, 1, layout.Vertical)
	f.nav.Focus()
	f.nav.MoveFocus(Down)

	if !f.nav.OpenFocusedCard() {
		t.Fatal("open failed")
	}
	if len(f.host.opened) != 1 || f.host.opened[0] != "/notes/c1.md" {
		t.Errorf("opened = %v", f.host.opened)
	}

	f.host.noFile = true
	if f.nav.OpenFocusedCard() {
		t.Error("card without file should not open")
	}

	f.nav.state.FocusedIndex = 7
	f.host.noFile = false
	if f.nav.OpenFocusedCard() {
		t.Error("out-of-range focus should not open")
	}
}

func TestOpenContextMenu(t *testing.T) {
	f := newFixture(3, 3, layout.Vertical)
	if f.nav.OpenContextMenu() {
		t.Error("menu without focus should report false")
	}
	f.nav.Focus()
	f.nav.MoveFocus(Right)
	if !f.nav.OpenContextMenu() {
		t.Fatal("menu failed")
	}
	if len(f.host.menus) != 1 || f.host.menus[0] != "c1" {
		t.Errorf("menus = %v", f.host.menus)
	}
}

func TestCardsChanged_CoalescesBurst(t *testing.T) {
	f := newFixture(6, 3, layout.Vertical)
	f.focusAt(t, 5)

	var gens []uint64
	for range 3 {
		if f.nav.CardsChanged() == nil {
			t.Fatal("CardsChanged returned nil")
		}
		gens = append(gens, f.nav.resyncGen)
	}

	f.surface.cards = cards(4)
	for _, g := range gens[:2] {
		if f.nav.Update(resyncMsg{gen: g}) {
			t.Errorf("stale resync %d applied", g)
		}
	}
	if len(f.host.calls) != 0 {
		t.Errorf("stale resyncs produced calls: %v", f.host.calls)
	}

	if !f.nav.Update(resyncMsg{gen: gens[2]}) {
		t.Fatal("latest resync not applied")
	}
	if f.nav.FocusedIndex() != 3 {
		t.Errorf("focused = %d, want clamped 3", f.nav.FocusedIndex())
	}
	want := []string{"mark 3 true"}
	if fmt.Sprint(f.host.calls) != fmt.Sprint(want) {
		t.Errorf("calls = %v, want %v (marker refresh, no scroll)", f.host.calls, want)
	}
}

func TestCardsChanged_EmptyResetsFocus(t *testing.T) {
	f := newFixture(4, 2, layout.Vertical)
	f.focusAt(t, 2)
	f.nav.CardsChanged()

	f.surface.cards = nil
	f.nav.Update(resyncMsg{gen: f.nav.resyncGen})
	if f.nav.FocusedIndex() != NoFocus {
		t.Errorf("focused = %d, want NoFocus", f.nav.FocusedIndex())
	}
}

func TestUpdate_IgnoresOtherMessages(t *testing.T) {
	f := newFixture(2, 1, layout.Vertical)
	if f.nav.Update("hello") {
		t.Error("foreign message should be ignored")
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{Up, Down, Left, Right} {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Error("unknown direction parsed")
	}
}
