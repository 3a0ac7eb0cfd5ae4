package layout

import "testing"

func TestList_AlignedVertical(t *testing.T) {
	const gap = 10.0
	l := NewList(Vertical, gap, true, quietLogger())
	got := l.Arrange(makeCards(5), 300, 320, 3)

	wantH := (320 - 2*gap) / 3
	for i, p := range got {
		if p.Height != wantH {
			t.Errorf("card %d height=%v, want %v", i, p.Height, wantH)
		}
		if p.Width != 300 || p.X != 0 {
			t.Errorf("card %d cross axis x=%v w=%v", i, p.X, p.Width)
		}
		if i > 0 {
			prev := got[i-1]
			if sep := p.Y - (prev.Y + prev.Height); sep != gap {
				t.Errorf("cards %d-%d separated by %v, want %v", i-1, i, sep, gap)
			}
		}
	}
}

func TestList_AlignedHorizontal(t *testing.T) {
	l := NewList(Horizontal, 4, true, quietLogger())
	got := l.Arrange(makeCards(3), 408, 50, 2)

	for i, p := range got {
		if p.Width != 202 || p.Height != 50 {
			t.Errorf("card %d size %vx%v, want 202x50", i, p.Width, p.Height)
		}
		if p.X != float64(i)*206 || p.Y != 0 {
			t.Errorf("card %d at (%v,%v)", i, p.X, p.Y)
		}
	}
	if l.ScrollDirection() != Horizontal {
		t.Errorf("direction = %q", l.ScrollDirection())
	}
}

func TestList_AutoSize(t *testing.T) {
	l := NewList(Vertical, 2, false, quietLogger())
	got := l.Arrange(makeCards(3), 80, 30, 3)

	for i, p := range got {
		if !p.AutoHeight() {
			t.Errorf("card %d height %v, want Auto", i, p.Height)
		}
		if p.AutoWidth() || p.Width != 80 {
			t.Errorf("card %d width %v, want 80", i, p.Width)
		}
		if want := float64(i) * 12; p.Y != want {
			t.Errorf("card %d y=%v, want %v", i, p.Y, want)
		}
	}
}

func TestList_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		w, h float64
	}{
		{"vertical zero height", Vertical, 100, 0},
		{"vertical zero width", Vertical, 0, 100},
		{"horizontal zero width", Horizontal, 0, 100},
		{"horizontal negative height", Horizontal, 100, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewList(tt.dir, 1, true, quietLogger()).Arrange(makeCards(2), tt.w, tt.h, 2); len(got) != 0 {
				t.Errorf("got %d positions, want 0", len(got))
			}
		})
	}
}

func TestList_AlignedGapsWiderThanViewport(t *testing.T) {
	for _, dir := range []Direction{Vertical, Horizontal} {
		l := NewList(dir, 1, true, quietLogger())
		if got := l.Arrange(makeCards(2), 2, 2, 5); got == nil || len(got) != 0 {
			t.Errorf("%s: got %+v, want empty non-nil slice", dir, got)
		}
	}

	// Unaligned lists never size cards, so the same container still stacks.
	got := NewList(Vertical, 1, false, quietLogger()).Arrange(makeCards(2), 10, 2, 5)
	if len(got) != 2 || got[1].Y <= got[0].Y {
		t.Errorf("unaligned: got %+v", got)
	}
}

func TestList_Defaults(t *testing.T) {
	l := NewList("diagonal", 1, false, quietLogger())
	if l.ScrollDirection() != Vertical {
		t.Errorf("direction = %q, want vertical", l.ScrollDirection())
	}
	if l.ColumnsCount() != 1 {
		t.Errorf("columns = %d, want 1", l.ColumnsCount())
	}
	// cardsPerView <= 0 behaves like 1.
	got := NewList(Vertical, 0, true, quietLogger()).Arrange(makeCards(2), 10, 40, 0)
	if got[0].Height != 40 || got[1].Y != 40 {
		t.Errorf("got %+v", got)
	}
}
