package layout

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makeCards(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = Card{ID: fmt.Sprintf("c%d", i), ContentLength: 10 * (i + 1)}
	}
	return cards
}

func overlaps(a, b Position) bool {
	return Rect{a.X, a.Y, a.Width, a.Height}.Intersects(Rect{b.X, b.Y, b.Width, b.Height})
}

func TestGridArrange_RowColumnMath(t *testing.T) {
	tests := []struct {
		name    string
		columns int
		width   float64
		cards   int
	}{
		{"single column", 1, 100, 5},
		{"three columns", 3, 320, 10},
		{"exact rows", 4, 430, 8},
		{"more columns than cards", 6, 600, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(tt.columns, 10, 50, quietLogger())
			got := g.Arrange(makeCards(tt.cards), tt.width, 400, 3)

			if len(got) != tt.cards {
				t.Fatalf("got %d positions, want %d", len(got), tt.cards)
			}

			cardWidth := (tt.width - 10*float64(tt.columns-1)) / float64(tt.columns)
			for i, p := range got {
				row, col := i/tt.columns, i%tt.columns
				if p.X != float64(col)*(cardWidth+10) {
					t.Errorf("card %d: x=%v, want col %d", i, p.X, col)
				}
				if p.Y != float64(row)*60 {
					t.Errorf("card %d: y=%v, want row %d", i, p.Y, row)
				}
				if p.Width != cardWidth || p.Height != 50 {
					t.Errorf("card %d: size %vx%v", i, p.Width, p.Height)
				}
				if p.CardID != fmt.Sprintf("c%d", i) {
					t.Errorf("card %d: id %q", i, p.CardID)
				}
			}

			for i := range got {
				for j := i + 1; j < len(got); j++ {
					if overlaps(got[i], got[j]) {
						t.Errorf("positions %d and %d overlap: %+v %+v", i, j, got[i], got[j])
					}
				}
			}
		})
	}
}

func TestGridArrange_ClampsColumns(t *testing.T) {
	g := NewGrid(0, 5, 20, quietLogger())
	if g.ColumnsCount() != 1 {
		t.Fatalf("columns = %d, want 1", g.ColumnsCount())
	}

	got := g.Arrange(makeCards(3), 100, 100, 1)
	if len(got) != 3 {
		t.Fatalf("got %d positions, want 3", len(got))
	}
	if got[2].Y != 50 || got[2].X != 0 {
		t.Errorf("third card at (%v,%v), want (0,50)", got[2].X, got[2].Y)
	}
}

func TestGridArrange_GapsWiderThanContainer(t *testing.T) {
	tests := []struct {
		name       string
		cardHeight float64
		w, h       float64
		perView    int
	}{
		{"width eaten by gaps", 2, 1, 10, 1},
		{"width exactly the gaps", 2, 2, 10, 1},
		{"derived height eaten by gaps", 0, 100, 2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(3, 1, tt.cardHeight, quietLogger())
			got := g.Arrange(makeCards(3), tt.w, tt.h, tt.perView)
			if got == nil || len(got) != 0 {
				t.Errorf("got %+v, want empty non-nil slice", got)
			}
		})
	}
}

func TestGridArrange_NonPositiveWidth(t *testing.T) {
	g := NewGrid(3, 5, 20, quietLogger())
	for _, w := range []float64{0, -10} {
		got := g.Arrange(makeCards(4), w, 100, 1)
		if got == nil || len(got) != 0 {
			t.Errorf("width %v: got %v, want empty non-nil slice", w, got)
		}
	}
}

func TestGridArrange_DerivedHeight(t *testing.T) {
	g := NewGrid(2, 10, 0, quietLogger())
	got := g.Arrange(makeCards(4), 210, 230, 2)

	// (230 - 10) / 2
	if got[0].Height != 110 {
		t.Errorf("height = %v, want 110", got[0].Height)
	}
	if got[2].Y != 120 {
		t.Errorf("row 1 y = %v, want 120", got[2].Y)
	}

	if len(g.Arrange(makeCards(4), 210, 0, 2)) != 0 {
		t.Error("derived height with zero container height should be empty")
	}
}

func TestGridArrange_FreshSlice(t *testing.T) {
	g := NewGrid(2, 0, 10, quietLogger())
	cards := makeCards(2)
	a := g.Arrange(cards, 100, 100, 1)
	b := g.Arrange(cards, 100, 100, 1)
	a[0].X = 999
	if b[0].X == 999 {
		t.Error("Arrange results share backing storage")
	}
}

func TestGridScrollDirection(t *testing.T) {
	if d := NewGrid(2, 0, 10, nil).ScrollDirection(); d != Vertical {
		t.Errorf("direction = %q, want vertical", d)
	}
}
