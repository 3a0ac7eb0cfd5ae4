package layout

import "testing"

func TestEngine_SelectsStrategy(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		mode    Mode
		dir     Direction
		want    string
		columns int
		scroll  Direction
	}{
		{ModeGrid, Vertical, "*layout.Grid", 3, Vertical},
		{ModeMasonry, Vertical, "*layout.Masonry", 3, Vertical},
		{ModeList, Horizontal, "*layout.List", 1, Horizontal},
		{"bogus", Vertical, "*layout.Grid", 3, Vertical},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			c := cfg
			c.Mode = tt.mode
			c.Direction = tt.dir
			e := NewEngine(c, quietLogger())

			var name string
			switch e.Strategy().(type) {
			case *Grid:
				name = "*layout.Grid"
			case *Masonry:
				name = "*layout.Masonry"
			case *List:
				name = "*layout.List"
			}
			if name != tt.want {
				t.Errorf("strategy = %s, want %s", name, tt.want)
			}
			if e.ColumnsCount() != tt.columns {
				t.Errorf("columns = %d, want %d", e.ColumnsCount(), tt.columns)
			}
			if e.ScrollDirection() != tt.scroll {
				t.Errorf("direction = %q, want %q", e.ScrollDirection(), tt.scroll)
			}
		})
	}
}

func TestEngine_ArrangeKeepsPositions(t *testing.T) {
	e := NewEngine(DefaultConfig(), quietLogger())
	got := e.Arrange(makeCards(7), 62, 40)
	if len(got) != 7 || len(e.Positions()) != 7 {
		t.Fatalf("got %d positions, stored %d", len(got), len(e.Positions()))
	}

	e.SetMode(ModeList)
	if e.ColumnsCount() != 1 {
		t.Errorf("columns after SetMode = %d", e.ColumnsCount())
	}
	if len(e.Positions()) != 7 {
		t.Error("SetMode should not discard the last arrangement")
	}
}

func TestEngine_ThresholdColumns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Columns = 0
	cfg.MinCardWidth = 20
	cfg.CardGap = 2
	e := NewEngine(cfg, quietLogger())

	e.Arrange(makeCards(4), 100, 40)
	// (100 + 2) / (20 + 2) = 4.6
	if e.ColumnsCount() != 4 {
		t.Errorf("columns = %d, want 4", e.ColumnsCount())
	}

	e.Arrange(makeCards(4), 30, 40)
	if e.ColumnsCount() != 1 {
		t.Errorf("columns = %d, want 1", e.ColumnsCount())
	}
}

func TestEngine_PageSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Columns = 4
	cfg.CardsPerView = 2
	e := NewEngine(cfg, quietLogger())
	if e.PageSize() != 8 {
		t.Errorf("grid page = %d, want 8", e.PageSize())
	}

	e.SetMode(ModeList)
	if e.PageSize() != 2 {
		t.Errorf("list page = %d, want 2", e.PageSize())
	}
}

func TestEngine_ContentSizeWithAuto(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = ModeList
	cfg.CardGap = 0
	cfg.CardsPerView = 2
	e := NewEngine(cfg, quietLogger())
	e.Arrange(makeCards(3), 50, 20)

	w, h := e.ContentSize()
	if w != 50 || h != 30 {
		t.Errorf("content = %vx%v, want 50x30", w, h)
	}
}

func TestModeNext(t *testing.T) {
	if ModeGrid.Next() != ModeMasonry || ModeMasonry.Next() != ModeList || ModeList.Next() != ModeGrid {
		t.Error("mode cycle order wrong")
	}
	if Mode("x").Next() != ModeGrid {
		t.Error("unknown mode should cycle to grid")
	}
}

func TestRectIntersects(t *testing.T) {
	view := Rect{X: 0, Y: 10, Width: 100, Height: 20}
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"inside", Rect{10, 12, 5, 5}, true},
		{"overlaps top edge", Rect{10, 5, 10, 6}, true},
		{"overlaps bottom edge", Rect{10, 29, 10, 10}, true},
		{"touches top", Rect{10, 0, 10, 10}, false},
		{"below", Rect{10, 30, 10, 10}, false},
		{"right of", Rect{100, 12, 5, 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Intersects(view); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
