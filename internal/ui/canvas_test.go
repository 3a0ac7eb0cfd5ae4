package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestCanvas_Place(t *testing.T) {
	tests := []struct {
		name  string
		block string
		x, y  int
		want  []string
	}{
		{"inside", "ab\ncd", 1, 1, []string{"      ", " ab   ", " cd   "}},
		{"clipped right", "abcd", 4, 0, []string{"    ab", "      ", "      "}},
		{"clipped left", "abcd", -2, 2, []string{"      ", "      ", "cd    "}},
		{"clipped top", "ab\ncd", 0, -1, []string{"cd    ", "      ", "      "}},
		{"fully outside", "ab", 7, 0, []string{"      ", "      ", "      "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(6, 3)
			c.Place(tt.block, tt.x, tt.y)
			got := strings.Split(c.String(), "\n")
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("row %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCanvas_LaterBlocksPaintOver(t *testing.T) {
	c := NewCanvas(5, 1)
	c.Place("aaaa", 0, 0)
	c.Place("bb", 2, 0)
	if got := c.String(); got != "aabb " {
		t.Errorf("canvas = %q", got)
	}
}

func TestCanvas_StyledBlocksKeepWidth(t *testing.T) {
	c := NewCanvas(8, 1)
	c.Place("\x1b[31mred\x1b[0m", 2, 0)
	c.Place("\x1b[32mgo\x1b[0m", 6, 0)
	if w := ansi.StringWidth(c.String()); w != 8 {
		t.Errorf("width = %d, want 8", w)
	}
	if plain := ansi.Strip(c.String()); plain != "  red go" {
		t.Errorf("plain = %q", plain)
	}
}

func TestCanvas_Empty(t *testing.T) {
	c := NewCanvas(-1, 2)
	c.Place("x", 0, 0)
	if c.Width() != 0 || c.Height() != 2 {
		t.Errorf("size = %dx%d", c.Width(), c.Height())
	}
}
