// Package layout packs an ordered card collection into positions inside a
// scrollable container. Three strategies are provided (grid, masonry, list);
// Engine picks one from the current Config.
package layout

// Auto marks a Position dimension that is sized by the card's content
// instead of by the layout.
const Auto = -1.0

// Card is the layout-facing view of a note. Only ID and ContentLength are
// read by the strategies; the rest is carried for rendering.
type Card struct {
	ID            string
	Title         string
	Pinned        bool
	ContentLength int // display width of the card body, used by masonry
}

// Position is the computed placement of one card.
type Position struct {
	CardID string  `json:"cardId" yaml:"cardId"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`   // Auto for content-driven
	Height float64 `json:"height" yaml:"height"` // Auto for content-driven
}

// AutoWidth reports whether the width is content-driven.
func (p Position) AutoWidth() bool { return p.Width == Auto }

// AutoHeight reports whether the height is content-driven.
func (p Position) AutoHeight() bool { return p.Height == Auto }

// Mode selects a layout strategy.
type Mode string

const (
	ModeGrid    Mode = "grid"
	ModeMasonry Mode = "masonry"
	ModeList    Mode = "list"
)

// Modes lists the supported modes in cycling order.
var Modes = []Mode{ModeGrid, ModeMasonry, ModeList}

// Next returns the mode after m in cycling order.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return ModeGrid
}

// Valid reports whether m names a known strategy.
func (m Mode) Valid() bool {
	switch m {
	case ModeGrid, ModeMasonry, ModeList:
		return true
	}
	return false
}

// Direction is the axis along which a layout scrolls.
type Direction string

const (
	Vertical   Direction = "vertical"
	Horizontal Direction = "horizontal"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == Vertical || d == Horizontal
}

// Rect is an axis-aligned rectangle in container units.
type Rect struct {
	X, Y, Width, Height float64
}

// Intersects reports whether r and o overlap. Touching edges do not count;
// any partial overlap does.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}
