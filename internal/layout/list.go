package layout

import "log/slog"

// List stacks cards along a single axis.
type List struct {
	direction Direction
	gap       float64
	align     bool
	logger    *slog.Logger
}

// NewList creates a list layout. Unknown directions default to vertical.
func NewList(direction Direction, gap float64, alignCardHeight bool, logger *slog.Logger) *List {
	if !direction.Valid() {
		direction = Vertical
	}
	if gap < 0 {
		gap = 0
	}
	return &List{direction: direction, gap: gap, align: alignCardHeight, logger: logger}
}

// Arrange stacks cards along the scroll axis. Aligned lists give every card
// an equal share of the viewport; otherwise the scroll-axis size is Auto and
// positions advance by an estimated step.
func (l *List) Arrange(cards []Card, containerWidth, containerHeight float64, cardsPerView int) []Position {
	axis, cross := containerHeight, containerWidth
	if l.direction == Horizontal {
		axis, cross = containerWidth, containerHeight
	}
	if axis <= 0 || cross <= 0 {
		return []Position{}
	}

	k := float64(clampPerView(cardsPerView))
	size := (axis - l.gap*(k-1)) / k
	step := size + l.gap
	if l.align && !usableExtent(size, "cardSize", l.logger) {
		return []Position{}
	}
	if !l.align {
		size = Auto
		step = axis/k + l.gap
	}

	positions := make([]Position, len(cards))
	current := 0.0
	for i, card := range cards {
		p := Position{CardID: card.ID}
		if l.direction == Horizontal {
			p.X, p.Y = current, 0
			p.Width, p.Height = size, cross
		} else {
			p.X, p.Y = 0, current
			p.Width, p.Height = cross, size
		}
		positions[i] = p
		current += step
	}
	return positions
}

// ColumnsCount is always 1 for lists.
func (l *List) ColumnsCount() int { return 1 }

// ScrollDirection returns the configured stacking direction.
func (l *List) ScrollDirection() Direction { return l.direction }
