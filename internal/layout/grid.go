package layout

import "log/slog"

// Grid places cards in fixed columns with uniform height.
type Grid struct {
	columns    int
	gap        float64
	cardHeight float64
	logger     *slog.Logger
}

// NewGrid creates a grid layout. Non-positive columns clamp to 1.
// cardHeight <= 0 derives the height from the container and cards per view.
func NewGrid(columns int, gap, cardHeight float64, logger *slog.Logger) *Grid {
	if gap < 0 {
		gap = 0
	}
	return &Grid{
		columns:    clampColumns(columns, logger),
		gap:        gap,
		cardHeight: cardHeight,
		logger:     logger,
	}
}

// Arrange computes row-major positions.
func (g *Grid) Arrange(cards []Card, containerWidth, containerHeight float64, cardsPerView int) []Position {
	if containerWidth <= 0 {
		return []Position{}
	}

	cardHeight := g.cardHeight
	if cardHeight <= 0 {
		if containerHeight <= 0 {
			return []Position{}
		}
		rows := float64(clampPerView(cardsPerView))
		cardHeight = (containerHeight - g.gap*(rows-1)) / rows
	}

	cols := float64(g.columns)
	cardWidth := (containerWidth - g.gap*(cols-1)) / cols
	if !usableExtent(cardWidth, "cardWidth", g.logger) || !usableExtent(cardHeight, "cardHeight", g.logger) {
		return []Position{}
	}

	positions := make([]Position, len(cards))
	for i, card := range cards {
		row := i / g.columns
		col := i % g.columns
		positions[i] = Position{
			CardID: card.ID,
			X:      float64(col) * (cardWidth + g.gap),
			Y:      float64(row) * (cardHeight + g.gap),
			Width:  cardWidth,
			Height: cardHeight,
		}
	}
	return positions
}

// ColumnsCount returns the fixed column count.
func (g *Grid) ColumnsCount() int { return g.columns }

// ScrollDirection is always vertical for grids.
func (g *Grid) ScrollDirection() Direction { return Vertical }
