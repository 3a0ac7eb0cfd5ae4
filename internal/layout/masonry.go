package layout

import "log/slog"

// Masonry packs cards greedily into the currently shortest column.
// It is online and O(cards*columns); it does not search for the globally
// shortest arrangement.
type Masonry struct {
	columns   int
	gap       float64
	estimator HeightEstimator
	logger    *slog.Logger
}

// NewMasonry creates a masonry layout using DefaultEstimator until
// SetEstimator replaces it.
func NewMasonry(columns int, gap float64, logger *slog.Logger) *Masonry {
	if gap < 0 {
		gap = 0
	}
	return &Masonry{
		columns:   clampColumns(columns, logger),
		gap:       gap,
		estimator: DefaultEstimator(DefaultEstimatorConfig(), 0),
		logger:    logger,
	}
}

// SetEstimator swaps the card height heuristic. Nil is ignored.
func (m *Masonry) SetEstimator(e HeightEstimator) {
	if e != nil {
		m.estimator = e
	}
}

// Arrange places each card, in input order, at the bottom of the shortest column.
func (m *Masonry) Arrange(cards []Card, containerWidth, containerHeight float64, cardsPerView int) []Position {
	positions, _ := m.pack(cards, containerWidth)
	return positions
}

// pack returns the positions together with the final column heights.
func (m *Masonry) pack(cards []Card, containerWidth float64) ([]Position, []float64) {
	heights := make([]float64, m.columns)
	if containerWidth <= 0 {
		return []Position{}, heights
	}

	cols := float64(m.columns)
	cardWidth := (containerWidth - m.gap*(cols-1)) / cols
	if !usableExtent(cardWidth, "cardWidth", m.logger) {
		return []Position{}, heights
	}

	positions := make([]Position, len(cards))
	for i, card := range cards {
		col := shortestColumn(heights)
		h := m.estimator(card, cardWidth)
		if h < 0 {
			h = 0
		}
		positions[i] = Position{
			CardID: card.ID,
			X:      float64(col) * (cardWidth + m.gap),
			Y:      heights[col],
			Width:  cardWidth,
			Height: h,
		}
		heights[col] += h + m.gap
	}
	return positions, heights
}

// shortestColumn returns the index of the minimum height, preferring the
// lowest index on ties.
func shortestColumn(heights []float64) int {
	best := 0
	for i := 1; i < len(heights); i++ {
		if heights[i] < heights[best] {
			best = i
		}
	}
	return best
}

// ColumnsCount returns the column count.
func (m *Masonry) ColumnsCount() int { return m.columns }

// ScrollDirection is always vertical for masonry.
func (m *Masonry) ScrollDirection() Direction { return Vertical }
