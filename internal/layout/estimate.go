package layout

import "math"

// HeightEstimator predicts a card's rendered height for a given card width.
// Masonry uses it because real heights depend on font metrics the layout
// does not model.
type HeightEstimator func(card Card, cardWidth float64) float64

// DefaultEstimator returns the base-plus-wrapped-lines heuristic:
// BaseHeight + ceil(length / charsPerLine) * LineHeight, where length is the
// card's content length clamped to limit (limit <= 0 is unlimited).
func DefaultEstimator(ec EstimatorConfig, limit int) HeightEstimator {
	if ec.CharWidth <= 0 {
		ec.CharWidth = 1
	}
	return func(card Card, cardWidth float64) float64 {
		length := card.ContentLength
		if length < 0 {
			length = 0
		}
		if limit > 0 && length > limit {
			length = limit
		}
		lines := math.Ceil(float64(length) / float64(charsPerLine(cardWidth, ec.CharWidth)))
		return ec.BaseHeight + lines*ec.LineHeight
	}
}

func charsPerLine(cardWidth, charWidth float64) int {
	n := int(math.Floor(cardWidth / charWidth))
	if n < 1 {
		return 1
	}
	return n
}
