package layout

import "log/slog"

// Strategy maps a card list and container size to positions.
// Implementations keep no state between calls beyond their construction
// parameters.
type Strategy interface {
	Arrange(cards []Card, containerWidth, containerHeight float64, cardsPerView int) []Position
	ColumnsCount() int
	ScrollDirection() Direction
}

// strategyBuilders maps each mode to its constructor. The container width is
// needed to resolve threshold-derived column counts.
var strategyBuilders = map[Mode]func(cfg Config, width float64, logger *slog.Logger) Strategy{
	ModeGrid: func(cfg Config, width float64, logger *slog.Logger) Strategy {
		return NewGrid(resolveColumns(cfg, width), cfg.CardGap, cfg.CardHeight, logger)
	},
	ModeMasonry: func(cfg Config, width float64, logger *slog.Logger) Strategy {
		m := NewMasonry(resolveColumns(cfg, width), cfg.CardGap, logger)
		m.SetEstimator(DefaultEstimator(cfg.Estimator, cfg.ContentLengthLimit))
		return m
	},
	ModeList: func(cfg Config, _ float64, logger *slog.Logger) Strategy {
		return NewList(cfg.Direction, cfg.CardGap, cfg.AlignCardHeight, logger)
	},
}

// NewStrategy builds the strategy for cfg.Mode. Unknown modes fall back to grid.
func NewStrategy(cfg Config, containerWidth float64, logger *slog.Logger) Strategy {
	build, ok := strategyBuilders[cfg.Mode]
	if !ok {
		loggerOrDefault(logger).Warn("layout: unknown mode, using grid", "mode", cfg.Mode)
		build = strategyBuilders[ModeGrid]
	}
	return build(cfg, containerWidth, logger)
}
