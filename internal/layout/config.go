package layout

import "log/slog"

// Config is the read-only layout configuration supplied per arrangement.
// All lengths are in container units (terminal cells for the TUI).
type Config struct {
	Mode            Mode
	Columns         int     // fixed column count; 0 with MinCardWidth > 0 derives it from width
	MinCardWidth    float64 // threshold used when Columns is 0
	CardGap         float64
	CardHeight      float64 // grid card height; <= 0 derives it from CardsPerView
	AlignCardHeight bool    // list: equal-size cards filling CardsPerView
	CardsPerView    int
	Direction       Direction
	// ContentLengthLimit caps the length fed to the masonry estimator.
	// Zero or negative means unlimited.
	ContentLengthLimit int
	Estimator          EstimatorConfig
}

// EstimatorConfig tunes DefaultEstimator.
type EstimatorConfig struct {
	BaseHeight float64 // title row, borders and margins
	LineHeight float64
	CharWidth  float64 // units per character
}

// DefaultConfig returns the layout defaults for a terminal surface.
func DefaultConfig() Config {
	return Config{
		Mode:               ModeGrid,
		Columns:            3,
		CardGap:            1,
		CardHeight:         6,
		CardsPerView:       3,
		Direction:          Vertical,
		ContentLengthLimit: 400,
		Estimator:          DefaultEstimatorConfig(),
	}
}

// DefaultEstimatorConfig returns estimator constants for one-cell characters.
func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		BaseHeight: 3,
		LineHeight: 1,
		CharWidth:  1,
	}
}

// Unlimited reports whether the content length limit is disabled.
func (c Config) Unlimited() bool {
	return c.ContentLengthLimit <= 0
}

// clampColumns returns n, or 1 with a warning when n is not positive.
func clampColumns(n int, logger *slog.Logger) int {
	if n <= 0 {
		loggerOrDefault(logger).Warn("layout: non-positive column count, using 1", "columns", n)
		return 1
	}
	return n
}

// usableExtent reports whether a computed card extent can be laid out. Gaps
// wider than the container leave nothing for the cards themselves.
func usableExtent(extent float64, what string, logger *slog.Logger) bool {
	if extent <= 0 {
		loggerOrDefault(logger).Warn("layout: container too small for gaps", what, extent)
		return false
	}
	return true
}

// clampPerView treats non-positive cards-per-view as one.
func clampPerView(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// resolveColumns applies the MinCardWidth threshold for auto column counts.
func resolveColumns(cfg Config, containerWidth float64) int {
	if cfg.Columns != 0 || cfg.MinCardWidth <= 0 || containerWidth <= 0 {
		return cfg.Columns
	}
	n := int((containerWidth + cfg.CardGap) / (cfg.MinCardWidth + cfg.CardGap))
	if n < 1 {
		n = 1
	}
	return n
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
