package layout

import "log/slog"

// Engine holds the active strategy for the current configuration and
// re-arranges cards whenever cards, settings or container size change.
type Engine struct {
	cfg      Config
	logger   *slog.Logger
	strategy Strategy

	// Width the strategy was built for; only matters for threshold columns.
	builtWidth float64
	positions  []Position
}

// NewEngine creates an engine for cfg. A nil logger uses slog.Default().
func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	e := &Engine{cfg: cfg, logger: loggerOrDefault(logger)}
	e.rebuild(0)
	return e
}

// Config returns the current configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetConfig replaces the configuration and rebuilds the strategy.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = cfg
	e.rebuild(e.builtWidth)
}

// SetMode switches the strategy while keeping the rest of the configuration.
func (e *Engine) SetMode(mode Mode) {
	cfg := e.cfg
	cfg.Mode = mode
	e.SetConfig(cfg)
}

// Strategy returns the active strategy.
func (e *Engine) Strategy() Strategy { return e.strategy }

func (e *Engine) rebuild(width float64) {
	e.builtWidth = width
	e.strategy = NewStrategy(e.cfg, width, e.logger)
}

// Arrange lays out cards for the given container size and remembers the
// result. The returned slice is new on every call.
func (e *Engine) Arrange(cards []Card, containerWidth, containerHeight float64) []Position {
	if e.cfg.Columns == 0 && e.cfg.MinCardWidth > 0 && containerWidth != e.builtWidth {
		e.rebuild(containerWidth)
	}
	e.positions = e.strategy.Arrange(cards, containerWidth, containerHeight, e.cfg.CardsPerView)
	e.logger.Debug("layout: arranged",
		"mode", e.cfg.Mode,
		"cards", len(cards),
		"positions", len(e.positions),
		"width", containerWidth,
		"height", containerHeight)
	return e.positions
}

// Positions returns the result of the last Arrange call.
func (e *Engine) Positions() []Position { return e.positions }

// ColumnsCount returns the active strategy's column count.
func (e *Engine) ColumnsCount() int { return e.strategy.ColumnsCount() }

// ScrollDirection returns the active strategy's scroll axis.
func (e *Engine) ScrollDirection() Direction { return e.strategy.ScrollDirection() }

// PageSize is the number of cards a page move skips: a viewport's worth of
// rows for multi-column layouts, a viewport's worth of cards for lists.
func (e *Engine) PageSize() int {
	return e.ColumnsCount() * clampPerView(e.cfg.CardsPerView)
}

// ContentSize returns the extent covered by the last arrangement. Auto
// dimensions count as the step to the next card.
func (e *Engine) ContentSize() (width, height float64) {
	for i := range e.positions {
		r := Bounds(e.positions, i)
		if r.X+r.Width > width {
			width = r.X + r.Width
		}
		if r.Y+r.Height > height {
			height = r.Y + r.Height
		}
	}
	return width, height
}

// Bounds resolves the rectangle of positions[i]. An Auto dimension extends to
// the start of the next card along that axis; the last card gets the same
// extent as its predecessor's step, or zero for a single card.
func Bounds(positions []Position, i int) Rect {
	p := positions[i]
	r := Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
	if p.AutoWidth() {
		r.Width = autoExtent(positions, i, func(q Position) float64 { return q.X })
	}
	if p.AutoHeight() {
		r.Height = autoExtent(positions, i, func(q Position) float64 { return q.Y })
	}
	return r
}

func autoExtent(positions []Position, i int, coord func(Position) float64) float64 {
	if i+1 < len(positions) {
		if d := coord(positions[i+1]) - coord(positions[i]); d > 0 {
			return d
		}
	}
	if i > 0 {
		if d := coord(positions[i]) - coord(positions[i-1]); d > 0 {
			return d
		}
	}
	return 0
}
