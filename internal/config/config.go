package config

import (
	"time"

	"github.com/marcus/cardview/internal/cards"
	"github.com/marcus/cardview/internal/layout"
)

// defaultDataDir holds the cards database unless cards.dbPath says otherwise.
const defaultDataDir = "~/.local/share/cardview"

// Config is the root configuration structure.
type Config struct {
	Cards      CardsConfig      `json:"cards"`
	Layout     LayoutConfig     `json:"layout"`
	Navigation NavigationConfig `json:"navigation"`
	Resize     ResizeConfig     `json:"resize"`
	Keymap     KeymapConfig     `json:"keymap"`
	UI         UIConfig         `json:"ui"`
}

// CardsConfig configures the card source.
type CardsConfig struct {
	DBPath          string        `json:"dbPath"`
	IncludeArchived bool          `json:"includeArchived"`
	SortBy          string        `json:"sortBy"` // updated, created, title
	Watch           bool          `json:"watch"`  // reload when the database changes on disk
	WatchWindow     time.Duration `json:"watchWindow"`
}

// LayoutConfig configures the layout engine. Lengths are terminal cells.
type LayoutConfig struct {
	Mode               string          `json:"mode"`
	Columns            int             `json:"columns"`
	MinCardWidth       int             `json:"minCardWidth"`
	CardGap            int             `json:"cardGap"`
	CardHeight         int             `json:"cardHeight"`
	AlignCardHeight    bool            `json:"alignCardHeight"`
	CardsPerView       int             `json:"cardsPerView"`
	Direction          string          `json:"direction"`
	ContentLengthLimit int             `json:"contentLengthLimit"`
	Estimator          EstimatorConfig `json:"estimator"`
}

// EstimatorConfig tunes the masonry height estimate.
type EstimatorConfig struct {
	BaseHeight int     `json:"baseHeight"`
	LineHeight int     `json:"lineHeight"`
	CharWidth  float64 `json:"charWidth"`
}

// NavigationConfig configures keyboard focus movement.
type NavigationConfig struct {
	SmoothScroll bool          `json:"smoothScroll"`
	ResyncDelay  time.Duration `json:"resyncDelay"`
}

// ResizeConfig configures the shared resize service.
type ResizeConfig struct {
	Debounce time.Duration `json:"debounce"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool   `json:"showFooter"`
	Theme      string `json:"theme"`
}

// Default returns the default configuration.
func Default() *Config {
	lc := layout.DefaultConfig()
	return &Config{
		Cards: CardsConfig{
			DBPath:      cards.DefaultDBPath(defaultDataDir),
			SortBy:      "updated",
			Watch:       true,
			WatchWindow: 250 * time.Millisecond,
		},
		Layout: LayoutConfig{
			Mode:               string(lc.Mode),
			Columns:            lc.Columns,
			MinCardWidth:       0,
			CardGap:            int(lc.CardGap),
			CardHeight:         int(lc.CardHeight),
			AlignCardHeight:    lc.AlignCardHeight,
			CardsPerView:       lc.CardsPerView,
			Direction:          string(lc.Direction),
			ContentLengthLimit: lc.ContentLengthLimit,
			Estimator: EstimatorConfig{
				BaseHeight: int(lc.Estimator.BaseHeight),
				LineHeight: int(lc.Estimator.LineHeight),
				CharWidth:  lc.Estimator.CharWidth,
			},
		},
		Navigation: NavigationConfig{
			SmoothScroll: true,
			ResyncDelay:  100 * time.Millisecond,
		},
		Resize: ResizeConfig{
			Debounce: 50 * time.Millisecond,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter: true,
			Theme:      "default",
		},
	}
}

// Validate clamps out-of-range values back to their defaults.
func (c *Config) Validate() error {
	def := Default()

	if !layout.Mode(c.Layout.Mode).Valid() {
		c.Layout.Mode = def.Layout.Mode
	}
	if !layout.Direction(c.Layout.Direction).Valid() {
		c.Layout.Direction = def.Layout.Direction
	}
	if c.Layout.Columns < 0 {
		c.Layout.Columns = def.Layout.Columns
	}
	if c.Layout.Columns == 0 && c.Layout.MinCardWidth <= 0 {
		c.Layout.Columns = def.Layout.Columns
	}
	if c.Layout.CardGap < 0 {
		c.Layout.CardGap = 0
	}
	if c.Layout.CardsPerView <= 0 {
		c.Layout.CardsPerView = def.Layout.CardsPerView
	}
	if c.Layout.Estimator.CharWidth <= 0 {
		c.Layout.Estimator.CharWidth = def.Layout.Estimator.CharWidth
	}
	if c.Layout.Estimator.LineHeight <= 0 {
		c.Layout.Estimator.LineHeight = def.Layout.Estimator.LineHeight
	}
	if c.Layout.Estimator.BaseHeight < 0 {
		c.Layout.Estimator.BaseHeight = def.Layout.Estimator.BaseHeight
	}

	switch c.Cards.SortBy {
	case "updated", "created", "title":
	default:
		c.Cards.SortBy = def.Cards.SortBy
	}
	if c.Cards.WatchWindow <= 0 {
		c.Cards.WatchWindow = def.Cards.WatchWindow
	}
	if c.Navigation.ResyncDelay <= 0 {
		c.Navigation.ResyncDelay = def.Navigation.ResyncDelay
	}
	if c.Resize.Debounce <= 0 {
		c.Resize.Debounce = def.Resize.Debounce
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	return nil
}

// Engine converts the layout section to the engine's configuration.
func (l LayoutConfig) Engine() layout.Config {
	return layout.Config{
		Mode:               layout.Mode(l.Mode),
		Columns:            l.Columns,
		MinCardWidth:       float64(l.MinCardWidth),
		CardGap:            float64(l.CardGap),
		CardHeight:         float64(l.CardHeight),
		AlignCardHeight:    l.AlignCardHeight,
		CardsPerView:       l.CardsPerView,
		Direction:          layout.Direction(l.Direction),
		ContentLengthLimit: l.ContentLengthLimit,
		Estimator: layout.EstimatorConfig{
			BaseHeight: float64(l.Estimator.BaseHeight),
			LineHeight: float64(l.Estimator.LineHeight),
			CharWidth:  l.Estimator.CharWidth,
		},
	}
}
