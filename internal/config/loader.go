package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/cardview"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary. Pointers distinguish
// "absent" from "zero" so absent fields keep their defaults.
type rawConfig struct {
	Cards      rawCardsConfig      `json:"cards"`
	Layout     rawLayoutConfig     `json:"layout"`
	Navigation rawNavigationConfig `json:"navigation"`
	Resize     rawResizeConfig     `json:"resize"`
	Keymap     KeymapConfig        `json:"keymap"`
	UI         rawUIConfig         `json:"ui"`
}

type rawCardsConfig struct {
	DBPath          string `json:"dbPath"`
	IncludeArchived *bool  `json:"includeArchived"`
	SortBy          string `json:"sortBy"`
	Watch           *bool  `json:"watch"`
	WatchWindow     string `json:"watchWindow"`
}

type rawLayoutConfig struct {
	Mode               string             `json:"mode"`
	Columns            *int               `json:"columns"`
	MinCardWidth       *int               `json:"minCardWidth"`
	CardGap            *int               `json:"cardGap"`
	CardHeight         *int               `json:"cardHeight"`
	AlignCardHeight    *bool              `json:"alignCardHeight"`
	CardsPerView       *int               `json:"cardsPerView"`
	Direction          string             `json:"direction"`
	ContentLengthLimit *int               `json:"contentLengthLimit"`
	Estimator          rawEstimatorConfig `json:"estimator"`
}

type rawEstimatorConfig struct {
	BaseHeight *int     `json:"baseHeight"`
	LineHeight *int     `json:"lineHeight"`
	CharWidth  *float64 `json:"charWidth"`
}

type rawNavigationConfig struct {
	SmoothScroll *bool  `json:"smoothScroll"`
	ResyncDelay  string `json:"resyncDelay"`
}

type rawResizeConfig struct {
	Debounce string `json:"debounce"`
}

type rawUIConfig struct {
	ShowFooter *bool  `json:"showFooter"`
	Theme      string `json:"theme"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/cardview/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
	}
	if path == "" {
		cfg.Cards.DBPath = ExpandPath(cfg.Cards.DBPath)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Cards.DBPath = ExpandPath(cfg.Cards.DBPath)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	mergeConfig(cfg, &raw)
	cfg.Cards.DBPath = ExpandPath(cfg.Cards.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Cards
	if raw.Cards.DBPath != "" {
		cfg.Cards.DBPath = raw.Cards.DBPath
	}
	if raw.Cards.IncludeArchived != nil {
		cfg.Cards.IncludeArchived = *raw.Cards.IncludeArchived
	}
	if raw.Cards.SortBy != "" {
		cfg.Cards.SortBy = raw.Cards.SortBy
	}
	if raw.Cards.Watch != nil {
		cfg.Cards.Watch = *raw.Cards.Watch
	}
	mergeDuration(&cfg.Cards.WatchWindow, raw.Cards.WatchWindow, "cards.watchWindow")

	// Layout
	l := &raw.Layout
	if l.Mode != "" {
		cfg.Layout.Mode = l.Mode
	}
	if l.Direction != "" {
		cfg.Layout.Direction = l.Direction
	}
	mergeInt(&cfg.Layout.Columns, l.Columns)
	mergeInt(&cfg.Layout.MinCardWidth, l.MinCardWidth)
	mergeInt(&cfg.Layout.CardGap, l.CardGap)
	mergeInt(&cfg.Layout.CardHeight, l.CardHeight)
	mergeInt(&cfg.Layout.CardsPerView, l.CardsPerView)
	mergeInt(&cfg.Layout.ContentLengthLimit, l.ContentLengthLimit)
	if l.AlignCardHeight != nil {
		cfg.Layout.AlignCardHeight = *l.AlignCardHeight
	}
	mergeInt(&cfg.Layout.Estimator.BaseHeight, l.Estimator.BaseHeight)
	mergeInt(&cfg.Layout.Estimator.LineHeight, l.Estimator.LineHeight)
	if l.Estimator.CharWidth != nil {
		cfg.Layout.Estimator.CharWidth = *l.Estimator.CharWidth
	}

	// Navigation
	if raw.Navigation.SmoothScroll != nil {
		cfg.Navigation.SmoothScroll = *raw.Navigation.SmoothScroll
	}
	mergeDuration(&cfg.Navigation.ResyncDelay, raw.Navigation.ResyncDelay, "navigation.resyncDelay")

	// Resize
	mergeDuration(&cfg.Resize.Debounce, raw.Resize.Debounce, "resize.debounce")

	// Keymap
	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.Theme != "" {
		cfg.UI.Theme = raw.UI.Theme
	}
}

func mergeInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func mergeDuration(dst *time.Duration, s, field string) {
	if s == "" {
		return
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		slog.Warn("config: invalid duration, keeping default", "field", field, "value", s)
		return
	}
	*dst = d
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// Dir returns the directory holding the config file.
func Dir() string {
	p := ConfigPath()
	if p == "" {
		return ""
	}
	return filepath.Dir(p)
}
