package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Cards      saveCardsConfig      `json:"cards"`
	Layout     LayoutConfig         `json:"layout"`
	Navigation saveNavigationConfig `json:"navigation"`
	Resize     saveResizeConfig     `json:"resize"`
	Keymap     KeymapConfig         `json:"keymap"`
	UI         UIConfig             `json:"ui"`
}

type saveCardsConfig struct {
	DBPath          string `json:"dbPath,omitempty"`
	IncludeArchived bool   `json:"includeArchived"`
	SortBy          string `json:"sortBy,omitempty"`
	Watch           bool   `json:"watch"`
	WatchWindow     string `json:"watchWindow,omitempty"`
}

type saveNavigationConfig struct {
	SmoothScroll bool   `json:"smoothScroll"`
	ResyncDelay  string `json:"resyncDelay,omitempty"`
}

type saveResizeConfig struct {
	Debounce string `json:"debounce,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Cards: saveCardsConfig{
			DBPath:          cfg.Cards.DBPath,
			IncludeArchived: cfg.Cards.IncludeArchived,
			SortBy:          cfg.Cards.SortBy,
			Watch:           cfg.Cards.Watch,
			WatchWindow:     cfg.Cards.WatchWindow.String(),
		},
		Layout: cfg.Layout,
		Navigation: saveNavigationConfig{
			SmoothScroll: cfg.Navigation.SmoothScroll,
			ResyncDelay:  cfg.Navigation.ResyncDelay.String(),
		},
		Resize: saveResizeConfig{
			Debounce: cfg.Resize.Debounce.String(),
		},
		Keymap: cfg.Keymap,
		UI:     cfg.UI,
	}
}

// Save writes the config to ~/.config/cardview/config.json
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg *Config) error {
	if path == "" {
		return fmt.Errorf("save config: no config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	managed, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Keys this package does not manage survive a save.
	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(existing, &merged)
	}
	if merged == nil {
		merged = make(map[string]json.RawMessage)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(managed, &fields); err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	for k, v := range fields {
		merged[k] = v
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
