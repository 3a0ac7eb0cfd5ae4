package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/cardview/internal/app"
	"github.com/marcus/cardview/internal/config"
	"github.com/marcus/cardview/internal/keymap"
	"github.com/marcus/cardview/internal/layout"
	"github.com/marcus/cardview/internal/plugin"
	"github.com/marcus/cardview/internal/plugins/board"
	"github.com/marcus/cardview/internal/resize"
	"github.com/marcus/cardview/internal/state"
	"github.com/marcus/cardview/internal/styles"
)

// loadConfig reads the config file and applies the flag overrides.
func loadConfig(opts *rootOptions, mode string) (*config.Config, error) {
	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.Cards.DBPath = config.ExpandPath(opts.dbPath)
	}
	if mode != "" {
		if !layout.Mode(mode).Valid() {
			return nil, fmt.Errorf("unknown layout mode %q (want %s)", mode, modeNames())
		}
		cfg.Layout.Mode = mode
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func modeNames() string {
	names := make([]string, len(layout.Modes))
	for i, m := range layout.Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// runBoard starts the TUI and blocks until it exits.
func runBoard(ctx context.Context, opts *rootOptions, mode string) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts, mode)
	if err != nil {
		return err
	}

	if err := state.Init(); err != nil {
		logger.Warn("state init failed", "error", err)
	}
	// An explicit --mode wins over the mode saved from the last session.
	if mode != "" {
		if err := state.SetLayoutMode(mode); err != nil {
			logger.Warn("state save failed", "error", err)
		}
	}
	styles.ApplyTheme(cfg.UI.Theme)

	km := keymap.NewRegistry()
	for _, unknown := range km.ApplyOverrides(cfg.Keymap.Overrides) {
		logger.Warn("keymap override for unknown command", "command", unknown)
	}

	sl := slogger(logger)
	rs := resize.New(resize.WithDelay(cfg.Resize.Debounce), resize.WithLogger(sl))
	defer rs.Disconnect()

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.ConfigPath()
	}
	registry := plugin.NewRegistry(&plugin.Context{
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     sl,
		Keymap:     km,
		Resize:     rs,
	})
	if err := registry.Register(board.New()); err != nil {
		return err
	}
	defer registry.Stop()

	logger.Debug("starting", "db", cfg.Cards.DBPath, "mode", cfg.Layout.Mode)

	model := app.New(registry, km, rs, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
