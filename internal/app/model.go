// Package app holds the root Bubble Tea model: it owns the plugin registry,
// routes keys through the keymap, and runs the external editor.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/cardview/internal/config"
	"github.com/marcus/cardview/internal/keymap"
	"github.com/marcus/cardview/internal/plugin"
	"github.com/marcus/cardview/internal/resize"
	"github.com/marcus/cardview/internal/styles"
)

const (
	headerHeight = 1
	footerHeight = 1

	minWidth  = 30
	minHeight = 8
)

// Model is the root Bubble Tea model for the cardview application.
type Model struct {
	// Configuration
	cfg *config.Config

	// Plugin management
	registry     *plugin.Registry
	activePlugin int

	// Shared services
	keymap        *keymap.Registry
	resize        *resize.Service
	activeContext string

	// UI state
	width, height int
	showHelp      bool
	showFooter    bool
	help          help.Model

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool

	// Error handling
	lastError error

	// Ready state
	ready bool
}

// New creates a new application model. The first registered plugin starts
// focused.
func New(reg *plugin.Registry, km *keymap.Registry, rs *resize.Service, cfg *config.Config) Model {
	h := help.New()
	h.Styles.ShortKey = styles.KeyHint
	h.Styles.ShortDesc = styles.Muted
	h.Styles.FullKey = styles.KeyHint
	h.Styles.FullDesc = styles.Muted

	m := Model{
		cfg:           cfg,
		registry:      reg,
		keymap:        km,
		resize:        rs,
		activeContext: keymap.ContextGlobal,
		showFooter:    cfg.UI.ShowFooter,
		help:          h,
	}
	if p := m.ActivePlugin(); p != nil {
		p.SetFocused(true)
		m.activeContext = p.FocusContext()
	}
	return m
}

// Init initializes the model and returns initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.registry.Start(), PluginFocused())
}

// ActivePlugin returns the currently active plugin.
func (m Model) ActivePlugin() plugin.Plugin {
	plugins := m.registry.Plugins()
	if len(plugins) == 0 {
		return nil
	}
	if m.activePlugin >= len(plugins) {
		return plugins[0]
	}
	return plugins[m.activePlugin]
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(msg string, duration time.Duration, isError bool) {
	m.statusMsg = msg
	m.statusExpiry = time.Now().Add(duration)
	m.statusIsError = isError
}

// ClearToast clears any expired toast message.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// contentSize is the area plugins render into.
func (m Model) contentSize() (int, int) {
	h := m.height - headerHeight
	if m.showFooter {
		h -= footerHeight
	}
	return m.width, max(h, 0)
}

func (m Model) keyMap() dynamicKeyMap {
	return dynamicKeyMap{km: m.keymap, plugin: m.ActivePlugin(), context: m.activeContext}
}

func (m *Model) updateContext() {
	if p := m.ActivePlugin(); p != nil {
		m.activeContext = p.FocusContext()
	} else {
		m.activeContext = keymap.ContextGlobal
	}
}
