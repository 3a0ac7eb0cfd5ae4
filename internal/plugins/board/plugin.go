// Package board provides the card board: stored notes arranged by the layout
// engine and navigated with the keyboard.
package board

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/cardview/internal/cards"
	"github.com/marcus/cardview/internal/keymap"
	"github.com/marcus/cardview/internal/layout"
	"github.com/marcus/cardview/internal/navigator"
	"github.com/marcus/cardview/internal/plugin"
	"github.com/marcus/cardview/internal/resize"
	"github.com/marcus/cardview/internal/state"
)

const (
	pluginID   = "board"
	pluginName = "board"

	// headerHeight is the status line above the card panel.
	headerHeight = 1
)

// cardsLoadedMsg carries a fresh read of the store.
type cardsLoadedMsg struct {
	Notes []cards.Note
	Err   error
}

// noteChangedMsg reports the result of a store mutation.
type noteChangedMsg struct {
	ID    string
	Toast string
	Err   error
}

// editorReadyMsg carries a note path written for the external editor.
type editorReadyMsg struct {
	ID   string
	Path string
	Err  error
}

// watchStartedMsg delivers the database watcher once it is running.
type watchStartedMsg struct {
	Watcher *cards.Watcher
	Err     error
}

// Plugin implements the card board.
type Plugin struct {
	ctx     *plugin.Context
	focused bool
	logger  *slog.Logger

	store    *cards.Store
	watcher  *cards.Watcher
	storeErr error

	engine *layout.Engine
	nav    *navigator.Navigator
	panel  *panel

	// Card state
	notes           []cards.Note
	cards           []layout.Card
	fingerprint     uint64
	loaded          bool
	loadErr         error
	includeArchived bool
	sortBy          cards.SortBy

	// Presentation state driven by the navigator
	markerID string // card drawn with the focus border
	activeID string // card last opened in the editor

	// Scroll offset along the engine's scroll direction
	scroll       int
	scrollTarget int
	scrollGen    uint64

	menu *contextMenu

	// Pending external edit, read back on EditorClosedMsg
	pendingEditID   string
	pendingEditPath string

	// Commands queued by navigator callbacks during Update
	pending []tea.Cmd
}

// New creates the board plugin.
func New() *Plugin {
	return &Plugin{panel: &panel{}}
}

// ID returns the plugin identifier.
func (p *Plugin) ID() string { return pluginID }

// Name returns the plugin display name.
func (p *Plugin) Name() string { return pluginName }

// Init initializes the plugin with context.
func (p *Plugin) Init(ctx *plugin.Context) error {
	p.ctx = ctx
	p.logger = ctx.Logger
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.notes = nil
	p.cards = nil
	p.fingerprint = 0
	p.loaded = false
	p.loadErr = nil
	p.menu = nil
	p.scroll, p.scrollTarget = 0, 0

	cfg := ctx.Config
	p.includeArchived = cfg.Cards.IncludeArchived
	p.sortBy = cards.SortBy(cfg.Cards.SortBy)

	lc := cfg.Layout.Engine()
	if mode := layout.Mode(state.GetLayoutMode()); mode.Valid() {
		lc.Mode = mode
	}
	if dir := layout.Direction(state.GetListDirection()); dir.Valid() {
		lc.Direction = dir
	}
	p.engine = layout.NewEngine(lc, p.logger)
	p.nav = navigator.New(p.engine, p, p,
		navigator.WithSmoothScroll(cfg.Navigation.SmoothScroll),
		navigator.WithResyncDelay(cfg.Navigation.ResyncDelay),
		navigator.WithLogger(p.logger),
	)

	// The card focused at last exit is treated as active so the first
	// Focus lands on it.
	p.activeID = state.GetFocusedCardID()
	p.markerID = ""

	if ctx.Resize != nil {
		p.panel.attached = true
		ctx.Resize.Observe(pluginID, p.panel)
	}

	store, err := cards.NewStore(cfg.Cards.DBPath)
	if err != nil {
		// Plugin still renders; the error is shown in place of cards.
		p.logger.Warn("cards: store init failed", "path", cfg.Cards.DBPath, "error", err)
		p.store = nil
		p.storeErr = err
		return nil
	}
	p.store = store
	p.storeErr = nil
	return nil
}

// Start begins plugin operation.
func (p *Plugin) Start() tea.Cmd {
	if p.store == nil {
		return nil
	}
	cmds := []tea.Cmd{p.loadCards()}
	if p.ctx.Config.Cards.Watch {
		cmds = append(cmds, p.startWatcher())
	}
	return tea.Batch(cmds...)
}

// Stop cleans up plugin resources.
func (p *Plugin) Stop() {
	if p.ctx != nil && p.ctx.Resize != nil {
		p.ctx.Resize.Unobserve(pluginID)
	}
	p.panel.attached = false
	if p.markerID != "" {
		if err := state.SetFocusedCardID(p.markerID); err != nil {
			p.logger.Debug("cards: save focused card failed", "error", err)
		}
	}
	if p.watcher != nil {
		p.watcher.Stop()
		p.watcher = nil
	}
	if p.store != nil {
		p.store.Close()
		p.store = nil
	}
}

// IsFocused returns whether the plugin is focused.
func (p *Plugin) IsFocused() bool { return p.focused }

// SetFocused sets the focus state.
func (p *Plugin) SetFocused(f bool) { p.focused = f }

// FocusContext returns the keymap context for the current mode.
func (p *Plugin) FocusContext() string {
	if p.menu != nil {
		return keymap.ContextCardsMenu
	}
	return keymap.ContextCards
}

// Update handles messages.
func (p *Plugin) Update(msg tea.Msg) (plugin.Plugin, tea.Cmd) {
	var cmds []tea.Cmd

	if p.nav != nil && p.nav.Update(msg) {
		return p, p.flush()
	}

	switch msg := msg.(type) {
	case plugin.ContentSizeMsg:
		p.panel.width = msg.Width
		p.panel.height = max(0, msg.Height-headerHeight)

	case resize.Event:
		if msg.ID == pluginID {
			p.relayout()
		}

	case plugin.PluginFocusedMsg:
		if p.loaded {
			p.nav.Focus()
		}

	case cardsLoadedMsg:
		cmds = append(cmds, p.applyLoaded(msg))

	case noteChangedMsg:
		if msg.Err != nil {
			p.logger.Error("cards: update failed", "id", msg.ID, "error", msg.Err)
			cmds = append(cmds, p.showError(msg.Err))
		} else if msg.Toast != "" {
			cmds = append(cmds, p.toast(msg.Toast))
		}
		cmds = append(cmds, p.loadCards())

	case editorReadyMsg:
		cmds = append(cmds, p.openEditor(msg))

	case plugin.EditorClosedMsg:
		if msg.Path != "" && msg.Path == p.pendingEditPath {
			cmds = append(cmds, p.readBackEdit(msg.Err))
		}

	case watchStartedMsg:
		if msg.Err != nil {
			p.logger.Warn("cards: watcher unavailable", "error", msg.Err)
			break
		}
		p.watcher = msg.Watcher
		cmds = append(cmds, listenForChanges(p.watcher))

	case cards.ChangedMsg:
		p.logger.Debug("cards: database changed", "files", msg.Files)
		cmds = append(cmds, p.loadCards(), listenForChanges(p.watcher))

	case scrollTickMsg:
		cmds = append(cmds, p.stepScroll(msg))

	case tea.KeyMsg:
		cmds = append(cmds, p.handleKey(msg))
	}

	cmds = append(cmds, p.flush())
	return p, tea.Batch(cmds...)
}

// handleKey dispatches a key through the keymap for the current context.
func (p *Plugin) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.ctx.Keymap == nil {
		return nil
	}
	command, ok := p.ctx.Keymap.Lookup(msg.String(), p.FocusContext())
	if !ok {
		return nil
	}
	if p.menu != nil {
		return p.handleMenuCommand(command)
	}

	switch command {
	case "focus-up":
		p.nav.MoveFocus(navigator.Up)
	case "focus-down":
		p.nav.MoveFocus(navigator.Down)
	case "focus-left":
		p.nav.MoveFocus(navigator.Left)
	case "focus-right":
		p.nav.MoveFocus(navigator.Right)
	case "page-up":
		p.nav.MoveFocusPage(-1)
	case "page-down":
		p.nav.MoveFocusPage(1)
	case "focus-start":
		p.nav.MoveFocusToStart()
	case "focus-end":
		p.nav.MoveFocusToEnd()
	case "open-card":
		p.nav.OpenFocusedCard()
	case "open-menu":
		p.nav.OpenContextMenu()
	case "blur":
		p.nav.Blur()
	case "focus":
		p.nav.Focus()
	case "cycle-layout":
		return p.cycleLayout()
	case "toggle-direction":
		return p.toggleDirection()
	case "new-card":
		return p.createCard()
	case "toggle-pin":
		return p.togglePin(p.focusedCardID())
	case "toggle-archive":
		return p.toggleArchive(p.focusedCardID())
	case "toggle-show-archived":
		p.includeArchived = !p.includeArchived
		return p.loadCards()
	case "refresh":
		return p.loadCards()
	}
	return nil
}

// flush returns and clears the commands queued by navigator callbacks.
func (p *Plugin) flush() tea.Cmd {
	if len(p.pending) == 0 {
		return nil
	}
	cmds := p.pending
	p.pending = nil
	return tea.Batch(cmds...)
}

func (p *Plugin) queue(cmd tea.Cmd) {
	if cmd != nil {
		p.pending = append(p.pending, cmd)
	}
}

func (p *Plugin) focusedCardID() string {
	idx := p.nav.FocusedIndex()
	if !p.nav.IsFocused() || idx < 0 || idx >= len(p.cards) {
		return ""
	}
	return p.cards[idx].ID
}

// Commands returns the available commands.
func (p *Plugin) Commands() []plugin.Command {
	return []plugin.Command{
		// Board
		{ID: "open-card", Name: "Open", Category: plugin.CategoryActions, Context: keymap.ContextCards, Priority: 1},
		{ID: "open-menu", Name: "Menu", Category: plugin.CategoryActions, Context: keymap.ContextCards, Priority: 2},
		{ID: "new-card", Name: "New", Category: plugin.CategoryActions, Context: keymap.ContextCards, Priority: 2},
		{ID: "cycle-layout", Name: "Layout", Category: plugin.CategoryView, Context: keymap.ContextCards, Priority: 3},
		{ID: "toggle-direction", Name: "Direction", Category: plugin.CategoryView, Context: keymap.ContextCards, Priority: 5},
		{ID: "toggle-pin", Name: "Pin", Category: plugin.CategoryActions, Context: keymap.ContextCards, Priority: 4},
		{ID: "toggle-archive", Name: "Archive", Category: plugin.CategoryActions, Context: keymap.ContextCards, Priority: 5},
		{ID: "toggle-show-archived", Name: "Archived", Category: plugin.CategoryView, Context: keymap.ContextCards, Priority: 6},
		{ID: "focus-up", Name: "Up", Category: plugin.CategoryNavigation, Context: keymap.ContextCards, Priority: 8},
		{ID: "focus-down", Name: "Down", Category: plugin.CategoryNavigation, Context: keymap.ContextCards, Priority: 8},
		{ID: "focus-left", Name: "Left", Category: plugin.CategoryNavigation, Context: keymap.ContextCards, Priority: 8},
		{ID: "focus-right", Name: "Right", Category: plugin.CategoryNavigation, Context: keymap.ContextCards, Priority: 8},
		{ID: "page-up", Name: "Page up", Category: plugin.CategoryNavigation, Context: keymap.ContextCards, Priority: 9},
		{ID: "page-down", Name: "Page down", Category: plugin.CategoryNavigation, Context: keymap.ContextCards, Priority: 9},
		{ID: "focus-start", Name: "First", Category: plugin.CategoryNavigation, Context: keymap.ContextCards, Priority: 9},
		{ID: "focus-end", Name: "Last", Category: plugin.CategoryNavigation, Context: keymap.ContextCards, Priority: 9},
		{ID: "focus", Name: "Focus", Category: plugin.CategoryNavigation, Context: keymap.ContextCards, Priority: 7},
		{ID: "blur", Name: "Blur", Category: plugin.CategoryNavigation, Context: keymap.ContextCards, Priority: 7},
		// Context menu
		{ID: "menu-up", Name: "Up", Category: plugin.CategoryNavigation, Context: keymap.ContextCardsMenu, Priority: 3},
		{ID: "menu-down", Name: "Down", Category: plugin.CategoryNavigation, Context: keymap.ContextCardsMenu, Priority: 3},
		{ID: "menu-select", Name: "Select", Category: plugin.CategoryActions, Context: keymap.ContextCardsMenu, Priority: 1},
		{ID: "menu-close", Name: "Close", Category: plugin.CategoryNavigation, Context: keymap.ContextCardsMenu, Priority: 2},
	}
}
