package board

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/cardview/internal/cards"
	"github.com/marcus/cardview/internal/layout"
	"github.com/marcus/cardview/internal/msg"
	"github.com/marcus/cardview/internal/plugin"
	"github.com/marcus/cardview/internal/state"
)

const toastDuration = 2 * time.Second

// newCardContent seeds a card created from the board.
const newCardContent = "# New card\n\n"

// loadCards reads the store off the update loop.
func (p *Plugin) loadCards() tea.Cmd {
	store := p.store
	if store == nil {
		return nil
	}
	includeArchived := p.includeArchived
	return func() tea.Msg {
		notes, err := store.List(includeArchived)
		return cardsLoadedMsg{Notes: notes, Err: err}
	}
}

// applyLoaded swaps in a fresh read. Unchanged collections are ignored so the
// navigator only resyncs when cards were added, removed, or reordered.
func (p *Plugin) applyLoaded(m cardsLoadedMsg) tea.Cmd {
	if m.Err != nil {
		p.loadErr = m.Err
		p.logger.Error("cards: load failed", "error", m.Err)
		return nil
	}
	p.loadErr = nil

	notes := m.Notes
	cards.Sort(notes, p.sortBy)
	next := cards.FromNotes(notes)
	fp := cards.Fingerprint(next)

	first := !p.loaded
	p.loaded = true
	p.notes = notes
	if !first && fp == p.fingerprint {
		return nil
	}
	p.fingerprint = fp
	p.cards = next
	if p.menu != nil && p.indexOf(p.menu.cardID) < 0 {
		p.menu = nil
	}
	p.relayout()

	if first {
		if p.focused && len(p.cards) > 0 {
			p.nav.Focus()
		}
		return nil
	}
	return p.nav.CardsChanged()
}

func (p *Plugin) indexOf(id string) int {
	for i, c := range p.cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (p *Plugin) startWatcher() tea.Cmd {
	path := p.store.Path()
	window := p.ctx.Config.Cards.WatchWindow
	logger := p.logger
	return func() tea.Msg {
		w, err := cards.NewWatcher(path, window, logger)
		return watchStartedMsg{Watcher: w, Err: err}
	}
}

// listenForChanges waits for the next batch of database changes.
func listenForChanges(w *cards.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		changed, ok := <-w.Events()
		if !ok {
			return nil
		}
		return changed
	}
}

// editorCommand resolves the external editor.
func editorCommand() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return "vim"
}

// openEditor records the pending edit and asks the app to run the editor.
func (p *Plugin) openEditor(m editorReadyMsg) tea.Cmd {
	if m.Err != nil {
		return p.showError(m.Err)
	}
	p.pendingEditID = m.ID
	p.pendingEditPath = m.Path
	p.activeID = m.ID
	editor := editorCommand()
	path := m.Path
	return func() tea.Msg {
		return plugin.OpenFileMsg{Editor: editor, Path: path}
	}
}

// readBackEdit stores what the editor left in the temp file.
func (p *Plugin) readBackEdit(editErr error) tea.Cmd {
	id := p.pendingEditID
	path := p.pendingEditPath
	p.pendingEditID = ""
	p.pendingEditPath = ""

	store := p.store
	if id == "" || store == nil {
		return p.loadCards()
	}
	if editErr != nil {
		_ = os.Remove(path)
		return tea.Batch(p.showError(editErr), p.loadCards())
	}

	return func() tea.Msg {
		content, err := os.ReadFile(path)
		_ = os.Remove(path)
		if err != nil {
			return noteChangedMsg{ID: id, Err: err}
		}
		note, err := store.Get(id)
		if err != nil {
			return noteChangedMsg{ID: id, Err: err}
		}
		if note != nil && note.Content == string(content) {
			return noteChangedMsg{ID: id}
		}
		if err := store.UpdateContent(id, string(content)); err != nil {
			return noteChangedMsg{ID: id, Err: err}
		}
		return noteChangedMsg{ID: id, Toast: "Saved"}
	}
}

// createCard adds a card and opens it in the editor.
func (p *Plugin) createCard() tea.Cmd {
	store := p.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		note, err := store.Create("", newCardContent)
		if err != nil {
			return editorReadyMsg{Err: err}
		}
		path, err := store.NotePath(note.ID)
		return editorReadyMsg{ID: note.ID, Path: path, Err: err}
	}
}

func (p *Plugin) togglePin(id string) tea.Cmd {
	store := p.store
	if id == "" || store == nil {
		return nil
	}
	return func() tea.Msg {
		pinned, err := store.TogglePin(id)
		toast := "Unpinned"
		if pinned {
			toast = "Pinned"
		}
		return noteChangedMsg{ID: id, Toast: toast, Err: err}
	}
}

func (p *Plugin) toggleArchive(id string) tea.Cmd {
	store := p.store
	if id == "" || store == nil {
		return nil
	}
	return func() tea.Msg {
		archived, err := store.ToggleArchive(id)
		toast := "Unarchived"
		if archived {
			toast = "Archived"
		}
		return noteChangedMsg{ID: id, Toast: toast, Err: err}
	}
}

// deleteCard soft-deletes a card. The reload drops it from the board and the
// navigator resync clamps focus onto a neighbour.
func (p *Plugin) deleteCard(id string) tea.Cmd {
	store := p.store
	if id == "" || store == nil {
		return nil
	}
	return func() tea.Msg {
		return noteChangedMsg{ID: id, Toast: "Deleted", Err: store.Delete(id)}
	}
}

// cycleLayout switches to the next layout mode and remembers it.
func (p *Plugin) cycleLayout() tea.Cmd {
	next := p.engine.Config().Mode.Next()
	p.engine.SetMode(next)
	p.menu = nil
	p.scroll = 0
	p.relayout()
	if err := state.SetLayoutMode(string(next)); err != nil {
		p.logger.Debug("cards: save layout mode failed", "error", err)
	}
	return p.toast("Layout: " + string(next))
}

// toggleDirection flips the list scroll axis and remembers it.
func (p *Plugin) toggleDirection() tea.Cmd {
	cfg := p.engine.Config()
	if cfg.Direction == layout.Horizontal {
		cfg.Direction = layout.Vertical
	} else {
		cfg.Direction = layout.Horizontal
	}
	p.engine.SetConfig(cfg)
	p.menu = nil
	p.scroll = 0
	p.relayout()
	if err := state.SetListDirection(string(cfg.Direction)); err != nil {
		p.logger.Debug("cards: save list direction failed", "error", err)
	}
	if cfg.Mode != layout.ModeList {
		return p.toast("List direction: " + string(cfg.Direction) + " (used by list layout)")
	}
	return p.toast("List direction: " + string(cfg.Direction))
}

// copyToClipboard copies text and reports the result as a toast.
func (p *Plugin) copyToClipboard(label, text string) tea.Cmd {
	if text == "" {
		return p.toast("Nothing to copy")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return p.showError(fmt.Errorf("copy failed: %w", err))
	}
	return p.toast("Copied " + label)
}

func (p *Plugin) toast(text string) tea.Cmd {
	return msg.ShowToast(text, toastDuration)
}

func (p *Plugin) showError(err error) tea.Cmd {
	return msg.ShowError(err)
}
