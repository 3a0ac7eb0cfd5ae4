package board

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/cardview/internal/layout"
	"github.com/marcus/cardview/internal/styles"
)

// menuTitleWidth caps the card title shown in the menu header.
const menuTitleWidth = 24

// noteRef is the note state a menu needs to label its toggles.
type noteRef struct {
	Pinned   bool
	Archived bool
}

type menuAction string

const (
	actionOpen      menuAction = "open"
	actionCopyTitle menuAction = "copy-title"
	actionCopyID    menuAction = "copy-id"
	actionPin       menuAction = "pin"
	actionArchive   menuAction = "archive"
	actionDelete    menuAction = "delete"
)

type menuItem struct {
	action menuAction
	label  string
}

// contextMenu is the per-card action popup. x and y are panel coordinates.
type contextMenu struct {
	cardID string
	title  string
	x, y   int
	cursor int
	items  []menuItem
}

func newContextMenu(card layout.Card, note noteRef, x, y int) *contextMenu {
	pin, archive := "Pin", "Archive"
	if note.Pinned {
		pin = "Unpin"
	}
	if note.Archived {
		archive = "Unarchive"
	}
	return &contextMenu{
		cardID: card.ID,
		title:  card.Title,
		x:      x,
		y:      y,
		items: []menuItem{
			{actionOpen, "Open in editor"},
			{actionCopyTitle, "Copy title"},
			{actionCopyID, "Copy ID"},
			{actionPin, pin},
			{actionArchive, archive},
			{actionDelete, "Delete"},
		},
	}
}

func (m *contextMenu) move(delta int) {
	n := len(m.items)
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

func (m *contextMenu) selected() menuAction {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return ""
	}
	return m.items[m.cursor].action
}

// handleMenuCommand runs a command while the menu is open.
func (p *Plugin) handleMenuCommand(command string) tea.Cmd {
	switch command {
	case "menu-up":
		p.menu.move(-1)
	case "menu-down":
		p.menu.move(1)
	case "menu-close":
		p.menu = nil
	case "menu-select":
		menu := p.menu
		p.menu = nil
		return p.runMenuAction(menu.cardID, menu.title, menu.selected())
	}
	return nil
}

func (p *Plugin) runMenuAction(id, title string, action menuAction) tea.Cmd {
	switch action {
	case actionOpen:
		if idx := p.indexOf(id); idx >= 0 {
			if path, ok := p.FileFromCard(p.cards[idx]); ok {
				p.OpenFile(path, p.cards[idx])
			}
		}
	case actionCopyTitle:
		return p.copyToClipboard("title", title)
	case actionCopyID:
		return p.copyToClipboard("ID", id)
	case actionPin:
		return p.togglePin(id)
	case actionArchive:
		return p.toggleArchive(id)
	case actionDelete:
		return p.deleteCard(id)
	}
	return nil
}

// renderMenu draws the menu box.
func (m *contextMenu) render() string {
	var b strings.Builder
	b.WriteString(styles.MenuTitle.Render(ansi.Truncate(m.title, menuTitleWidth, "…")))
	for i, item := range m.items {
		b.WriteString("\n")
		if i == m.cursor {
			b.WriteString(styles.MenuItemSelected.Render("> " + item.label))
		} else {
			b.WriteString(styles.MenuItem.Render("  " + item.label))
		}
	}
	return styles.MenuBox.Render(b.String())
}
