package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/cardview/internal/styles"
	"github.com/marcus/cardview/internal/ui"
)

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show warning if terminal is too small
	if m.width < minWidth || m.height < minHeight {
		msg := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.Muted.Render(msg))
	}

	width, contentHeight := m.contentSize()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent(width, contentHeight))
	if m.showFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	bg := b.String()
	if m.showHelp {
		return m.renderHelpOverlay(bg)
	}
	return bg
}

// renderHeader renders the title bar with the current toast on the right.
func (m Model) renderHeader() string {
	title := styles.Title.Render("cardview")

	var status string
	if m.statusMsg != "" {
		toastStyle := styles.ToastSuccess
		if m.statusIsError {
			toastStyle = styles.ToastError
		}
		status = toastStyle.Render(m.statusMsg)
	}

	spacing := max(m.width-lipgloss.Width(title)-lipgloss.Width(status), 1)
	header := title + strings.Repeat(" ", spacing) + status
	return lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).MaxHeight(headerHeight).Render(header)
}

func (m Model) renderContent(width, height int) string {
	p := m.ActivePlugin()
	if p == nil {
		msg := "No plugins loaded"
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styles.Muted.Render(msg))
	}
	if height == 0 {
		return ""
	}

	content := p.View(width, height)
	// Height() only pads short content; MaxHeight() also truncates tall content.
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
}

// renderFooter renders the bottom bar with context-aware key hints.
func (m Model) renderFooter() string {
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(m.help.ShortHelpView(m.keyMap().ShortHelp()))
}

// renderHelpOverlay renders the help modal over content.
func (m Model) renderHelpOverlay(content string) string {
	var b strings.Builder
	b.WriteString(styles.MenuTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keyMap().FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("Press ? or esc to close"))

	modal := styles.MenuBox.Render(b.String())
	return ui.OverlayModal(content, modal, m.width, m.height)
}
