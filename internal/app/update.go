package app

import (
	"os/exec"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/cardview/internal/plugin"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Resize ticks belong to the shared service; the events it emits are
	// forwarded to plugins like any other message.
	if m.resize != nil {
		if cmd := m.resize.Update(msg); cmd != nil {
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, m.resizeContent()

	case TickMsg:
		m.ClearToast()
		return m, tickCmd()

	case ToastMsg:
		m.ShowToast(msg.Message, msg.Duration, msg.IsError)
		return m, nil

	case ErrorMsg:
		m.lastError = msg.Err
		m.ShowToast("Error: "+msg.Err.Error(), 5*time.Second, true)
		return m, nil

	case plugin.OpenFileMsg:
		// Open file in editor using tea.ExecProcess
		path := msg.Path
		c := exec.Command(msg.Editor, path)
		return m, tea.ExecProcess(c, func(err error) tea.Msg {
			return plugin.EditorClosedMsg{Path: path, Err: err}
		})
	}

	// Forward other messages to ALL plugins (not just active)
	for _, p := range m.registry.Plugins() {
		next, cmd := p.Update(msg)
		m.registry.Replace(next)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.updateContext()

	return m, tea.Batch(cmds...)
}

// resizeContent tells plugins their new content area, then lets the resize
// service measure it.
func (m *Model) resizeContent() tea.Cmd {
	w, h := m.contentSize()
	var cmds []tea.Cmd
	for _, p := range m.registry.Plugins() {
		next, cmd := p.Update(plugin.ContentSizeMsg{Width: w, Height: h})
		m.registry.Replace(next)
		cmds = append(cmds, cmd)
	}
	if m.resize != nil {
		cmds = append(cmds, m.resize.NotifyAll())
	}
	return tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		command, _ := m.keymap.Lookup(msg.String(), m.activeContext)
		switch {
		case command == "quit" && msg.String() == "ctrl+c":
			return m, tea.Quit
		case msg.Type == tea.KeyEsc, command == "toggle-help", command == "quit":
			m.showHelp = false
		}
		return m, nil
	}

	command, _ := m.keymap.Lookup(msg.String(), m.activeContext)
	switch command {
	case "quit":
		return m, tea.Quit
	case "toggle-help":
		m.showHelp = true
		return m, nil
	case "toggle-footer":
		m.showFooter = !m.showFooter
		return m, m.resizeContent()
	}

	// Everything else goes to the active plugin
	p := m.ActivePlugin()
	if p == nil {
		return m, nil
	}
	next, cmd := p.Update(msg)
	m.registry.Replace(next)
	m.updateContext()
	return m, cmd
}
