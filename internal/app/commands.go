package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/cardview/internal/msg"
	"github.com/marcus/cardview/internal/plugin"
)

// Message types for tea.Cmd
type (
	// TickMsg is sent on each clock tick.
	TickMsg time.Time

	// ToastMsg displays a temporary message.
	ToastMsg = msg.ToastMsg

	// ErrorMsg represents an error condition.
	ErrorMsg = msg.ErrorMsg
)

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// PluginFocused returns a command that sends PluginFocusedMsg.
func PluginFocused() tea.Cmd {
	return func() tea.Msg {
		return plugin.PluginFocusedMsg{}
	}
}
