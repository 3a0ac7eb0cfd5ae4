package plugin

import tea "github.com/charmbracelet/bubbletea"

// Plugin defines the interface for all cardview plugins.
type Plugin interface {
	ID() string
	Name() string
	Init(ctx *Context) error
	Start() tea.Cmd
	Stop()
	Update(msg tea.Msg) (Plugin, tea.Cmd)
	View(width, height int) string
	IsFocused() bool
	SetFocused(bool)
	Commands() []Command
	FocusContext() string
}

// Category represents a logical grouping of commands for the help view.
type Category string

const (
	CategoryNavigation Category = "Navigation"
	CategoryActions    Category = "Actions"
	CategoryView       Category = "View"
	CategorySystem     Category = "System"
)

// Command represents a keybinding command exposed by a plugin.
type Command struct {
	ID       string   // Unique identifier (e.g., "open-card")
	Name     string   // Short name for footer (e.g., "Open")
	Category Category // Logical grouping for help display
	Context  string   // Activation context
	Priority int      // Footer display priority: 1=highest, 0=default (treated as 99)
}

// FooterPriority returns the effective priority, lower first.
func (c Command) FooterPriority() int {
	if c.Priority <= 0 {
		return 99
	}
	return c.Priority
}

// OpenFileMsg requests opening a file in an external editor.
// Sent by plugins, handled by app to exec the editor process.
type OpenFileMsg struct {
	Editor string // Editor command (e.g., "vim", "code")
	Path   string // File path to open
}

// EditorClosedMsg is delivered to all plugins after the editor exits.
type EditorClosedMsg struct {
	Path string
	Err  error
}

// PluginFocusedMsg is sent to a plugin when it becomes the active plugin.
type PluginFocusedMsg struct{}

// ContentSizeMsg tells plugins the size of the area they render into. The app
// sends it before notifying the resize service.
type ContentSizeMsg struct {
	Width  int
	Height int
}
