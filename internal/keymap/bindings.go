package keymap

// Binding maps a key to a command in a context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Contexts.
const (
	ContextGlobal    = "global"
	ContextCards     = "cards"
	ContextCardsMenu = "cards-menu"
)

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "q", Command: "quit", Context: ContextGlobal},
		{Key: "ctrl+c", Command: "quit", Context: ContextGlobal},
		{Key: "?", Command: "toggle-help", Context: ContextGlobal},
		{Key: "ctrl+h", Command: "toggle-footer", Context: ContextGlobal},
		{Key: "r", Command: "refresh", Context: ContextGlobal},

		// Card board
		{Key: "k", Command: "focus-up", Context: ContextCards},
		{Key: "up", Command: "focus-up", Context: ContextCards},
		{Key: "j", Command: "focus-down", Context: ContextCards},
		{Key: "down", Command: "focus-down", Context: ContextCards},
		{Key: "h", Command: "focus-left", Context: ContextCards},
		{Key: "left", Command: "focus-left", Context: ContextCards},
		{Key: "l", Command: "focus-right", Context: ContextCards},
		{Key: "right", Command: "focus-right", Context: ContextCards},
		{Key: "pgup", Command: "page-up", Context: ContextCards},
		{Key: "ctrl+u", Command: "page-up", Context: ContextCards},
		{Key: "pgdown", Command: "page-down", Context: ContextCards},
		{Key: "ctrl+d", Command: "page-down", Context: ContextCards},
		{Key: "home", Command: "focus-start", Context: ContextCards},
		{Key: "g", Command: "focus-start", Context: ContextCards},
		{Key: "end", Command: "focus-end", Context: ContextCards},
		{Key: "G", Command: "focus-end", Context: ContextCards},
		{Key: "enter", Command: "open-card", Context: ContextCards},
		{Key: " ", Command: "open-menu", Context: ContextCards},
		{Key: ".", Command: "open-menu", Context: ContextCards},
		{Key: "esc", Command: "blur", Context: ContextCards},
		{Key: "tab", Command: "focus", Context: ContextCards},
		{Key: "m", Command: "cycle-layout", Context: ContextCards},
		{Key: "o", Command: "toggle-direction", Context: ContextCards},
		{Key: "n", Command: "new-card", Context: ContextCards},
		{Key: "p", Command: "toggle-pin", Context: ContextCards},
		{Key: "a", Command: "toggle-archive", Context: ContextCards},
		{Key: "A", Command: "toggle-show-archived", Context: ContextCards},

		// Context menu
		{Key: "k", Command: "menu-up", Context: ContextCardsMenu},
		{Key: "up", Command: "menu-up", Context: ContextCardsMenu},
		{Key: "j", Command: "menu-down", Context: ContextCardsMenu},
		{Key: "down", Command: "menu-down", Context: ContextCardsMenu},
		{Key: "enter", Command: "menu-select", Context: ContextCardsMenu},
		{Key: "esc", Command: "menu-close", Context: ContextCardsMenu},
		{Key: "q", Command: "menu-close", Context: ContextCardsMenu},
	}
}
