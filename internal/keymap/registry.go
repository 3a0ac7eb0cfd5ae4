// Package keymap resolves key presses to command IDs per focus context and
// builds help bindings for the footer.
package keymap

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
)

// Registry holds the active bindings. Lookups try the focus context first and
// fall back to the global context.
type Registry struct {
	byContext map[string]map[string]string // context -> key -> command
	commands  map[string]map[string]bool   // context -> known commands
}

// NewRegistry creates a registry loaded with DefaultBindings.
func NewRegistry() *Registry {
	r := &Registry{
		byContext: make(map[string]map[string]string),
		commands:  make(map[string]map[string]bool),
	}
	for _, b := range DefaultBindings() {
		r.Bind(b)
	}
	return r
}

// Bind adds or replaces a binding.
func (r *Registry) Bind(b Binding) {
	keys, ok := r.byContext[b.Context]
	if !ok {
		keys = make(map[string]string)
		r.byContext[b.Context] = keys
	}
	keys[b.Key] = b.Command

	cmds, ok := r.commands[b.Context]
	if !ok {
		cmds = make(map[string]bool)
		r.commands[b.Context] = cmds
	}
	cmds[b.Command] = true
}

// ApplyOverrides binds each key to its command in every context that knows
// the command. Overrides naming unknown commands are returned.
func (r *Registry) ApplyOverrides(overrides map[string]string) []string {
	var unknown []string
	for k, cmd := range overrides {
		applied := false
		for ctx, cmds := range r.commands {
			if cmds[cmd] {
				r.byContext[ctx][k] = cmd
				applied = true
			}
		}
		if !applied {
			unknown = append(unknown, cmd)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// Lookup returns the command bound to k in context, falling back to global.
func (r *Registry) Lookup(k, context string) (string, bool) {
	if cmd, ok := r.byContext[context][k]; ok {
		return cmd, true
	}
	if context == ContextGlobal {
		return "", false
	}
	cmd, ok := r.byContext[ContextGlobal][k]
	return cmd, ok
}

// KeysFor returns the keys bound to command in context, sorted with
// single-character keys first.
func (r *Registry) KeysFor(command, context string) []string {
	var keys []string
	for k, cmd := range r.byContext[context] {
		if cmd == command {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// HelpBinding builds a bubbles key binding for command, described by desc.
// The binding is disabled when nothing is bound to the command.
func (r *Registry) HelpBinding(command, context, desc string) key.Binding {
	keys := r.KeysFor(command, context)
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(displayKey(keys[0]), desc),
	)
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
