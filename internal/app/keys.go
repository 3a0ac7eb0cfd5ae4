package app

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/marcus/cardview/internal/keymap"
	"github.com/marcus/cardview/internal/plugin"
)

// globalHelp lists the app-level commands shown in help, in display order.
var globalHelp = []struct {
	id   string
	desc string
}{
	{"toggle-help", "help"},
	{"refresh", "refresh"},
	{"toggle-footer", "footer"},
	{"quit", "quit"},
}

// dynamicKeyMap adapts the help bindings to the active plugin and its
// current focus context.
type dynamicKeyMap struct {
	km      *keymap.Registry
	plugin  plugin.Plugin
	context string
}

// pluginBindings returns the active plugin's bindings for the current
// context, highest footer priority first.
func (d dynamicKeyMap) pluginBindings() []key.Binding {
	if d.plugin == nil || d.km == nil {
		return nil
	}
	var cmds []plugin.Command
	for _, c := range d.plugin.Commands() {
		if c.Context == d.context {
			cmds = append(cmds, c)
		}
	}
	sort.SliceStable(cmds, func(i, j int) bool {
		return cmds[i].FooterPriority() < cmds[j].FooterPriority()
	})

	keys := make([]key.Binding, 0, len(cmds))
	for _, c := range cmds {
		if b := d.km.HelpBinding(c.ID, d.context, c.Name); b.Enabled() {
			keys = append(keys, b)
		}
	}
	return keys
}

func (d dynamicKeyMap) globalBindings() []key.Binding {
	if d.km == nil {
		return nil
	}
	keys := make([]key.Binding, 0, len(globalHelp))
	for _, g := range globalHelp {
		if b := d.km.HelpBinding(g.id, keymap.ContextGlobal, g.desc); b.Enabled() {
			keys = append(keys, b)
		}
	}
	return keys
}

// ShortHelp is rendered in the footer.
func (d dynamicKeyMap) ShortHelp() []key.Binding {
	return append(d.pluginBindings(), d.globalBindings()...)
}

// FullHelp is rendered in the help overlay, one column per group.
func (d dynamicKeyMap) FullHelp() [][]key.Binding {
	byCategory := make(map[plugin.Category][]key.Binding)
	var order []plugin.Category
	if d.plugin != nil && d.km != nil {
		for _, c := range d.plugin.Commands() {
			if c.Context != d.context {
				continue
			}
			b := d.km.HelpBinding(c.ID, d.context, c.Name)
			if !b.Enabled() {
				continue
			}
			if _, ok := byCategory[c.Category]; !ok {
				order = append(order, c.Category)
			}
			byCategory[c.Category] = append(byCategory[c.Category], b)
		}
	}

	groups := make([][]key.Binding, 0, len(order)+1)
	for _, cat := range order {
		groups = append(groups, byCategory[cat])
	}
	if global := d.globalBindings(); len(global) > 0 {
		groups = append(groups, global)
	}
	return groups
}
