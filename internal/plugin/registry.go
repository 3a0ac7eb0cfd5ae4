package plugin

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Registry owns the plugins and their lifecycle.
type Registry struct {
	ctx     *Context
	plugins []Plugin
	byID    map[string]Plugin
}

// NewRegistry creates an empty registry that initializes plugins with ctx.
func NewRegistry(ctx *Context) *Registry {
	return &Registry{ctx: ctx, byID: make(map[string]Plugin)}
}

// Register initializes p and adds it. A plugin whose Init fails is logged
// and skipped so the rest of the app still starts.
func (r *Registry) Register(p Plugin) error {
	if _, dup := r.byID[p.ID()]; dup {
		return fmt.Errorf("plugin %q already registered", p.ID())
	}
	if err := p.Init(r.ctx); err != nil {
		r.logger().Error("plugin init failed", "plugin", p.ID(), "error", err)
		return fmt.Errorf("init %s: %w", p.ID(), err)
	}
	r.plugins = append(r.plugins, p)
	r.byID[p.ID()] = p
	return nil
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []Plugin { return r.plugins }

// Get returns the plugin with id.
func (r *Registry) Get(id string) (Plugin, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Replace swaps in the value returned by a plugin's Update.
func (r *Registry) Replace(p Plugin) {
	for i, old := range r.plugins {
		if old.ID() == p.ID() {
			r.plugins[i] = p
			r.byID[p.ID()] = p
			return
		}
	}
}

// Start returns the batched start commands of every plugin.
func (r *Registry) Start() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.plugins))
	for _, p := range r.plugins {
		cmds = append(cmds, p.Start())
	}
	return tea.Batch(cmds...)
}

// Stop stops every plugin in reverse order.
func (r *Registry) Stop() {
	for i := len(r.plugins) - 1; i >= 0; i-- {
		r.plugins[i].Stop()
	}
}

func (r *Registry) logger() *slog.Logger {
	if r.ctx != nil && r.ctx.Logger != nil {
		return r.ctx.Logger
	}
	return slog.Default()
}
