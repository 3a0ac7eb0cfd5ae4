package plugin

import (
	"log/slog"

	"github.com/marcus/cardview/internal/config"
	"github.com/marcus/cardview/internal/keymap"
	"github.com/marcus/cardview/internal/resize"
)

// Context carries the shared services a plugin receives at Init.
type Context struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Keymap     *keymap.Registry
	Resize     *resize.Service
}
