// Package cli implements the cardview command-line interface.
//
// The root command runs the card board TUI. Subcommands arrange stored cards
// headlessly (layout) and manage the config file (config).
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// The main package calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	dbPath     string
	debug      bool
	logFile    string

	logOut io.Closer // open --log-file handle
}

// closeLog closes the --log-file handle, if one is open.
func (o *rootOptions) closeLog() error {
	if o.logOut == nil {
		return nil
	}
	err := o.logOut.Close()
	o.logOut = nil
	return err
}

// Execute runs the cardview CLI.
func Execute(ctx context.Context) error {
	root, opts := newRootCommand(os.Stdout, os.Stderr)
	defer opts.closeLog()
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	root, _ := newRootCommand(out, errOut)
	return root
}

func newRootCommand(out, errOut io.Writer) (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}
	var mode string

	root := &cobra.Command{
		Use:          "cardview",
		Short:        "Browse notes as a keyboard-driven card board",
		Long:         `cardview shows stored notes as cards in a grid, masonry or list layout and lets you move between them, open them in $EDITOR, pin and archive them from the keyboard.`,
		Version:      effectiveVersion(version),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if opts.debug {
				level = charmlog.DebugLevel
			}
			w, closer, err := openLogWriter(opts.logFile, cmd.Name() == "cardview", errOut)
			if err != nil {
				return err
			}
			opts.logOut = closer
			cmd.SetContext(withLogger(cmd.Context(), newLogger(w, level)))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.closeLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd.Context(), opts, mode)
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate(fmt.Sprintf("cardview %s\ncommit: %s\nbuilt: %s\n", effectiveVersion(version), commit, date))

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to config file (default ~/.config/cardview/config.json)")
	pf.StringVar(&opts.dbPath, "db", "", "path to the cards database")
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	pf.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	root.Flags().StringVarP(&mode, "mode", "m", "", "initial layout mode (grid, masonry, list)")

	root.AddCommand(newLayoutCmd(opts))
	root.AddCommand(newConfigCmd(opts))

	return root, opts
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	// Fall back to VCS info
	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}
	ver := "devel+" + revision
	if len(ver) > 20 {
		ver = ver[:20]
	}
	if dirty {
		ver += "+dirty"
	}
	return ver
}
