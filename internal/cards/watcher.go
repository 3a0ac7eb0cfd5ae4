package cards

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultCoalesceWindow = 250 * time.Millisecond

// ChangedMsg is sent when the database changed on disk and the coalesce
// window closed.
type ChangedMsg struct {
	Files []string // base names that changed during the window
}

// coalescer batches rapid watch events into single change notifications.
// Events arriving within the window of each other are reported once, after
// the window closes with no further events.
type coalescer struct {
	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	window  time.Duration
	out     chan<- ChangedMsg
	closed  bool
}

func newCoalescer(window time.Duration, out chan<- ChangedMsg) *coalescer {
	if window <= 0 {
		window = defaultCoalesceWindow
	}
	return &coalescer{
		pending: make(map[string]struct{}),
		window:  window,
		out:     out,
	}
}

// add queues a changed file and restarts the window.
func (c *coalescer) add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.pending[name] = struct{}{}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, c.flush)
}

// flush sends under the lock so it can never race close.
func (c *coalescer) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	files := make([]string, 0, len(c.pending))
	for name := range c.pending {
		files = append(files, name)
	}
	clear(c.pending)
	c.timer = nil

	select {
	case c.out <- ChangedMsg{Files: files}:
	default:
		// A change is already queued; the reader reloads everything anyway.
	}
}

// close cancels the pending window and closes the output channel, releasing
// any reader blocked on it.
func (c *coalescer) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	close(c.out)
}

// Watcher reports changes to a SQLite database file, including its WAL and
// journal side files.
type Watcher struct {
	fs        *fsnotify.Watcher
	coalescer *coalescer
	events    chan ChangedMsg
	done      chan struct{}
	names     map[string]bool
	logger    *slog.Logger
	closeOnce sync.Once
}

// NewWatcher starts watching the directory holding dbPath.
func NewWatcher(dbPath string, window time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(dbPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(dbPath), err)
	}

	base := filepath.Base(dbPath)
	events := make(chan ChangedMsg, 1)
	w := &Watcher{
		fs:        fw,
		coalescer: newCoalescer(window, events),
		events:    events,
		done:      make(chan struct{}),
		names: map[string]bool{
			base:              true,
			base + "-wal":     true,
			base + "-journal": true,
		},
		logger: logger,
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.coalescer.add(filepath.Base(ev.Name))
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("cards: watch error", "error", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !w.names[filepath.Base(ev.Name)] {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

// Events delivers coalesced change notifications. It is closed by Stop.
func (w *Watcher) Events() <-chan ChangedMsg { return w.events }

// Stop stops watching. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.closeOnce.Do(func() {
		close(w.done)
		w.coalescer.close()
		_ = w.fs.Close()
	})
}
