// Package resize turns raw size-change notifications for observed elements
// into debounced, per-id resize events delivered through the Bubble Tea loop.
package resize

import (
	"log/slog"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is the quiet period before a resize is reported.
const DefaultDelay = 50 * time.Millisecond

// threshold is the change, in units, a dimension must exceed to count.
const threshold = 1

// Element is anything with a measurable size. Detached elements are not
// observed.
type Element interface {
	Size() (width, height float64)
	Attached() bool
}

// Size is an integer-rounded element size.
type Size struct {
	Width  int
	Height int
}

// Event is emitted once per debounce window for an id whose size changed.
type Event struct {
	ID     string
	Width  int
	Height int
}

// tickMsg fires when an id's debounce window closes.
type tickMsg struct {
	id  string
	gen uint64
}

type record struct {
	element Element
	size    Size   // last reported size
	gen     uint64 // generation of the pending timer, 0 = none
}

// Service tracks observed elements by logical id. It is owned by the top-level
// model and shared with every surface that needs size events; each surface
// registers under its own id.
//
// Service is not safe for concurrent use; all calls happen on the Bubble Tea
// update goroutine.
type Service struct {
	records map[string]*record
	delay   time.Duration
	logger  *slog.Logger
	nextGen uint64
}

// Option configures a Service.
type Option func(*Service)

// WithDelay sets the debounce window. Non-positive values keep the default.
func WithDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty Service.
func New(opts ...Option) *Service {
	s := &Service{
		records: make(map[string]*record),
		delay:   DefaultDelay,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Delay returns the debounce window.
func (s *Service) Delay() time.Duration { return s.delay }

// Observe registers element under id and records its current size.
// Observing an id that is already registered does nothing, as does
// observing a nil or detached element.
func (s *Service) Observe(id string, element Element) {
	if _, ok := s.records[id]; ok {
		return
	}
	if element == nil || !element.Attached() {
		s.logger.Debug("resize: element not attached, skipping observe", "id", id)
		return
	}
	s.records[id] = &record{
		element: element,
		size:    measure(element),
	}
}

// Unobserve stops tracking id and cancels its pending timer.
func (s *Service) Unobserve(id string) {
	delete(s.records, id)
}

// Disconnect stops tracking everything and cancels every pending timer.
func (s *Service) Disconnect() {
	clear(s.records)
}

// Observed reports whether id is registered.
func (s *Service) Observed(id string) bool {
	_, ok := s.records[id]
	return ok
}

// ElementSize returns the last reported size for id.
func (s *Service) ElementSize(id string) (Size, bool) {
	r, ok := s.records[id]
	if !ok {
		return Size{}, false
	}
	return r.size, true
}

// Notify handles a raw size-change notification for id. When the element's
// size moved by more than one unit from the last reported size, the id's
// debounce timer is restarted and its tick command returned; otherwise Notify
// returns nil.
func (s *Service) Notify(id string) tea.Cmd {
	r, ok := s.records[id]
	if !ok {
		return nil
	}
	if !r.element.Attached() {
		s.logger.Debug("resize: notification for detached element", "id", id)
		return nil
	}
	if !changed(r.size, measure(r.element)) {
		return nil
	}

	s.nextGen++
	r.gen = s.nextGen
	gen := r.gen
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return tickMsg{id: id, gen: gen}
	})
}

// NotifyAll sends a raw notification for every observed id.
func (s *Service) NotifyAll() tea.Cmd {
	var cmds []tea.Cmd
	for id := range s.records {
		if cmd := s.Notify(id); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Update consumes the service's own tick messages. When a tick is still the
// latest for its id, the size record is updated and a command delivering the
// Event is returned. Ticks superseded by a later notification, or for ids
// removed in the meantime, are dropped.
func (s *Service) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(tickMsg)
	if !ok {
		return nil
	}
	r, ok := s.records[tick.id]
	if !ok || r.gen == 0 || r.gen != tick.gen {
		return nil
	}
	r.gen = 0

	size := measure(r.element)
	if !r.element.Attached() || !changed(r.size, size) {
		return nil
	}
	r.size = size

	s.logger.Debug("resize: emitting", "id", tick.id, "width", size.Width, "height", size.Height)
	ev := Event{ID: tick.id, Width: size.Width, Height: size.Height}
	return func() tea.Msg { return ev }
}

// Pending reports whether id has a debounce timer running.
func (s *Service) Pending(id string) bool {
	r, ok := s.records[id]
	return ok && r.gen != 0
}

func measure(e Element) Size {
	w, h := e.Size()
	return Size{Width: int(math.Round(w)), Height: int(math.Round(h))}
}

func changed(prev, next Size) bool {
	return abs(next.Width-prev.Width) > threshold || abs(next.Height-prev.Height) > threshold
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
