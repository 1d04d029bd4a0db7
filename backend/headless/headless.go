// Package headless is an in-memory backend. Windows have no native
// counterpart; tests and display-less hosts drive them by injecting events
// and simulating resizes.
package headless

import (
	"fmt"
	"sync"

	"github.com/1broseidon/winkit/backend"
)

// Monitor is a simulated monitor.
type Monitor struct {
	ID     uint32
	Label  string
	Width  uint32
	Height uint32
}

var _ backend.Monitor = Monitor{}

func (m Monitor) Name() (string, bool) {
	return m.Label, m.Label != ""
}

func (m Monitor) NativeIdentifier() backend.NativeMonitorID {
	return backend.NativeMonitorID{Kind: backend.MonitorIDNumeric, Numeric: m.ID}
}

func (m Monitor) Dimensions() (uint32, uint32) {
	return m.Width, m.Height
}

// DefaultMonitor is the single monitor of a Backend created without options.
var DefaultMonitor = Monitor{ID: 0, Label: "HEADLESS-0", Width: 1920, Height: 1080}

// Option configures a Backend.
type Option func(*Backend)

// WithMonitors replaces the simulated monitor list. The first monitor is
// primary unless WithPrimary says otherwise.
func WithMonitors(monitors ...Monitor) Option {
	return func(b *Backend) {
		b.monitors = append([]Monitor(nil), monitors...)
	}
}

// WithPrimary selects the primary monitor by index.
func WithPrimary(index int) Option {
	return func(b *Backend) {
		b.primary = index
	}
}

// WithHiDPIFactor sets the scale factor reported by new windows.
func WithHiDPIFactor(factor float32) Option {
	return func(b *Backend) {
		b.hidpi = factor
	}
}

// WithCreateError makes every Create call fail with err.
func WithCreateError(err error) Option {
	return func(b *Backend) {
		b.createErr = err
	}
}

// WithoutCursorGrab makes windows reject backend.CursorGrab.
func WithoutCursorGrab() Option {
	return func(b *Backend) {
		b.noGrab = true
	}
}

// Backend is a backend.Backend whose windows live in memory.
type Backend struct {
	mu        sync.Mutex
	monitors  []Monitor
	primary   int
	hidpi     float32
	createErr error
	noGrab    bool
	windows   []*Window
	last      *Window
	nextID    uintptr
}

var _ backend.Backend = (*Backend)(nil)

// New creates a headless backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		monitors: []Monitor{DefaultMonitor},
		hidpi:    1.0,
		nextID:   1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Create builds an in-memory window positioned at the origin, or covering
// the requested monitor when fullscreen.
func (b *Backend) Create(attrs backend.Attributes, platform backend.PlatformSpecific) (backend.Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.createErr != nil {
		return nil, b.createErr
	}
	if attrs.Dimensions == nil {
		return nil, fmt.Errorf("headless: unresolved dimensions")
	}
	if attrs.Monitor != nil {
		if _, ok := attrs.Monitor.(Monitor); !ok {
			return nil, fmt.Errorf("headless: monitor %v belongs to another backend: %w",
				attrs.Monitor.NativeIdentifier(), backend.ErrUnsupported)
		}
	}

	w := newWindow(b.nextID, attrs.Clone(), b.hidpi, !b.noGrab)
	b.nextID++
	b.windows = append(liveWindows(b.windows), w)
	b.last = w
	return w, nil
}

// Monitors returns a copy of the simulated monitor list.
func (b *Backend) Monitors() []backend.Monitor {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]backend.Monitor, 0, len(b.monitors))
	for _, m := range b.monitors {
		out = append(out, m)
	}
	return out
}

// PrimaryMonitor returns the configured primary monitor.
func (b *Backend) PrimaryMonitor() backend.Monitor {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.monitors) == 0 {
		return DefaultMonitor
	}
	i := b.primary
	if i < 0 || i >= len(b.monitors) {
		i = 0
	}
	return b.monitors[i]
}

// SetMonitors swaps the monitor list, as if displays were hot-plugged.
func (b *Backend) SetMonitors(monitors ...Monitor) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.monitors = append([]Monitor(nil), monitors...)
}

// Windows returns the windows that have not been destroyed.
func (b *Backend) Windows() []*Window {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.windows = liveWindows(b.windows)
	return append([]*Window(nil), b.windows...)
}

// LastWindow returns the most recently created window, destroyed or not, or
// nil.
func (b *Backend) LastWindow() *Window {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

// liveWindows drops destroyed windows in place.
func liveWindows(windows []*Window) []*Window {
	live := windows[:0]
	for _, w := range windows {
		if !w.Destroyed() {
			live = append(live, w)
		}
	}
	clear(windows[len(live):])
	return live
}
