// Package backend defines the contract a platform implementation satisfies to
// host windows created through package window.
//
// A backend turns Attributes into a live native window, pumps the native event
// queue into event values, and enumerates monitors. Exactly one backend is
// used per builder: the process default chosen at build time, or one injected
// with window.Builder.WithBackend.
package backend

import (
	"errors"

	"github.com/1broseidon/winkit/event"
)

var (
	// ErrUnsupported is returned when a backend cannot honor a requested
	// option or operation.
	ErrUnsupported = errors.New("not supported by this backend")
	// ErrNoDisplay is returned when no display server can be reached.
	ErrNoDisplay = errors.New("no display available")
)

// Backend creates windows and enumerates monitors.
type Backend interface {
	// Create materializes a native window. attrs always carries resolved
	// dimensions.
	Create(attrs Attributes, platform PlatformSpecific) (Window, error)
	// Monitors returns a fresh snapshot of the connected monitors.
	Monitors() []Monitor
	// PrimaryMonitor returns the monitor the system designates as primary.
	PrimaryMonitor() Monitor
}

// Window is a live native window owned by exactly one window.Window.
//
// Setters must be no-ops and getters must report ok=false once the native
// window is gone. Only CreateProxy's result may be used from other goroutines.
type Window interface {
	SetTitle(title string)
	Show()
	Hide()
	Position() (x, y int, ok bool)
	SetPosition(x, y int)
	InnerSize() (width, height uint32, ok bool)
	OuterSize() (width, height uint32, ok bool)
	SetInnerSize(width, height uint32)

	// PollEvent dequeues the next event without blocking.
	PollEvent() (event.Event, bool)
	// WaitEvent blocks until an event is queued or a proxy wakes the loop,
	// in which case it returns event.Awakened.
	WaitEvent() event.Event
	// PendingEvents is the number of events that can be dequeued without
	// blocking.
	PendingEvents() int

	CreateProxy() Proxy
	// SetResizeCallback installs fn, or removes the callback when fn is nil.
	// fn runs synchronously on the goroutine pumping events.
	SetResizeCallback(fn func(width, height uint32))
	SetCursor(cursor MouseCursor)
	HiDPIFactor() float32
	SetCursorPosition(x, y int) error
	SetCursorState(state CursorState) error
	NativeHandles() NativeHandles

	// Destroy releases the native window. It is idempotent.
	Destroy()
}

// Proxy wakes a window's blocked event loop. Implementations must be safe
// for concurrent use and must treat wakeups after Destroy as no-ops.
type Proxy interface {
	WakeupEventLoop()
}

// Monitor is a backend monitor handle from an enumeration snapshot.
type Monitor interface {
	Name() (string, bool)
	NativeIdentifier() NativeMonitorID
	// Dimensions is the current mode in physical pixels.
	Dimensions() (width, height uint32)
}

// NativeHandles exposes raw platform handles for interop with other native
// libraries. The values are only valid while the owning window is open.
type NativeHandles struct {
	Platform string
	// Display identifies the display connection, e.g. the X display name.
	Display string
	// Window is the native window identifier.
	Window uintptr
}
