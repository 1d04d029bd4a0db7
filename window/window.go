package window

import (
	"github.com/1broseidon/winkit/backend"
)

// CursorState and MouseCursor are defined by the backend contract.
type (
	CursorState = backend.CursorState
	MouseCursor = backend.MouseCursor
)

const (
	CursorNormal = backend.CursorNormal
	CursorHide   = backend.CursorHide
	CursorGrab   = backend.CursorGrab
)

// Window is a live native window. It is not safe for concurrent use; hand a
// Proxy to other goroutines instead.
//
// Once the window is closed, or its native counterpart vanished, setters do
// nothing and getters report ok=false.
type Window struct {
	native backend.Window
}

// New creates a window with default attributes on the default backend.
func New() (*Window, error) {
	return NewBuilder().Build()
}

// MustNew is New for programs that cannot continue without a window. It
// panics if creation fails.
func MustNew() *Window {
	w, err := New()
	if err != nil {
		panic(err)
	}
	return w
}

// Close destroys the native window. Proxies created from it become no-ops.
func (w *Window) Close() {
	if w.native == nil {
		return
	}
	w.native.Destroy()
	w.native = nil
}

// Closed reports whether Close was called.
func (w *Window) Closed() bool {
	return w.native == nil
}

func (w *Window) SetTitle(title string) {
	if w.native != nil {
		w.native.SetTitle(title)
	}
}

// Show makes the window visible. Backends without a visibility concept
// ignore it.
func (w *Window) Show() {
	if w.native != nil {
		w.native.Show()
	}
}

func (w *Window) Hide() {
	if w.native != nil {
		w.native.Hide()
	}
}

// Position returns the top-left corner of the window relative to the
// top-left of the desktop. Coordinates can be negative on monitors left of
// or above the primary one.
func (w *Window) Position() (x, y int, ok bool) {
	if w.native == nil {
		return 0, 0, false
	}
	return w.native.Position()
}

func (w *Window) SetPosition(x, y int) {
	if w.native != nil {
		w.native.SetPosition(x, y)
	}
}

// InnerSize returns the client-area size in points, excluding borders and
// title bar.
func (w *Window) InnerSize() (width, height uint32, ok bool) {
	if w.native == nil {
		return 0, 0, false
	}
	return w.native.InnerSize()
}

// InnerSizePoints is InnerSize.
func (w *Window) InnerSizePoints() (width, height uint32, ok bool) {
	return w.InnerSize()
}

// InnerSizePixels returns the client-area size in physical pixels: points
// multiplied by HiDPIFactor, truncated.
func (w *Window) InnerSizePixels() (width, height uint32, ok bool) {
	pw, ph, ok := w.InnerSize()
	if !ok {
		return 0, 0, false
	}
	factor := w.HiDPIFactor()
	return uint32(float32(pw) * factor), uint32(float32(ph) * factor), true
}

// OuterSize returns the window size including decorations.
func (w *Window) OuterSize() (width, height uint32, ok bool) {
	if w.native == nil {
		return 0, 0, false
	}
	return w.native.OuterSize()
}

// SetInnerSize requests a new client-area size. The backend may clamp it.
func (w *Window) SetInnerSize(width, height uint32) {
	if w.native != nil {
		w.native.SetInnerSize(width, height)
	}
}

// PollEvents returns an iterator over the events already queued.
func (w *Window) PollEvents() *PollIterator {
	return &PollIterator{w: w}
}

// WaitEvents returns an iterator whose Next blocks until an event arrives.
func (w *Window) WaitEvents() *WaitIterator {
	return &WaitIterator{w: w}
}

// CreateProxy returns a handle other goroutines can use to wake this
// window's event loop. A closed window yields a no-op proxy.
func (w *Window) CreateProxy() Proxy {
	if w.native == nil {
		return Proxy{}
	}
	return Proxy{p: w.native.CreateProxy()}
}

// SetResizeCallback installs fn, called synchronously by the backend while
// the window is being resized. A nil fn removes the callback.
func (w *Window) SetResizeCallback(fn func(width, height uint32)) {
	if w.native != nil {
		w.native.SetResizeCallback(fn)
	}
}

func (w *Window) SetCursor(cursor MouseCursor) {
	if w.native != nil {
		w.native.SetCursor(cursor)
	}
}

// HiDPIFactor is the ratio of physical pixels to points: 1.0 on normal
// displays, 2.0 on typical high-density ones.
func (w *Window) HiDPIFactor() float32 {
	if w.native == nil {
		return 1.0
	}
	return w.native.HiDPIFactor()
}

// SetCursorPosition moves the pointer to window-local coordinates. It
// returns ErrCursorPosition if the backend refused.
func (w *Window) SetCursorPosition(x, y int) error {
	if w.native == nil {
		return nil
	}
	if err := w.native.SetCursorPosition(x, y); err != nil {
		return ErrCursorPosition
	}
	return nil
}

// SetCursorState changes cursor visibility and confinement. The error
// explains why the backend refused.
func (w *Window) SetCursorState(state CursorState) error {
	if w.native == nil {
		return nil
	}
	return w.native.SetCursorState(state)
}

// NativeHandles exposes the platform's raw display and window handles for
// interop with native libraries. They are only valid until Close.
func (w *Window) NativeHandles() backend.NativeHandles {
	if w.native == nil {
		return backend.NativeHandles{}
	}
	return w.native.NativeHandles()
}

// Backend returns the backend window, or nil after Close.
func (w *Window) Backend() backend.Window {
	return w.native
}
