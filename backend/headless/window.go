package headless

import (
	"fmt"
	"sync"

	"github.com/1broseidon/winkit/backend"
	"github.com/1broseidon/winkit/event"
)

// Simulated decoration sizes used by OuterSize.
const (
	FrameBorder    = 1
	TitleBarHeight = 24
)

// Window is an in-memory window. Inject, Resize and the proxy may be used
// from any goroutine; the backend.Window methods follow the usual
// single-goroutine contract.
type Window struct {
	id    uintptr
	attrs backend.Attributes

	mu        sync.Mutex
	cond      *sync.Cond
	queue     []event.Event
	destroyed bool
	wakeups   int

	title       string
	visible     bool
	x, y        int
	width       uint32
	height      uint32
	hidpi       float32
	allowGrab   bool
	cursor      backend.MouseCursor
	cursorState backend.CursorState
	cursorX     int
	cursorY     int
	resizeCb    func(width, height uint32)
}

var _ backend.Window = (*Window)(nil)

func newWindow(id uintptr, attrs backend.Attributes, hidpi float32, allowGrab bool) *Window {
	w := &Window{
		id:        id,
		attrs:     attrs,
		title:     attrs.Title,
		visible:   attrs.Visible,
		hidpi:     hidpi,
		allowGrab: allowGrab,
	}
	w.cond = sync.NewCond(&w.mu)
	w.width, w.height = attrs.ClampSize(attrs.Dimensions.Width, attrs.Dimensions.Height)
	return w
}

// Attributes returns the attributes the window was created with.
func (w *Window) Attributes() backend.Attributes {
	return w.attrs.Clone()
}

// Inject appends ev to the event queue and wakes a blocked WaitEvent.
// It reports false when the window is already destroyed.
func (w *Window) Inject(ev event.Event) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return false
	}
	w.queue = append(w.queue, ev)
	w.cond.Broadcast()
	return true
}

// Resize simulates the user resizing the window: the size is clamped, the
// resize callback runs synchronously on the calling goroutine and a Resized
// event is queued.
func (w *Window) Resize(width, height uint32) {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	width, height = w.attrs.ClampSize(width, height)
	w.width, w.height = width, height
	cb := w.resizeCb
	w.queue = append(w.queue, event.Resized{Width: width, Height: height})
	w.cond.Broadcast()
	w.mu.Unlock()

	if cb != nil {
		cb(width, height)
	}
}

// Title returns the current title.
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Visible reports whether the window is shown.
func (w *Window) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// Cursor returns the current cursor shape.
func (w *Window) Cursor() backend.MouseCursor {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursor
}

// CursorState returns the current cursor state.
func (w *Window) CursorState() backend.CursorState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursorState
}

// CursorPosition returns the last position set with SetCursorPosition.
func (w *Window) CursorPosition() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursorX, w.cursorY
}

// Destroyed reports whether Destroy was called.
func (w *Window) Destroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}

// Wakeups counts proxy wakeups delivered to the window.
func (w *Window) Wakeups() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wakeups
}

// HasResizeCallback reports whether a resize callback is installed.
func (w *Window) HasResizeCallback() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.resizeCb != nil
}

func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return
	}
	w.title = title
}

func (w *Window) Show() { w.setVisible(true) }

func (w *Window) Hide() { w.setVisible(false) }

func (w *Window) setVisible(v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return
	}
	w.visible = v
}

func (w *Window) Position() (int, int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return 0, 0, false
	}
	return w.x, w.y, true
}

func (w *Window) SetPosition(x, y int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed || (w.x == x && w.y == y) {
		return
	}
	w.x, w.y = x, y
	w.queue = append(w.queue, event.Moved{X: x, Y: y})
	w.cond.Broadcast()
}

func (w *Window) InnerSize() (uint32, uint32, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return 0, 0, false
	}
	return w.width, w.height, true
}

func (w *Window) OuterSize() (uint32, uint32, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return 0, 0, false
	}
	if !w.attrs.Decorations || w.attrs.Fullscreen() {
		return w.width, w.height, true
	}
	return w.width + 2*FrameBorder, w.height + TitleBarHeight + 2*FrameBorder, true
}

// SetInnerSize resizes like Resize does.
func (w *Window) SetInnerSize(width, height uint32) {
	w.Resize(width, height)
}

func (w *Window) PollEvent() (event.Event, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dequeueLocked()
}

func (w *Window) WaitEvent() event.Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	for len(w.queue) == 0 && !w.destroyed {
		w.cond.Wait()
	}
	if ev, ok := w.dequeueLocked(); ok {
		return ev
	}
	return event.Destroyed{}
}

func (w *Window) dequeueLocked() (event.Event, bool) {
	if len(w.queue) == 0 {
		return nil, false
	}
	ev := w.queue[0]
	w.queue[0] = nil
	w.queue = w.queue[1:]
	return ev, true
}

func (w *Window) PendingEvents() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queue)
}

func (w *Window) CreateProxy() backend.Proxy {
	return &proxy{w: w}
}

func (w *Window) SetResizeCallback(fn func(width, height uint32)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return
	}
	w.resizeCb = fn
}

func (w *Window) SetCursor(cursor backend.MouseCursor) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return
	}
	w.cursor = cursor
}

func (w *Window) HiDPIFactor() float32 {
	return w.hidpi
}

func (w *Window) SetCursorPosition(x, y int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return nil
	}
	if x < 0 || y < 0 || x >= int(w.width) || y >= int(w.height) {
		return fmt.Errorf("headless: cursor position (%d, %d) outside %dx%d", x, y, w.width, w.height)
	}
	w.cursorX, w.cursorY = x, y
	return nil
}

func (w *Window) SetCursorState(state backend.CursorState) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return nil
	}
	switch state {
	case backend.CursorNormal, backend.CursorHide:
	case backend.CursorGrab:
		if !w.allowGrab {
			return fmt.Errorf("cursor grab: %w", backend.ErrUnsupported)
		}
	default:
		return fmt.Errorf("unknown cursor state %d", int(state))
	}
	w.cursorState = state
	return nil
}

func (w *Window) NativeHandles() backend.NativeHandles {
	return backend.NativeHandles{Platform: "headless", Window: w.id}
}

func (w *Window) Destroy() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.queue = nil
	w.resizeCb = nil
	w.cond.Broadcast()
}

type proxy struct {
	w *Window
}

func (p *proxy) WakeupEventLoop() {
	w := p.w
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return
	}
	w.wakeups++
	w.queue = append(w.queue, event.Awakened{})
	w.cond.Broadcast()
}
