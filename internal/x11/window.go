package x11

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/1broseidon/winkit/backend"
	"github.com/1broseidon/winkit/event"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const wakeupAtomName = "_WINKIT_WAKEUP"

const windowEventMask = xproto.EventMaskExposure |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskFocusChange

type atoms struct {
	wmProtocols    xproto.Atom
	wmDeleteWindow xproto.Atom
	wakeup         xproto.Atom
}

// nativeWindow is one top-level X window with its own connection, so the
// event stream never has to be demultiplexed between windows.
type nativeWindow struct {
	conn   *Connection
	id     xproto.Window
	attrs  backend.Attributes
	logger *slog.Logger
	hidpi  float32
	atoms  atoms
	target *wakeTarget

	// lookup turns a keycode into a keysym name.
	lookup func(mods uint16, code xproto.Keycode) string
	// origin reports the window origin in root coordinates.
	origin func() (x, y int, ok bool)

	queue    []event.Event
	resizeCb func(width, height uint32)
	width    uint32
	height   uint32
	x, y     int

	cursor      backend.MouseCursor
	cursorState backend.CursorState
	cursors     cursorCache

	// gone is set once the server destroyed the window or dropped the
	// connection; destroyed once Destroy ran.
	gone      bool
	destroyed bool
}

var _ backend.Window = (*nativeWindow)(nil)

func createWindow(conn *Connection, attrs backend.Attributes, platform backend.PlatformSpecific, hidpi float32, logger *slog.Logger) (*nativeWindow, error) {
	if attrs.Multitouch {
		return nil, fmt.Errorf("multitouch: %w", backend.ErrUnsupported)
	}

	c := conn.XUtil.Conn()
	screen := conn.XUtil.Screen()

	depth := screen.RootDepth
	visual := screen.RootVisual
	colormap := screen.DefaultColormap
	if attrs.Transparent {
		var ok bool
		depth, visual, ok = argbVisual(screen)
		if !ok {
			return nil, fmt.Errorf("transparency needs a 32-bit TrueColor visual: %w", backend.ErrUnsupported)
		}
		cmap, err := xproto.NewColormapId(c)
		if err != nil {
			return nil, err
		}
		if err := xproto.CreateColormapChecked(c, xproto.ColormapAllocNone, cmap, conn.Root, visual).Check(); err != nil {
			return nil, fmt.Errorf("failed to create colormap: %w", err)
		}
		colormap = cmap
	}

	width, height := attrs.ClampSize(attrs.Dimensions.Width, attrs.Dimensions.Height)
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	x, y := 0, 0
	if mon, ok := attrs.Monitor.(Monitor); ok {
		x, y = mon.X, mon.Y
	}

	wid, err := xproto.NewWindowId(c)
	if err != nil {
		return nil, err
	}

	// Value list order follows the bit positions of the mask (low to high):
	// back pixel, border pixel, event mask, colormap.
	err = xproto.CreateWindowChecked(
		c,
		depth,
		wid,
		conn.Root,
		int16(x), int16(y),
		uint16(width), uint16(height),
		0,
		xproto.WindowClassInputOutput,
		visual,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwEventMask|xproto.CwColormap,
		[]uint32{0, 0, windowEventMask, uint32(colormap)},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w := &nativeWindow{
		conn:   conn,
		id:     wid,
		attrs:  attrs,
		logger: logger,
		hidpi:  hidpi,
		width:  width,
		height: height,
		x:      x,
		y:      y,
	}
	w.lookup = func(mods uint16, code xproto.Keycode) string {
		return keybind.LookupString(conn.XUtil, mods, code)
	}
	w.origin = w.translateOrigin

	if err := w.setup(platform); err != nil {
		xproto.DestroyWindow(c, wid)
		return nil, err
	}

	w.target = &wakeTarget{conn: c, win: wid, atom: w.atoms.wakeup}

	if attrs.Visible {
		xwindow.New(conn.XUtil, wid).Map()
	}
	return w, nil
}

// setup sets the ICCCM/EWMH properties window managers read before mapping.
func (w *nativeWindow) setup(platform backend.PlatformSpecific) error {
	xu := w.conn.XUtil
	var err error

	if w.atoms.wmProtocols, err = w.conn.Atom("WM_PROTOCOLS"); err != nil {
		return err
	}
	if w.atoms.wmDeleteWindow, err = w.conn.Atom("WM_DELETE_WINDOW"); err != nil {
		return err
	}
	if w.atoms.wakeup, err = w.conn.Atom(wakeupAtomName); err != nil {
		return err
	}
	if err := icccm.WmProtocolsSet(xu, w.id, []string{"WM_DELETE_WINDOW"}); err != nil {
		return fmt.Errorf("failed to set WM_PROTOCOLS: %w", err)
	}

	w.SetTitle(w.attrs.Title)

	class := &icccm.WmClass{Instance: platform.X11.Instance, Class: platform.X11.Class}
	if class.Instance == "" {
		class.Instance = filepath.Base(os.Args[0])
	}
	if class.Class == "" {
		class.Class = class.Instance
	}
	if err := icccm.WmClassSet(xu, w.id, class); err != nil {
		return fmt.Errorf("failed to set WM_CLASS: %w", err)
	}

	if err := ewmh.WmPidSet(xu, w.id, uint(os.Getpid())); err != nil {
		w.logger.Debug("failed to set _NET_WM_PID", "window", w.id, "error", err)
	}

	if hints, ok := normalHints(w.attrs); ok {
		if err := icccm.WmNormalHintsSet(xu, w.id, hints); err != nil {
			return fmt.Errorf("failed to set WM_NORMAL_HINTS: %w", err)
		}
	}

	if !w.attrs.Decorations {
		hints := &motif.Hints{
			Flags:      motif.HintDecorations,
			Decoration: motif.DecorationNone,
		}
		if err := motif.WmHintsSet(xu, w.id, hints); err != nil {
			return fmt.Errorf("failed to disable decorations: %w", err)
		}
	}

	if t := platform.X11.WindowType; t != "" {
		if err := ewmh.WmWindowTypeSet(xu, w.id, []string{t}); err != nil {
			return fmt.Errorf("failed to set window type %s: %w", t, err)
		}
	}

	if w.attrs.Fullscreen() {
		if err := ewmh.WmStateSet(xu, w.id, []string{"_NET_WM_STATE_FULLSCREEN"}); err != nil {
			return fmt.Errorf("failed to request fullscreen: %w", err)
		}
	}
	return nil
}

func normalHints(attrs backend.Attributes) (*icccm.NormalHints, bool) {
	hints := &icccm.NormalHints{}
	if m := attrs.MinDimensions; m != nil {
		hints.Flags |= icccm.SizeHintPMinSize
		hints.MinWidth = uint(m.Width)
		hints.MinHeight = uint(m.Height)
	}
	if m := attrs.MaxDimensions; m != nil {
		hints.Flags |= icccm.SizeHintPMaxSize
		hints.MaxWidth = uint(m.Width)
		hints.MaxHeight = uint(m.Height)
	}
	return hints, hints.Flags != 0
}

// checkSize rejects sizes the core protocol cannot carry.
func checkSize(width, height uint32) error {
	if width == 0 || height == 0 || width > math.MaxUint16 || height > math.MaxUint16 {
		return fmt.Errorf("window size %dx%d outside 1..%d: %w", width, height, math.MaxUint16, backend.ErrUnsupported)
	}
	return nil
}

func argbVisual(screen *xproto.ScreenInfo) (byte, xproto.Visualid, bool) {
	for _, d := range screen.AllowedDepths {
		if d.Depth != 32 {
			continue
		}
		for _, v := range d.Visuals {
			if v.Class == xproto.VisualClassTrueColor {
				return d.Depth, v.VisualId, true
			}
		}
	}
	return 0, 0, false
}

func (w *nativeWindow) alive() bool {
	return !w.gone && !w.destroyed
}

func (w *nativeWindow) SetTitle(title string) {
	if !w.alive() {
		return
	}
	if err := ewmh.WmNameSet(w.conn.XUtil, w.id, title); err != nil {
		w.logger.Debug("failed to set _NET_WM_NAME", "window", w.id, "error", err)
	}
	if err := icccm.WmNameSet(w.conn.XUtil, w.id, title); err != nil {
		w.logger.Debug("failed to set WM_NAME", "window", w.id, "error", err)
	}
}

func (w *nativeWindow) Show() {
	if w.alive() {
		xwindow.New(w.conn.XUtil, w.id).Map()
	}
}

func (w *nativeWindow) Hide() {
	if w.alive() {
		xwindow.New(w.conn.XUtil, w.id).Unmap()
	}
}

// Position returns the window origin in root coordinates, which works
// whether or not a window manager reparented the window.
func (w *nativeWindow) Position() (int, int, bool) {
	if !w.alive() || w.origin == nil {
		return 0, 0, false
	}
	return w.origin()
}

func (w *nativeWindow) translateOrigin() (int, int, bool) {
	translate, err := xproto.TranslateCoordinates(w.conn.XUtil.Conn(), w.id, w.conn.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(translate.DstX), int(translate.DstY), true
}

func (w *nativeWindow) SetPosition(x, y int) {
	if w.alive() {
		xwindow.New(w.conn.XUtil, w.id).Move(x, y)
	}
}

func (w *nativeWindow) InnerSize() (uint32, uint32, bool) {
	if !w.alive() {
		return 0, 0, false
	}
	geom, err := xproto.GetGeometry(w.conn.XUtil.Conn(), xproto.Drawable(w.id)).Reply()
	if err != nil {
		return 0, 0, false
	}
	return uint32(geom.Width), uint32(geom.Height), true
}

// OuterSize adds the window manager's _NET_FRAME_EXTENTS to the inner size.
func (w *nativeWindow) OuterSize() (uint32, uint32, bool) {
	width, height, ok := w.InnerSize()
	if !ok {
		return 0, 0, false
	}
	left, right, top, bottom := w.frameExtents()
	return width + uint32(left+right), height + uint32(top+bottom), true
}

// frameExtents returns the window decoration sizes, zero when the window
// manager does not publish them.
func (w *nativeWindow) frameExtents() (left, right, top, bottom int) {
	extents, err := ewmh.FrameExtentsGet(w.conn.XUtil, w.id)
	if err != nil {
		return 0, 0, 0, 0
	}
	return int(extents.Left), int(extents.Right), int(extents.Top), int(extents.Bottom)
}

func (w *nativeWindow) SetInnerSize(width, height uint32) {
	if !w.alive() {
		return
	}
	width, height = w.attrs.ClampSize(width, height)
	width = min(max(width, 1), math.MaxUint16)
	height = min(max(height, 1), math.MaxUint16)
	xwindow.New(w.conn.XUtil, w.id).Resize(int(width), int(height))
}

func (w *nativeWindow) CreateProxy() backend.Proxy {
	return w.target
}

func (w *nativeWindow) SetResizeCallback(fn func(width, height uint32)) {
	w.resizeCb = fn
}

func (w *nativeWindow) SetCursor(cursor backend.MouseCursor) {
	w.cursor = cursor
	if !w.alive() || w.cursorState != backend.CursorNormal {
		return
	}
	cur, err := w.shapeCursor(cursor)
	if err == nil {
		err = w.defineCursor(cur)
	}
	if err != nil {
		w.logger.Debug("failed to set cursor", "window", w.id, "cursor", cursor, "error", err)
	}
}

func (w *nativeWindow) HiDPIFactor() float32 {
	return w.hidpi
}

func (w *nativeWindow) SetCursorPosition(x, y int) error {
	if !w.alive() {
		return nil
	}
	if x < math.MinInt16 || x > math.MaxInt16 || y < math.MinInt16 || y > math.MaxInt16 {
		return fmt.Errorf("cursor position (%d, %d) out of range", x, y)
	}
	return xproto.WarpPointerChecked(
		w.conn.XUtil.Conn(),
		xproto.WindowNone,
		w.id,
		0, 0, 0, 0,
		int16(x), int16(y),
	).Check()
}

func (w *nativeWindow) SetCursorState(state backend.CursorState) error {
	if !w.alive() {
		return nil
	}
	conn := w.conn.XUtil.Conn()
	if w.cursorState == backend.CursorGrab && state != backend.CursorGrab {
		xproto.UngrabPointer(conn, xproto.TimeCurrentTime)
	}

	switch state {
	case backend.CursorNormal:
		cur, err := w.shapeCursor(w.cursor)
		if err != nil {
			return err
		}
		if err := w.defineCursor(cur); err != nil {
			return fmt.Errorf("failed to restore cursor: %w", err)
		}
	case backend.CursorHide, backend.CursorGrab:
		cur, err := w.invisibleCursor()
		if err != nil {
			return err
		}
		if err := w.defineCursor(cur); err != nil {
			return fmt.Errorf("failed to hide cursor: %w", err)
		}
		if state == backend.CursorGrab && w.cursorState != backend.CursorGrab {
			reply, err := xproto.GrabPointer(
				conn,
				true,
				w.id,
				xproto.EventMaskPointerMotion|xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease,
				xproto.GrabModeAsync,
				xproto.GrabModeAsync,
				w.id, // confine to the window
				cur,
				xproto.TimeCurrentTime,
			).Reply()
			if err != nil {
				return fmt.Errorf("pointer grab failed: %w", err)
			}
			if err := grabStatusError(reply.Status); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown cursor state %d", int(state))
	}

	w.cursorState = state
	return nil
}

func (w *nativeWindow) NativeHandles() backend.NativeHandles {
	return backend.NativeHandles{
		Platform: "x11",
		Display:  w.conn.Display,
		Window:   uintptr(w.id),
	}
}

// Destroy closes the wakeup target first so no proxy writes to the
// connection after it is closed.
func (w *nativeWindow) Destroy() {
	if w.destroyed {
		return
	}
	w.target.close()

	if !w.gone {
		if w.cursorState == backend.CursorGrab {
			xproto.UngrabPointer(w.conn.XUtil.Conn(), xproto.TimeCurrentTime)
		}
		w.freeCursors()
		xproto.DestroyWindow(w.conn.XUtil.Conn(), w.id)
	}
	w.destroyed = true
	w.queue = nil
	w.conn.Close()
	w.logger.Debug("window destroyed", "window", w.id)
}

// wakeTarget is the part of a window proxies share.
type wakeTarget struct {
	mu     sync.RWMutex
	conn   *xgb.Conn
	win    xproto.Window
	atom   xproto.Atom
	closed bool
}

var _ backend.Proxy = (*wakeTarget)(nil)

// WakeupEventLoop sends a client message to the window. An empty event mask
// delivers it to the window's creator, which is the connection blocked in
// WaitForEvent.
func (t *wakeTarget) WakeupEventLoop() {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: t.win,
		Type:   t.atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
	xproto.SendEvent(t.conn, false, t.win, xproto.EventMaskNoEvent, string(ev.Bytes()))
}

func (t *wakeTarget) close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}
