package x11

import (
	"unicode/utf8"

	"github.com/1broseidon/winkit/event"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

func (w *nativeWindow) push(ev event.Event) {
	w.queue = append(w.queue, ev)
}

func (w *nativeWindow) pop() (event.Event, bool) {
	if len(w.queue) == 0 {
		return nil, false
	}
	ev := w.queue[0]
	w.queue[0] = nil
	w.queue = w.queue[1:]
	return ev, true
}

// pump moves everything the server already sent into the queue without
// blocking.
func (w *nativeWindow) pump() {
	if !w.alive() {
		return
	}
	conn := w.conn.XUtil.Conn()
	for {
		ev, xerr := conn.PollForEvent()
		if ev == nil && xerr == nil {
			return
		}
		w.dispatch(ev, xerr)
	}
}

func (w *nativeWindow) dispatch(ev xgb.Event, xerr xgb.Error) {
	if xerr != nil {
		w.logger.Debug("x11 error", "window", w.id, "error", xerr)
		return
	}
	w.handle(ev)
}

func (w *nativeWindow) PollEvent() (event.Event, bool) {
	if len(w.queue) == 0 {
		w.pump()
	}
	return w.pop()
}

func (w *nativeWindow) WaitEvent() event.Event {
	for {
		if ev, ok := w.pop(); ok {
			return ev
		}
		if !w.alive() {
			return event.Destroyed{}
		}
		ev, xerr := w.conn.XUtil.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			// Connection closed by the server.
			w.logger.Warn("x11 connection closed", "window", w.id, "display", w.conn.Display)
			w.gone = true
			w.push(event.Destroyed{})
			continue
		}
		w.dispatch(ev, xerr)
	}
}

func (w *nativeWindow) PendingEvents() int {
	w.pump()
	return len(w.queue)
}

// handle translates one X event into zero or more window events.
func (w *nativeWindow) handle(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		if e.Window != w.id {
			return
		}
		width, height := uint32(e.Width), uint32(e.Height)
		if width != w.width || height != w.height {
			w.width, w.height = width, height
			w.push(event.Resized{Width: width, Height: height})
			if w.resizeCb != nil {
				w.resizeCb(width, height)
			}
		}
		// Under a reparenting window manager e.X and e.Y are relative to
		// the frame, and xgb hides which notifies the manager synthesized
		// in root coordinates. Ask the server instead.
		if x, y, ok := w.Position(); ok && (x != w.x || y != w.y) {
			w.x, w.y = x, y
			w.push(event.Moved{X: x, Y: y})
		}

	case xproto.ExposeEvent:
		// Only the last expose of a series asks for a redraw.
		if e.Count == 0 {
			w.push(event.Refresh{})
		}

	case xproto.ClientMessageEvent:
		switch {
		case e.Type == w.atoms.wakeup && w.atoms.wakeup != 0:
			w.push(event.Awakened{})
		case e.Type == w.atoms.wmProtocols && w.atoms.wmProtocols != 0:
			if len(e.Data.Data32) > 0 && xproto.Atom(e.Data.Data32[0]) == w.atoms.wmDeleteWindow {
				w.push(event.Closed{})
			}
		}

	case xproto.DestroyNotifyEvent:
		if e.Window != w.id {
			return
		}
		w.gone = true
		w.push(event.Destroyed{})

	case xproto.FocusInEvent:
		w.push(event.Focused{Focused: true})
	case xproto.FocusOutEvent:
		w.push(event.Focused{Focused: false})

	case xproto.KeyPressEvent:
		key := w.keyName(e.State, e.Detail)
		w.push(event.KeyboardInput{State: event.Pressed, ScanCode: uint8(e.Detail), Key: key})
		if r, ok := keyRune(key); ok {
			w.push(event.ReceivedCharacter{Char: r})
		}
	case xproto.KeyReleaseEvent:
		key := w.keyName(e.State, e.Detail)
		w.push(event.KeyboardInput{State: event.Released, ScanCode: uint8(e.Detail), Key: key})

	case xproto.ButtonPressEvent:
		if wheel, ok := wheelDelta(e.Detail); ok {
			w.push(wheel)
			return
		}
		w.push(mouseInput(event.Pressed, e.Detail))
	case xproto.ButtonReleaseEvent:
		// Wheel buttons report a release too; the press already produced the scroll.
		if _, ok := wheelDelta(e.Detail); ok {
			return
		}
		w.push(mouseInput(event.Released, e.Detail))

	case xproto.MotionNotifyEvent:
		w.push(event.MouseMoved{X: int(e.EventX), Y: int(e.EventY)})
	case xproto.EnterNotifyEvent:
		w.push(event.MouseEntered{})
	case xproto.LeaveNotifyEvent:
		w.push(event.MouseLeft{})
	}
}

func (w *nativeWindow) keyName(state uint16, code xproto.Keycode) string {
	if w.lookup == nil {
		return ""
	}
	return w.lookup(state, code)
}

// keyRune returns the text a key name produces, for printable keys.
func keyRune(key string) (rune, bool) {
	switch key {
	case "space":
		return ' ', true
	case "Return", "KP_Enter":
		return '\r', true
	case "Tab":
		return '\t', true
	case "BackSpace":
		return '\b', true
	}
	if utf8.RuneCountInString(key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(key)
	return r, r != utf8.RuneError
}

// Core protocol buttons 4-7 are the scroll wheel.
func wheelDelta(button xproto.Button) (event.MouseWheel, bool) {
	switch button {
	case 4:
		return event.MouseWheel{DeltaY: 1}, true
	case 5:
		return event.MouseWheel{DeltaY: -1}, true
	case 6:
		return event.MouseWheel{DeltaX: -1}, true
	case 7:
		return event.MouseWheel{DeltaX: 1}, true
	}
	return event.MouseWheel{}, false
}

func mouseInput(state event.ElementState, button xproto.Button) event.MouseInput {
	ev := event.MouseInput{State: state, Code: uint8(button)}
	switch button {
	case xproto.ButtonIndex1:
		ev.Button = event.ButtonLeft
	case xproto.ButtonIndex2:
		ev.Button = event.ButtonMiddle
	case xproto.ButtonIndex3:
		ev.Button = event.ButtonRight
	default:
		ev.Button = event.ButtonOther
	}
	return ev
}
