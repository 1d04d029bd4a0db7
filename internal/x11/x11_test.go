package x11

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"testing"

	"github.com/1broseidon/winkit/backend"
	"github.com/1broseidon/winkit/event"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"
)

type fakeEntry struct{ name string }

func (e fakeEntry) Name() string               { return e.name }
func (e fakeEntry) IsDir() bool                { return false }
func (e fakeEntry) Type() fs.FileMode          { return fs.ModeSocket }
func (e fakeEntry) Info() (fs.FileInfo, error) { return nil, errors.New("not implemented") }

func stubReadDir(t *testing.T, names ...string) {
	t.Helper()
	prev := readDirFn
	readDirFn = func(string) ([]os.DirEntry, error) {
		entries := make([]os.DirEntry, 0, len(names))
		for _, n := range names {
			entries = append(entries, fakeEntry{name: n})
		}
		return entries, nil
	}
	t.Cleanup(func() { readDirFn = prev })
}

func TestDetectDisplayFromSockets_PicksHighest(t *testing.T) {
	stubReadDir(t, "X0", "X10", "X2", "lock", "Xfoo")

	if got := detectDisplayFromSockets(X11SocketDir); got != ":10" {
		t.Fatalf("expected :10, got %q", got)
	}
}

func TestDetectDisplayFromSockets_NoSockets(t *testing.T) {
	stubReadDir(t)

	if got := detectDisplayFromSockets(X11SocketDir); got != "" {
		t.Fatalf("expected empty display, got %q", got)
	}
}

func TestResolveDisplay_Precedence(t *testing.T) {
	stubReadDir(t, "X3")

	t.Setenv("DISPLAY", ":1")
	if got := ResolveDisplay(" :5 "); got != ":5" {
		t.Fatalf("explicit display should win, got %q", got)
	}
	if got := ResolveDisplay(""); got != ":1" {
		t.Fatalf("expected $DISPLAY, got %q", got)
	}

	t.Setenv("DISPLAY", "")
	if got := ResolveDisplay(""); got != ":3" {
		t.Fatalf("expected socket fallback, got %q", got)
	}
}

func TestPrimaryOf(t *testing.T) {
	if _, ok := PrimaryOf(nil); ok {
		t.Fatalf("expected no primary for empty list")
	}

	monitors := []Monitor{
		{ID: 0, OutputName: "HDMI-1", Width: 1920, Height: 1080},
		{ID: 1, OutputName: "DP-1", X: 1920, Width: 2560, Height: 1440, Primary: true},
	}
	got, ok := PrimaryOf(monitors)
	if !ok || got.OutputName != "DP-1" {
		t.Fatalf("expected DP-1, got %+v", got)
	}

	got, _ = PrimaryOf(monitors[:1])
	if got.OutputName != "HDMI-1" {
		t.Fatalf("expected first monitor fallback, got %+v", got)
	}
}

func TestMonitor_BackendContract(t *testing.T) {
	m := Monitor{Output: 67, OutputName: "eDP-1", Width: 2880, Height: 1800}

	if name, ok := m.Name(); !ok || name != "eDP-1" {
		t.Fatalf("unexpected name %q, %v", name, ok)
	}
	if id := m.NativeIdentifier(); id.Kind != backend.MonitorIDNumeric || id.Numeric != 67 {
		t.Fatalf("unexpected native id %+v", id)
	}
	if w, h := m.Dimensions(); w != 2880 || h != 1800 {
		t.Fatalf("unexpected dimensions %dx%d", w, h)
	}

	screen := Monitor{Width: 1024, Height: 768}
	if _, ok := screen.Name(); ok {
		t.Fatalf("screen fallback should have no name")
	}
	if id := screen.NativeIdentifier(); id.Kind != backend.MonitorIDUnavailable {
		t.Fatalf("expected unavailable id, got %+v", id)
	}
}

func TestFactorFromDPI(t *testing.T) {
	tests := []struct {
		dpi  float64
		want float32
	}{
		{96, 1},
		{72, 1},
		{120, 1.25},
		{144, 1.5},
		{192, 2},
		{220, 2.25},
	}
	for _, tt := range tests {
		if got := factorFromDPI(tt.dpi); got != tt.want {
			t.Errorf("factorFromDPI(%v) = %v, want %v", tt.dpi, got, tt.want)
		}
	}
	if got := screenDPI(1920, 0); got != 96 {
		t.Fatalf("expected 96 dpi without a physical size, got %v", got)
	}
	if got := screenDPI(3840, 508); math.Abs(got-192) > 0.01 {
		t.Fatalf("expected 192 dpi, got %v", got)
	}
}

func TestCursorGlyph(t *testing.T) {
	if _, ok := cursorGlyph(backend.CursorNoneShape); ok {
		t.Fatalf("none shape must not map to a glyph")
	}
	for c := backend.CursorDefault; c <= backend.CursorRowResize; c++ {
		if c == backend.CursorNoneShape {
			continue
		}
		if _, ok := cursorGlyph(c); !ok {
			t.Errorf("cursor %s has no glyph", c)
		}
	}
	if g, _ := cursorGlyph(backend.CursorText); g != xcursor.XTerm {
		t.Fatalf("text cursor should use xterm glyph, got %d", g)
	}
}

func TestGrabStatusError(t *testing.T) {
	if err := grabStatusError(xproto.GrabStatusSuccess); err != nil {
		t.Fatalf("success should not error, got %v", err)
	}
	for _, status := range []byte{
		xproto.GrabStatusAlreadyGrabbed,
		xproto.GrabStatusInvalidTime,
		xproto.GrabStatusNotViewable,
		xproto.GrabStatusFrozen,
		42,
	} {
		if err := grabStatusError(status); err == nil {
			t.Errorf("status %d should error", status)
		}
	}
}

func TestNormalHints(t *testing.T) {
	if _, ok := normalHints(backend.DefaultAttributes()); ok {
		t.Fatalf("no hints expected without limits")
	}

	attrs := backend.DefaultAttributes()
	attrs.MinDimensions = &backend.Size{Width: 200, Height: 100}
	hints, ok := normalHints(attrs)
	if !ok || hints.MinWidth != 200 || hints.MinHeight != 100 || hints.MaxWidth != 0 {
		t.Fatalf("unexpected hints %+v", hints)
	}
}

func newTestWindow() *nativeWindow {
	return &nativeWindow{
		id:     7,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		atoms:  atoms{wmProtocols: 100, wmDeleteWindow: 101, wakeup: 102},
		lookup: func(_ uint16, code xproto.Keycode) string {
			switch code {
			case 38:
				return "a"
			case 65:
				return "space"
			case 50:
				return "Shift_L"
			}
			return ""
		},
		width:  640,
		height: 480,
	}
}

func drain(w *nativeWindow) []event.Event {
	var out []event.Event
	for {
		ev, ok := w.pop()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func TestHandle_ConfigureNotify(t *testing.T) {
	w := newTestWindow()
	rootX, rootY := 500, 300
	w.origin = func() (int, int, bool) { return rootX, rootY, true }
	var calls [][2]uint32
	w.resizeCb = func(width, height uint32) { calls = append(calls, [2]uint32{width, height}) }

	// The window manager's root-relative notify, then the server's notify
	// relative to the reparenting frame, for a window that did not move.
	w.handle(xproto.ConfigureNotifyEvent{Window: w.id, Width: 800, Height: 600, X: 500, Y: 300})
	w.handle(xproto.ConfigureNotifyEvent{Window: w.id, Width: 800, Height: 600, X: 1, Y: 24})
	w.handle(xproto.ConfigureNotifyEvent{Window: w.id, Width: 800, Height: 600, X: 500, Y: 300})
	w.handle(xproto.ConfigureNotifyEvent{Window: 99, Width: 1, Height: 1})

	rootX, rootY = 620, 340
	w.handle(xproto.ConfigureNotifyEvent{Window: w.id, Width: 800, Height: 600, X: 1, Y: 24})

	got := drain(w)
	want := []event.Event{
		event.Resized{Width: 800, Height: 600},
		event.Moved{X: 500, Y: 300},
		event.Moved{X: 620, Y: 340},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if len(calls) != 1 || calls[0] != [2]uint32{800, 600} {
		t.Fatalf("expected one resize callback, got %v", calls)
	}
}

func TestHandle_ConfigureNotifyWithoutOrigin(t *testing.T) {
	w := newTestWindow()
	w.origin = func() (int, int, bool) { return 0, 0, false }

	w.handle(xproto.ConfigureNotifyEvent{Window: w.id, Width: 640, Height: 480, X: 1, Y: 24})

	if got := drain(w); len(got) != 0 {
		t.Fatalf("expected no events when the origin is unknown, got %v", got)
	}
}

func TestCheckSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
		wantErr       bool
	}{
		{"typical", 800, 600, false},
		{"protocol max", math.MaxUint16, math.MaxUint16, false},
		{"too wide", 70000, 600, true},
		{"too tall", 800, 1 << 16, true},
		{"zero", 0, 600, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSize(tt.width, tt.height)
			if tt.wantErr {
				if !errors.Is(err, backend.ErrUnsupported) {
					t.Fatalf("expected ErrUnsupported, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestHandle_ClientMessages(t *testing.T) {
	w := newTestWindow()

	w.handle(xproto.ClientMessageEvent{
		Format: 32,
		Window: w.id,
		Type:   w.atoms.wakeup,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	})
	w.handle(xproto.ClientMessageEvent{
		Format: 32,
		Window: w.id,
		Type:   w.atoms.wmProtocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(w.atoms.wmDeleteWindow), 0, 0, 0, 0}),
	})

	got := drain(w)
	if len(got) != 2 || got[0] != (event.Awakened{}) || got[1] != (event.Closed{}) {
		t.Fatalf("expected Awakened then Closed, got %v", got)
	}
}

func TestHandle_Keyboard(t *testing.T) {
	w := newTestWindow()

	w.handle(xproto.KeyPressEvent{Detail: 38})
	w.handle(xproto.KeyReleaseEvent{Detail: 38})
	w.handle(xproto.KeyPressEvent{Detail: 65})
	w.handle(xproto.KeyPressEvent{Detail: 50})

	got := drain(w)
	want := []event.Event{
		event.KeyboardInput{State: event.Pressed, ScanCode: 38, Key: "a"},
		event.ReceivedCharacter{Char: 'a'},
		event.KeyboardInput{State: event.Released, ScanCode: 38, Key: "a"},
		event.KeyboardInput{State: event.Pressed, ScanCode: 65, Key: "space"},
		event.ReceivedCharacter{Char: ' '},
		event.KeyboardInput{State: event.Pressed, ScanCode: 50, Key: "Shift_L"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestHandle_Pointer(t *testing.T) {
	w := newTestWindow()

	w.handle(xproto.EnterNotifyEvent{})
	w.handle(xproto.MotionNotifyEvent{EventX: 5, EventY: 6})
	w.handle(xproto.ButtonPressEvent{Detail: 1})
	w.handle(xproto.ButtonReleaseEvent{Detail: 3})
	w.handle(xproto.ButtonPressEvent{Detail: 4})
	w.handle(xproto.ButtonReleaseEvent{Detail: 4})
	w.handle(xproto.ButtonPressEvent{Detail: 9})
	w.handle(xproto.LeaveNotifyEvent{})

	got := drain(w)
	want := []event.Event{
		event.MouseEntered{},
		event.MouseMoved{X: 5, Y: 6},
		event.MouseInput{State: event.Pressed, Button: event.ButtonLeft, Code: 1},
		event.MouseInput{State: event.Released, Button: event.ButtonRight, Code: 3},
		event.MouseWheel{DeltaY: 1},
		event.MouseInput{State: event.Pressed, Button: event.ButtonOther, Code: 9},
		event.MouseLeft{},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestHandle_DestroyNotifyMarksGone(t *testing.T) {
	w := newTestWindow()

	w.handle(xproto.ExposeEvent{Count: 2})
	w.handle(xproto.ExposeEvent{Count: 0})
	w.handle(xproto.DestroyNotifyEvent{Window: w.id})

	if !w.gone || w.alive() {
		t.Fatalf("window should be gone after DestroyNotify")
	}
	got := drain(w)
	if len(got) != 2 || got[0] != (event.Refresh{}) || got[1] != (event.Destroyed{}) {
		t.Fatalf("expected Refresh then Destroyed, got %v", got)
	}
	if ev := w.WaitEvent(); ev != (event.Destroyed{}) {
		t.Fatalf("wait on a gone window should return Destroyed, got %v", ev)
	}
}

func TestWakeTarget_ClosedIsNoop(t *testing.T) {
	target := &wakeTarget{}
	target.close()
	// A nil connection would panic if the closed flag were ignored.
	target.WakeupEventLoop()
}

func TestKeyRune(t *testing.T) {
	tests := []struct {
		key  string
		want rune
		ok   bool
	}{
		{"a", 'a', true},
		{"é", 'é', true},
		{"Return", '\r', true},
		{"Escape", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := keyRune(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("keyRune(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}
