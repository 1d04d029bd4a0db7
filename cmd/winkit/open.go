package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/winkit/backend"
	"github.com/1broseidon/winkit/event"
	"github.com/1broseidon/winkit/internal/tui"
	"github.com/1broseidon/winkit/window"
)

// windowFlags describe the window opened by open and events.
type windowFlags struct {
	title         string
	size          string
	fullscreen    int
	noDecorations bool
	hidden        bool
	transparent   bool
	class         string
	cursor        string
	interactive   bool
	duration      time.Duration
}

func (f *windowFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.title, "title", "winkit", "Window title")
	fs.StringVar(&f.size, "size", "", "Inner size as WIDTHxHEIGHT (default: 1024x768, or the monitor size)")
	fs.IntVar(&f.fullscreen, "fullscreen", -1, "Monitor index to go fullscreen on (see 'winkit monitors')")
	fs.BoolVar(&f.noDecorations, "no-decorations", false, "Ask the window manager for no decorations")
	fs.BoolVar(&f.hidden, "hidden", false, "Create the window unmapped")
	fs.BoolVar(&f.transparent, "transparent", false, "Request a transparent background")
	fs.StringVar(&f.class, "class", "", "X11 WM_CLASS class")
	fs.StringVar(&f.cursor, "cursor", "", "Cursor shape, e.g. crosshair or text")
	fs.BoolVar(&f.interactive, "interactive", false, "Choose options in a form")
	fs.DurationVar(&f.duration, "duration", 0, "Close the window after this long (0: until closed)")
}

// builder turns the flags into a window builder bound to be.
func (f *windowFlags) builder(be backend.Backend) (*window.Builder, error) {
	monitors := collectMonitorIDs(be)

	if f.interactive {
		labels := make([]string, len(monitors))
		for i, m := range monitors {
			labels[i] = m.String()
		}
		form := tui.WindowForm{
			Title:       f.title,
			Size:        f.size,
			Monitor:     f.fullscreen,
			Decorations: !f.noDecorations,
			Transparent: f.transparent,
		}
		if err := tui.RunWindowForm(&form, labels); err != nil {
			return nil, err
		}
		f.title = form.Title
		f.size = form.Size
		f.fullscreen = form.Monitor
		f.noDecorations = !form.Decorations
		f.transparent = form.Transparent
	}

	b := window.NewBuilder().
		WithBackend(be).
		WithTitle(f.title).
		WithVisibility(!f.hidden).
		WithDecorations(!f.noDecorations).
		WithTransparency(f.transparent)

	w, h, err := tui.ParseSize(f.size)
	if err != nil {
		return nil, err
	}
	if w > 0 {
		b.WithDimensions(w, h)
	}
	if f.fullscreen >= 0 {
		if f.fullscreen >= len(monitors) {
			return nil, fmt.Errorf("monitor %d not found (%d available)", f.fullscreen, len(monitors))
		}
		b.WithFullscreen(monitors[f.fullscreen])
	}
	if f.class != "" {
		b.WithPlatformSpecific(backend.PlatformSpecific{
			X11: backend.X11Attributes{Class: f.class},
		})
	}
	return b, nil
}

func collectMonitorIDs(be backend.Backend) []window.MonitorID {
	var out []window.MonitorID
	for m := range window.AvailableMonitorsOf(be).All() {
		out = append(out, m)
	}
	return out
}

func parseWindowArgs(name, usage string, args []string) (*backendFlags, *windowFlags, int, bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	bf := &backendFlags{}
	wf := &windowFlags{}
	bf.register(fs)
	wf.register(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: winkit %s [options]\n", name)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, usage)
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, nil, 0, false
		}
		return nil, nil, 2, false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		fs.Usage()
		return nil, nil, 2, false
	}
	return bf, wf, 0, true
}

// openWindow builds the window described by the flags.
func openWindow(bf *backendFlags, wf *windowFlags) (*window.Window, *slog.Logger, error) {
	be, logger, err := bf.open()
	if err != nil {
		return nil, nil, err
	}
	b, err := wf.builder(be)
	if err != nil {
		return nil, nil, err
	}
	b.WithResizeCallback(func(w, h uint32) {
		logger.Debug("resized", "width", w, "height", h)
	})

	win, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	if wf.cursor != "" {
		cursor, err := backend.ParseMouseCursor(wf.cursor)
		if err != nil {
			win.Close()
			return nil, nil, err
		}
		win.SetCursor(cursor)
	}
	return win, logger, nil
}

// stopper ends an event loop from other goroutines: it records the reason
// and wakes the loop through a proxy.
type stopper struct {
	proxy  window.Proxy
	reason atomic.Pointer[string]
}

func (s *stopper) stop(reason string) {
	s.reason.CompareAndSwap(nil, &reason)
	s.proxy.WakeupEventLoop()
}

func (s *stopper) stopped() (string, bool) {
	r := s.reason.Load()
	if r == nil {
		return "", false
	}
	return *r, true
}

// watch stops on SIGINT/SIGTERM and after d when d > 0.
func (s *stopper) watch(d time.Duration) func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigCh:
			s.stop(sig.String())
		case <-done:
		}
	}()
	var timer *time.Timer
	if d > 0 {
		timer = time.AfterFunc(d, func() { s.stop("duration elapsed") })
	}
	return func() {
		signal.Stop(sigCh)
		close(done)
		if timer != nil {
			timer.Stop()
		}
	}
}

// pumpEvents hands every event to fn until the window closes, fn returns
// false or the stopper fires. It returns why it ended.
func pumpEvents(win *window.Window, st *stopper, fn func(event.Event) bool) string {
	for ev := range win.WaitEvents().All() {
		if reason, ok := st.stopped(); ok {
			return reason
		}
		if !fn(ev) {
			return "stopped"
		}
		switch ev.(type) {
		case event.Closed:
			return "close requested"
		case event.Destroyed:
			return "window destroyed"
		}
	}
	return "stopped"
}

func runOpen(args []string) int {
	bf, wf, code, ok := parseWindowArgs("open", "Open a window and print its events, one per line, until it is closed.", args)
	if !ok {
		return code
	}

	// Native event loops stay on one OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win, logger, err := openWindow(bf, wf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer win.Close()

	st := &stopper{proxy: win.CreateProxy()}
	defer st.watch(wf.duration)()

	logger.Info("window open", "title", wf.title, "handles", win.NativeHandles().Platform)
	reason := pumpEvents(win, st, func(ev event.Event) bool {
		printEvent(os.Stdout, ev)
		return true
	})
	logger.Info("window closing", "reason", reason)
	return 0
}

func printEvent(w io.Writer, ev event.Event) {
	fmt.Fprintf(w, "%s %s\n", time.Now().Format("15:04:05.000"), ev)
}

func runEvents(args []string) int {
	bf, wf, code, ok := parseWindowArgs("events", "Open a window and show its events in a live terminal viewer.", args)
	if !ok {
		return code
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "events requires an interactive terminal; use 'winkit open' instead")
		return 2
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win, logger, err := openWindow(bf, wf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer win.Close()

	w, h, _ := win.InnerSize()
	viewer := tui.NewViewer(tui.WindowInfo{
		Title:    wf.title,
		Platform: win.NativeHandles().Platform,
		Width:    w,
		Height:   h,
		HiDPI:    win.HiDPIFactor(),
	})
	p := tea.NewProgram(viewer, tea.WithAltScreen())

	st := &stopper{proxy: win.CreateProxy()}
	defer st.watch(wf.duration)()

	// The viewer runs beside the event loop; quitting it wakes the loop.
	done := make(chan error, 1)
	go func() {
		_, err := p.Run()
		st.stop("viewer closed")
		done <- err
	}()

	reason := pumpEvents(win, st, func(ev event.Event) bool {
		p.Send(tui.EventMsg{Event: ev})
		return true
	})
	p.Send(tui.WindowGoneMsg{})
	p.Quit()

	if err := <-done; err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Debug("event viewer finished", "reason", reason)
	return 0
}
