package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/1broseidon/winkit/backend/headless"
)

func testServer(opts ...headless.Option) (*Server, *headless.Backend) {
	be := headless.New(opts...)
	return NewServer(be, slog.New(slog.NewTextHandler(io.Discard, nil))), be
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func TestListMonitors(t *testing.T) {
	s, _ := testServer(
		headless.WithMonitors(
			headless.Monitor{ID: 1, Label: "LEFT", Width: 1920, Height: 1080},
			headless.Monitor{ID: 2, Width: 2560, Height: 1440},
		),
		headless.WithPrimary(1),
	)

	_, out, err := s.handleListMonitors(context.Background(), nil, ListMonitorsInput{})
	if err != nil {
		t.Fatalf("list_monitors: %v", err)
	}
	if len(out.Monitors) != 2 {
		t.Fatalf("expected 2 monitors, got %d", len(out.Monitors))
	}
	left, right := out.Monitors[0], out.Monitors[1]
	if left.Name != "LEFT" || left.Primary || left.Width != 1920 {
		t.Fatalf("unexpected first monitor %+v", left)
	}
	if right.Name != "" || !right.Primary || right.Height != 1440 || right.Index != 1 {
		t.Fatalf("unexpected second monitor %+v", right)
	}
}

func TestPrimaryMonitor(t *testing.T) {
	s, _ := testServer()

	_, info, err := s.handlePrimaryMonitor(context.Background(), nil, PrimaryMonitorInput{})
	if err != nil {
		t.Fatalf("primary_monitor: %v", err)
	}
	if info.Index != 0 || !info.Primary || info.Name != headless.DefaultMonitor.Label {
		t.Fatalf("unexpected primary %+v", info)
	}
}

func TestProbeWindow_Defaults(t *testing.T) {
	s, be := testServer(headless.WithHiDPIFactor(2))

	_, out, err := s.handleProbeWindow(context.Background(), nil, ProbeWindowInput{Title: "probe"})
	if err != nil {
		t.Fatalf("probe_window: %v", err)
	}
	if out.Platform != "headless" {
		t.Fatalf("expected headless platform, got %q", out.Platform)
	}
	if out.InnerWidth != 1024 || out.InnerHeight != 768 {
		t.Fatalf("expected default 1024x768, got %dx%d", out.InnerWidth, out.InnerHeight)
	}
	if out.PixelWidth != 2048 || out.PixelHeight != 1536 {
		t.Fatalf("expected 2048x1536 pixels, got %dx%d", out.PixelWidth, out.PixelHeight)
	}
	if out.OuterWidth <= out.InnerWidth || out.OuterHeight <= out.InnerHeight {
		t.Fatalf("decorated window should have a larger outer size, got %+v", out)
	}

	w := be.LastWindow()
	if w == nil || !w.Destroyed() {
		t.Fatalf("probe window should be closed after the call")
	}
	if w.Visible() {
		t.Fatalf("probe window should be hidden by default")
	}
}

func TestProbeWindow_FullscreenUndecorated(t *testing.T) {
	s, _ := testServer(headless.WithMonitors(
		headless.Monitor{ID: 1, Width: 1280, Height: 720},
		headless.Monitor{ID: 2, Width: 3840, Height: 2160},
	))

	_, out, err := s.handleProbeWindow(context.Background(), nil, ProbeWindowInput{
		Monitor:     intPtr(1),
		Decorations: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("probe_window: %v", err)
	}
	if out.InnerWidth != 3840 || out.InnerHeight != 2160 {
		t.Fatalf("expected monitor size, got %dx%d", out.InnerWidth, out.InnerHeight)
	}
	if out.OuterWidth != out.InnerWidth || out.OuterHeight != out.InnerHeight {
		t.Fatalf("fullscreen outer size should equal inner, got %+v", out)
	}
}

func TestProbeWindow_Errors(t *testing.T) {
	s, _ := testServer()

	if _, _, err := s.handleProbeWindow(context.Background(), nil, ProbeWindowInput{Monitor: intPtr(3)}); err == nil {
		t.Fatalf("expected unknown monitor to fail")
	}
	if _, _, err := s.handleProbeWindow(context.Background(), nil, ProbeWindowInput{Width: 10}); err == nil {
		t.Fatalf("expected lone width to fail")
	}

	boom := errors.New("boom")
	s, _ = testServer(headless.WithCreateError(boom))
	if _, _, err := s.handleProbeWindow(context.Background(), nil, ProbeWindowInput{}); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
}
