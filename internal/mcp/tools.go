package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winkit/window"
)

// maxProbeEvents bounds how many events probe_window reports.
const maxProbeEvents = 64

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	primary := window.PrimaryMonitorOf(s.backend)

	out := ListMonitorsOutput{Monitors: []MonitorInfo{}}
	for i, mon := range s.monitors() {
		info := monitorInfo(i, mon)
		info.Primary = sameMonitor(mon, primary)
		out.Monitors = append(out.Monitors, info)
	}
	s.logger.Debug("list_monitors", "count", len(out.Monitors))
	return nil, out, nil
}

func (s *Server) handlePrimaryMonitor(_ context.Context, _ *mcpsdk.CallToolRequest, _ PrimaryMonitorInput) (*mcpsdk.CallToolResult, MonitorInfo, error) {
	primary := window.PrimaryMonitorOf(s.backend)

	index := -1
	for i, mon := range s.monitors() {
		if sameMonitor(mon, primary) {
			index = i
			break
		}
	}
	info := monitorInfo(index, primary)
	info.Primary = true
	return nil, info, nil
}

func (s *Server) handleProbeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ProbeWindowInput) (*mcpsdk.CallToolResult, ProbeWindowOutput, error) {
	b := window.NewBuilder().
		WithBackend(s.backend).
		WithVisibility(args.Visible).
		WithTitle(args.Title)
	if args.Width > 0 || args.Height > 0 {
		if args.Width == 0 || args.Height == 0 {
			return nil, ProbeWindowOutput{}, fmt.Errorf("width and height must be given together")
		}
		b.WithDimensions(args.Width, args.Height)
	}
	if args.Decorations != nil {
		b.WithDecorations(*args.Decorations)
	}
	if args.Monitor != nil {
		monitors := s.monitors()
		if *args.Monitor < 0 || *args.Monitor >= len(monitors) {
			return nil, ProbeWindowOutput{}, fmt.Errorf("monitor %d not found", *args.Monitor)
		}
		b.WithFullscreen(monitors[*args.Monitor])
	}

	win, err := b.Build()
	if err != nil {
		return nil, ProbeWindowOutput{}, err
	}
	defer win.Close()

	out := ProbeWindowOutput{
		Platform:    win.NativeHandles().Platform,
		HiDPIFactor: win.HiDPIFactor(),
		Events:      []string{},
	}
	out.InnerWidth, out.InnerHeight, _ = win.InnerSize()
	out.OuterWidth, out.OuterHeight, _ = win.OuterSize()
	out.PixelWidth, out.PixelHeight, _ = win.InnerSizePixels()
	out.X, out.Y, out.PositionKnown = win.Position()

	for ev := range win.PollEvents().All() {
		if len(out.Events) == maxProbeEvents {
			break
		}
		out.Events = append(out.Events, ev.String())
	}

	s.logger.Debug("probe_window",
		"platform", out.Platform,
		"inner_width", out.InnerWidth,
		"inner_height", out.InnerHeight,
		"events", len(out.Events),
	)
	return nil, out, nil
}

func (s *Server) monitors() []window.MonitorID {
	var out []window.MonitorID
	for mon := range window.AvailableMonitorsOf(s.backend).All() {
		out = append(out, mon)
	}
	return out
}

func monitorInfo(index int, mon window.MonitorID) MonitorInfo {
	name, _ := mon.Name()
	w, h := mon.Dimensions()
	return MonitorInfo{
		Index:    index,
		Name:     name,
		NativeID: mon.NativeIdentifier().String(),
		Width:    w,
		Height:   h,
	}
}

func sameMonitor(a, b window.MonitorID) bool {
	return a.Backend() == b.Backend()
}
