package x11

import (
	"fmt"

	"github.com/1broseidon/winkit/backend"
	"github.com/BurntSushi/xgb/randr"
)

// Monitor represents a physical display
type Monitor struct {
	ID         int
	Output     uint32 // RandR output, 0 when RandR is unavailable
	OutputName string
	X          int
	Y          int
	Width      int
	Height     int
	Primary    bool
}

var _ backend.Monitor = Monitor{}

// Name is the RandR output name, e.g. "DP-1".
func (m Monitor) Name() (string, bool) {
	return m.OutputName, m.OutputName != ""
}

// NativeIdentifier is the RandR output id.
func (m Monitor) NativeIdentifier() backend.NativeMonitorID {
	if m.Output == 0 {
		return backend.NativeMonitorID{Kind: backend.MonitorIDUnavailable}
	}
	return backend.NativeMonitorID{Kind: backend.MonitorIDNumeric, Numeric: m.Output}
}

func (m Monitor) Dimensions() (uint32, uint32) {
	return uint32(m.Width), uint32(m.Height)
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	// Initialize RandR if not already done
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	// Get screen resources
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		output := crtcInfo.Outputs[0]
		outputName := ""
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), output, resources.ConfigTimestamp).Reply(); err == nil {
			outputName = string(outputInfo.Name)
		}

		isPrimary := false
		for _, o := range crtcInfo.Outputs {
			if primary != 0 && o == primary {
				isPrimary = true
			}
		}

		monitors = append(monitors, Monitor{
			ID:         i,
			Output:     uint32(output),
			OutputName: outputName,
			X:          int(crtcInfo.X),
			Y:          int(crtcInfo.Y),
			Width:      int(crtcInfo.Width),
			Height:     int(crtcInfo.Height),
			Primary:    isPrimary,
		})
	}

	return monitors, nil
}

// ScreenMonitor describes the whole root window as one unnamed monitor, for
// servers without RandR outputs (Xvfb, some VNC servers).
func (c *Connection) ScreenMonitor() Monitor {
	screen := c.XUtil.Screen()
	return Monitor{
		Width:   int(screen.WidthInPixels),
		Height:  int(screen.HeightInPixels),
		Primary: true,
	}
}

// PrimaryOf returns the primary monitor in monitors, or the first one.
func PrimaryOf(monitors []Monitor) (Monitor, bool) {
	if len(monitors) == 0 {
		return Monitor{}, false
	}
	for _, m := range monitors {
		if m.Primary {
			return m, true
		}
	}
	return monitors[0], true
}
