package mcp

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorInfo describes one monitor.
type MonitorInfo struct {
	Index    int    `json:"index"`
	Name     string `json:"name,omitempty"`
	NativeID string `json:"native_id"`
	Width    uint32 `json:"width"`
	Height   uint32 `json:"height"`
	Primary  bool   `json:"primary"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// PrimaryMonitorInput is the input for the primary_monitor tool.
type PrimaryMonitorInput struct{}

// ProbeWindowInput is the input for the probe_window tool.
type ProbeWindowInput struct {
	Width       uint32 `json:"width,omitempty" jsonschema:"Requested inner width in points (default: 1024, or the monitor width when fullscreen)"`
	Height      uint32 `json:"height,omitempty" jsonschema:"Requested inner height in points (default: 768, or the monitor height when fullscreen)"`
	Title       string `json:"title,omitempty" jsonschema:"Window title"`
	Monitor     *int   `json:"monitor,omitempty" jsonschema:"Index from list_monitors; when set the window is created fullscreen on that monitor"`
	Decorations *bool  `json:"decorations,omitempty" jsonschema:"Whether the window manager should draw decorations (default: true)"`
	Visible     bool   `json:"visible,omitempty" jsonschema:"Map the window while probing (default: false)"`
}

// ProbeWindowOutput is the output for the probe_window tool.
type ProbeWindowOutput struct {
	Platform      string   `json:"platform"`
	InnerWidth    uint32   `json:"inner_width"`
	InnerHeight   uint32   `json:"inner_height"`
	OuterWidth    uint32   `json:"outer_width"`
	OuterHeight   uint32   `json:"outer_height"`
	PixelWidth    uint32   `json:"pixel_width"`
	PixelHeight   uint32   `json:"pixel_height"`
	HiDPIFactor   float32  `json:"hidpi_factor"`
	X             int      `json:"x"`
	Y             int      `json:"y"`
	PositionKnown bool     `json:"position_known"`
	Events        []string `json:"events"`
}
