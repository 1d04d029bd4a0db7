package x11

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/1broseidon/winkit/backend"
)

// Options configures the X11 backend.
type Options struct {
	// Display overrides $DISPLAY.
	Display string
	// HiDPIFactor overrides the factor derived from the screen DPI when > 0.
	HiDPIFactor float32
	Logger      *slog.Logger
}

// Backend creates windows on an X server. Every window and every monitor
// query uses its own connection.
type Backend struct {
	display string
	hidpi   float32
	logger  *slog.Logger
}

var _ backend.Backend = (*Backend)(nil)

// NewBackend checks that the display is reachable.
func NewBackend(opts Options) (*Backend, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := NewConnection(opts.Display)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	hidpi := opts.HiDPIFactor
	if hidpi <= 0 {
		screen := conn.XUtil.Screen()
		hidpi = factorFromDPI(screenDPI(int(screen.WidthInPixels), int(screen.WidthInMillimeters)))
	}

	logger.Debug("x11 backend ready", "display", conn.Display, "hidpi_factor", hidpi)
	return &Backend{
		display: conn.Display,
		hidpi:   hidpi,
		logger:  logger,
	}, nil
}

// Display is the resolved display name.
func (b *Backend) Display() string {
	return b.display
}

func (b *Backend) Create(attrs backend.Attributes, platform backend.PlatformSpecific) (backend.Window, error) {
	if attrs.Dimensions == nil {
		return nil, fmt.Errorf("window dimensions not resolved")
	}
	if attrs.Monitor != nil {
		if _, ok := attrs.Monitor.(Monitor); !ok {
			return nil, fmt.Errorf("monitor %T does not belong to the x11 backend: %w", attrs.Monitor, backend.ErrUnsupported)
		}
	}

	conn, err := NewConnection(b.display)
	if err != nil {
		return nil, err
	}
	w, err := createWindow(conn, attrs, platform, b.hidpi, b.logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	b.logger.Debug("window created",
		"window", w.id,
		"title", attrs.Title,
		"width", w.width,
		"height", w.height,
		"fullscreen", attrs.Fullscreen(),
	)
	return w, nil
}

func (b *Backend) Monitors() []backend.Monitor {
	monitors := b.monitors()
	out := make([]backend.Monitor, len(monitors))
	for i, m := range monitors {
		out[i] = m
	}
	return out
}

func (b *Backend) PrimaryMonitor() backend.Monitor {
	mon, ok := PrimaryOf(b.monitors())
	if !ok {
		return Monitor{Primary: true}
	}
	return mon
}

func (b *Backend) monitors() []Monitor {
	conn, err := NewConnection(b.display)
	if err != nil {
		b.logger.Warn("cannot query monitors", "display", b.display, "error", err)
		return nil
	}
	defer conn.Close()

	monitors, err := conn.GetMonitors()
	if err != nil || len(monitors) == 0 {
		b.logger.Warn("randr monitors unavailable, using screen size", "display", b.display, "error", err)
		return []Monitor{conn.ScreenMonitor()}
	}
	return monitors
}

func screenDPI(pixels, millimeters int) float64 {
	if pixels <= 0 || millimeters <= 0 {
		return 96
	}
	return float64(pixels) * 25.4 / float64(millimeters)
}

// factorFromDPI rounds dpi/96 to the nearest quarter, never below 1.
func factorFromDPI(dpi float64) float32 {
	f := math.Round(dpi/96*4) / 4
	if f < 1 {
		f = 1
	}
	return float32(f)
}
