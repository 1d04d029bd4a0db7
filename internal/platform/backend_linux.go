//go:build linux

package platform

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/winkit/backend"
	"github.com/1broseidon/winkit/internal/config"
	"github.com/1broseidon/winkit/internal/x11"
)

// NativeName is the backend auto selects on this platform.
const NativeName = "x11"

func openNative(cfg *config.Config, logger *slog.Logger) (backend.Backend, error) {
	return openX11(cfg, logger)
}

func openX11(cfg *config.Config, logger *slog.Logger) (backend.Backend, error) {
	be, err := x11.NewBackend(x11.Options{
		Display:     cfg.Display,
		HiDPIFactor: cfg.HiDPIFactor,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return be, nil
}
