//go:build !linux

package platform

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/1broseidon/winkit/backend"
	"github.com/1broseidon/winkit/internal/config"
)

// NativeName is empty where no native backend exists.
const NativeName = ""

func openNative(*config.Config, *slog.Logger) (backend.Backend, error) {
	return nil, fmt.Errorf("no native backend for %s: %w", runtime.GOOS, backend.ErrUnsupported)
}

func openX11(*config.Config, *slog.Logger) (backend.Backend, error) {
	return nil, fmt.Errorf("x11 backend is only built on linux: %w", backend.ErrUnsupported)
}
