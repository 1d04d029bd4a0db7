package platform

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/1broseidon/winkit/backend"
	"github.com/1broseidon/winkit/backend/headless"
	"github.com/1broseidon/winkit/internal/config"
)

// Open returns the backend selected by cfg. Auto picks the native backend
// for the build target.
func Open(cfg *config.Config, logger *slog.Logger) (backend.Backend, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// xgb reads the cookie file from the environment.
	if cfg.XAuthority != "" {
		if err := os.Setenv("XAUTHORITY", cfg.XAuthority); err != nil {
			return nil, fmt.Errorf("failed to set XAUTHORITY: %w", err)
		}
	}

	switch cfg.Backend {
	case config.BackendHeadless:
		return openHeadless(cfg, logger), nil
	case config.BackendX11:
		return openX11(cfg, logger)
	default:
		return openNative(cfg, logger)
	}
}

func openHeadless(cfg *config.Config, logger *slog.Logger) backend.Backend {
	var opts []headless.Option
	if cfg.HiDPIFactor > 0 {
		opts = append(opts, headless.WithHiDPIFactor(cfg.HiDPIFactor))
	}
	logger.Debug("using headless backend", "hidpi_factor", cfg.HiDPIFactor)
	return headless.New(opts...)
}
