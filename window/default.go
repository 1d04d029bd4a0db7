package window

import (
	"fmt"
	"sync"

	"github.com/1broseidon/winkit/backend"
	"github.com/1broseidon/winkit/internal/config"
	"github.com/1broseidon/winkit/internal/platform"
)

var defaultBackend struct {
	mu     sync.Mutex
	opened bool
	be     backend.Backend
	err    error
}

// DefaultBackend returns the process-wide backend, opening it on first use
// from the winkit configuration. A failed open is remembered and returned
// again.
func DefaultBackend() (backend.Backend, error) {
	defaultBackend.mu.Lock()
	defer defaultBackend.mu.Unlock()

	if !defaultBackend.opened {
		defaultBackend.be, defaultBackend.err = openDefault()
		defaultBackend.opened = true
	}
	return defaultBackend.be, defaultBackend.err
}

// SetDefaultBackend replaces the process-wide backend. Passing nil makes the
// next DefaultBackend call open one from configuration again.
func SetDefaultBackend(be backend.Backend) {
	defaultBackend.mu.Lock()
	defer defaultBackend.mu.Unlock()

	defaultBackend.be = be
	defaultBackend.err = nil
	defaultBackend.opened = be != nil
}

func openDefault() (backend.Backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return platform.Open(cfg, cfg.Logger())
}
