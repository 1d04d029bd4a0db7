package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// BackendKind names a window backend.
type BackendKind string

const (
	BackendAuto     BackendKind = "auto"     // Native backend for the build target.
	BackendX11      BackendKind = "x11"      // X11 through a direct protocol connection.
	BackendHeadless BackendKind = "headless" // In-memory windows, no display needed.
)

// LoggingConfig controls the slog handler used by backends and the CLI.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Config is the winkit configuration.
type Config struct {
	Backend BackendKind `yaml:"backend"`
	// Display is the X display to connect to. Empty uses $DISPLAY.
	Display    string `yaml:"display"`
	XAuthority string `yaml:"xauthority"`
	// HiDPIFactor overrides the scale factor reported by native windows.
	// Zero means detect.
	HiDPIFactor float32       `yaml:"hidpi_factor"`
	Logging     LoggingConfig `yaml:"logging"`
}

// ValidationError points at the offending config key.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendAuto,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendX11, BackendHeadless:
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, x11, headless")}
	}
	if c.HiDPIFactor < 0 {
		return &ValidationError{Path: "hidpi_factor", Err: fmt.Errorf("hidpi_factor must be >= 0")}
	}
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return &ValidationError{Path: "logging.level", Err: err}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ValidationError{Path: "logging.format", Err: fmt.Errorf("logging.format must be text or json")}
	}
	return nil
}

// ParseLogLevel maps a config level name to an slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// Logger builds a stderr logger from the logging section.
func (c *Config) Logger() *slog.Logger {
	level, err := ParseLogLevel(c.Logging.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
