package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvConfigPath = "WINKIT_CONFIG"
	EnvBackend    = "WINKIT_BACKEND"
	EnvHiDPI      = "WINKIT_HIDPI_FACTOR"
)

// DefaultConfigPath returns $WINKIT_CONFIG or ~/.config/winkit/config.yaml.
func DefaultConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "winkit", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads path over the defaults, applies environment overrides
// and validates the result. A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	return loadFromPath(path, os.Getenv)
}

func loadFromPath(path string, getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeStrictYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := applyEnv(cfg, getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvBackend)); v != "" {
		cfg.Backend = BackendKind(strings.ToLower(v))
	}
	if v := strings.TrimSpace(getenv(EnvHiDPI)); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return &ValidationError{Path: EnvHiDPI, Err: fmt.Errorf("invalid factor %q", v)}
		}
		cfg.HiDPIFactor = float32(f)
	}
	if cfg.Display == "" {
		cfg.Display = getenv("DISPLAY")
	}
	if cfg.XAuthority == "" {
		cfg.XAuthority = getenv("XAUTHORITY")
	}
	return nil
}

func decodeStrictYAML(data []byte, out *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to parse yaml: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
