package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/1broseidon/winkit/backend"
	"github.com/1broseidon/winkit/internal/config"
	"github.com/1broseidon/winkit/internal/platform"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "open":
		os.Exit(runOpen(os.Args[2:]))
	case "events":
		os.Exit(runEvents(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winkit <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  monitors            List monitors")
	fmt.Fprintln(w, "  open                Open a window and print its events")
	fmt.Fprintln(w, "  events              Open a window with a live event viewer")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config path         Print the configuration file path")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winkit <command> --help' for command-specific options.")
}

// backendFlags are shared by every command that needs a backend.
type backendFlags struct {
	configPath string
	backend    string
	display    string
}

func (f *backendFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Config file path (default: ~/.config/winkit/config.yaml)")
	fs.StringVar(&f.backend, "backend", "", "Backend override: auto, x11 or headless")
	fs.StringVar(&f.display, "display", "", "X display override")
}

// load reads the config and applies command-line overrides.
func (f *backendFlags) load() (*config.Config, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.backend != "" {
		cfg.Backend = config.BackendKind(f.backend)
	}
	if f.display != "" {
		cfg.Display = f.display
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *backendFlags) open() (backend.Backend, *slog.Logger, error) {
	cfg, err := f.load()
	if err != nil {
		return nil, nil, err
	}
	logger := cfg.Logger()
	be, err := platform.Open(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return be, logger, nil
}
