package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winkit/backend"
)

const (
	ServerName    = "winkit"
	ServerVersion = "0.1.0"
)

// Server is the MCP server exposing monitor and window queries.
type Server struct {
	mcpServer *mcpsdk.Server
	backend   backend.Backend
	logger    *slog.Logger
}

// NewServer creates a new MCP server answering from be.
func NewServer(be backend.Backend, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		backend: be,
		logger:  logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "name", ServerName, "version", ServerVersion)
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List the monitors known to the window backend with their names, native identifiers and pixel dimensions. The primary monitor is flagged.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "primary_monitor",
		Description: "Return the primary monitor of the window backend.",
	}, s.handlePrimaryMonitor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "probe_window",
		Description: "Create a short-lived window with the given options, report its inner, outer and pixel sizes, position, HiDPI factor and the events it produced, then close it. Useful to check what the window manager does with a configuration.",
	}, s.handleProbeWindow)
}
