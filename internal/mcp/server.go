// Package mcp implements the Model Context Protocol server, exposing
// cube generation to AI assistants. One tool does the work
// (generate_cube); a second (cube_job_status) reports on cloud jobs.
//
// Two execution paths exist behind the tool: local mode forwards through
// the bridge server to a live Fusion session, cloud mode submits a
// Design Automation workitem to APS.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/livecube/livecube/internal/aps"
	"github.com/livecube/livecube/internal/config"
	"github.com/livecube/livecube/internal/version"
)

// Execution modes.
const (
	ModeLocal = "local"
	ModeCloud = "cloud"
)

// Transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config selects the execution path and transport for the tool server.
type Config struct {
	Mode      string     // local or cloud
	Transport string     // stdio (default) or http
	Listen    string     // listen address for the http transport
	BridgeURL string     // bridge base URL (local mode)
	APS       config.APS // cloud credentials (cloud mode)
}

// Serve starts the MCP server and blocks. Stdio is the default
// transport, one process per client session; stdout carries JSON-RPC so
// all logging goes to stderr.
func Serve(cfg Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h, err := newHandlers(cfg)
	if err != nil {
		return err
	}

	s := server.NewMCPServer(
		"fusion",
		version.Short(),
		server.WithToolCapabilities(true),
	)
	registerTools(s, h)

	slog.Info("fusion MCP server ready", "mode", cfg.Mode, "transport", cfg.Transport)

	switch cfg.Transport {
	case TransportHTTP:
		return server.NewStreamableHTTPServer(s).Start(cfg.Listen)
	case TransportStdio, "":
		err := server.ServeStdio(s)
		if errors.Is(err, context.Canceled) {
			slog.Info("server stopped")
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown transport: %q", cfg.Transport)
	}
}

// handlers provides MCP request handlers. The aps client is nil in local
// mode; the bridge URL is unused in cloud mode.
type handlers struct {
	mode      string
	bridgeURL string
	aps       *aps.Client
	http      *http.Client
}

// newHandlers validates the mode up front so a misconfigured server
// fails at startup rather than on the first tool call.
func newHandlers(cfg Config) (*handlers, error) {
	h := &handlers{mode: cfg.Mode, bridgeURL: cfg.BridgeURL, http: http.DefaultClient}
	switch cfg.Mode {
	case ModeLocal, "":
		h.mode = ModeLocal
	case ModeCloud:
		if err := cfg.APS.ValidateCloud(); err != nil {
			return nil, err
		}
		h.aps = aps.New(cfg.APS)
	default:
		return nil, fmt.Errorf("unknown mode: %q", cfg.Mode)
	}
	return h, nil
}

// registerTools exposes cube operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("generate_cube",
			mcp.WithDescription("Create a parametric cube with the given edge length in millimetres. Local mode builds it in the running Fusion session; cloud mode submits a Design Automation workitem."),
			mcp.WithNumber("edge_length", mcp.Required(), mcp.Description("Cube edge length in mm (must be positive)")),
		),
		h.generateCube,
	)

	s.AddTool(
		mcp.NewTool("cube_job_status",
			mcp.WithDescription("Check the status of a previously submitted Design Automation workitem (cloud mode only)."),
			mcp.WithString("workitem_id", mcp.Required(), mcp.Description("Workitem ID returned by generate_cube")),
		),
		h.jobStatus,
	)
}
