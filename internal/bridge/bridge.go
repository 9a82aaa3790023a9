// Package bridge implements the stateless intermediary between the MCP
// tool server and the command endpoint running inside the CAD host.
// It validates the edge parameter, forwards the request as a single HTTP
// GET, and relays the endpoint's response verbatim. No retries, no
// timeout beyond the HTTP client default, nothing held across requests.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/livecube/livecube/internal/validate"
)

// ErrUnreachable is returned when the command endpoint cannot be reached.
// Callers surface it as a connectivity failure, distinct from an error
// the endpoint itself reported.
var ErrUnreachable = errors.New("fusion endpoint unreachable")

// Server forwards cube creation requests to the in-process endpoint.
type Server struct {
	hostURL string
	client  *http.Client
	engine  *gin.Engine
}

// NewServer builds a bridge that forwards to the command endpoint at
// hostURL (e.g. "http://127.0.0.1:18080").
func NewServer(hostURL string) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{hostURL: hostURL, client: http.DefaultClient, engine: gin.New()}
	s.engine.Use(gin.Recovery())

	s.engine.GET("/create_cube", s.handleCreateCube)
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "path not found"})
	})

	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails. Blocks.
func (s *Server) Run(addr string) error {
	slog.Info("bridge listening", "addr", addr, "host_url", s.hostURL)
	return s.engine.Run(addr)
}

// handleCreateCube validates the edge and relays the endpoint's response.
// Validation failures never reach the endpoint. The raw query value is
// forwarded unchanged so the edge travels the chain without rewriting.
func (s *Server) handleCreateCube(c *gin.Context) {
	raw := c.Query("edge")
	edge, err := validate.ParseEdge(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	status, contentType, body, err := s.forward(c.Request.Context(), raw)
	if err != nil {
		slog.Error("forward to fusion endpoint failed", "edge_mm", edge, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": err.Error()})
		return
	}

	slog.Info("forwarded cube request", "edge_mm", edge, "downstream_status", status)
	c.Data(status, contentType, body)
}

// forward issues the single GET to the command endpoint. One attempt;
// a connection failure is wrapped in ErrUnreachable.
func (s *Server) forward(ctx context.Context, rawEdge string) (status int, contentType string, body []byte, err error) {
	u := fmt.Sprintf("%s/cmd?edge=%s", s.hostURL, url.QueryEscape(rawEdge))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, "", nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, "", nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", nil, fmt.Errorf("%w: reading response: %v", ErrUnreachable, err)
	}
	return resp.StatusCode, resp.Header.Get("Content-Type"), body, nil
}
