package host

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/livecube/livecube/internal/validate"
)

// Server is the HTTP front over a Modeler. One route: GET /cmd?edge=N.
type Server struct {
	modeler Modeler
	engine  *gin.Engine
}

// NewServer builds the endpoint router around the given Modeler.
func NewServer(m Modeler) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{modeler: m, engine: gin.New()}
	s.engine.Use(gin.Recovery())

	s.engine.GET("/cmd", s.handleCmd)
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
	slog.Info("command endpoint listening", "addr", addr)
	return s.engine.Run(addr)
}

// handleCmd parses the edge parameter and issues the single
// geometry-creation call. The original add-in silently substituted a
// 20mm default for bad input; a malformed edge is a 400 here instead.
func (s *Server) handleCmd(c *gin.Context) {
	edge, err := validate.ParseEdge(c.Query("edge"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	msg, err := s.modeler.CreateCuboid(c.Request.Context(), edge)
	if err != nil {
		// Surface the host's native error text (e.g. "no active document").
		slog.Error("cuboid creation failed", "edge_mm", edge, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	slog.Info("cuboid created", "edge_mm", edge)
	c.JSON(http.StatusOK, gin.H{"status": "success", "cube": msg})
}
