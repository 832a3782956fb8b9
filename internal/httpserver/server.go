// Package httpserver is the transport surface: two POST endpoints sharing
// the discovery pipeline, one blocking JSON and one streaming SSE, plus
// health and metrics. Authentication and rate limiting live in front of
// this service and are not handled here.
package httpserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wadhifa/jobscout/internal/engine"
)

// Server wraps the gin router.
type Server struct {
	router *gin.Engine
}

// New builds the router with all routes registered.
func New() *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/metrics", func(c *gin.Context) {
		c.String(http.StatusOK, engine.FormatMetrics())
	})

	api := router.Group("/api/v1")
	{
		api.POST("/search", handleSearch)
		api.POST("/search/stream", handleSearchStream)
	}

	return &Server{router: router}
}

// Run blocks serving HTTP on the given port.
func (s *Server) Run(port string) error {
	return s.router.Run(":" + port)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
