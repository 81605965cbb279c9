package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platefit/backend/config"
	"github.com/platefit/backend/internal/api"
	"github.com/platefit/backend/internal/middleware"
	"github.com/platefit/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New assembles the gin engine, middleware, and routes around the
// recommendation pipeline. rateLimiter may be nil when Redis is unavailable.
func New(cfg *config.Config, recommender service.Recommender, rateLimiter *middleware.RateLimiter) *Server {
	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check endpoint (no rate limiting)
	router.GET("/health", api.HealthCheck)
	router.GET("/api/health", api.HealthCheck)

	recommendHandler := api.NewRecommendHandler(recommender, rateLimiter)

	v1 := router.Group("/api/v1")
	recommendHandler.RegisterRoutes(v1)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
