// Package api exposes the fact-check HTTP endpoints.
package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/resolve"
	"github.com/claimlens/claimlens/internal/store"
)

// Server wires the HTTP routes to the resolver, pipeline, and store
type Server struct {
	resolver *resolve.Resolver
	pipeline *pipeline.Pipeline
	store    store.Store
	cfg      model.ServerConfig
	log      *zap.SugaredLogger
}

// NewServer creates a new API server
func NewServer(resolver *resolve.Resolver, p *pipeline.Pipeline, st store.Store, cfg model.ServerConfig, log *zap.SugaredLogger) *Server {
	return &Server{
		resolver: resolver,
		pipeline: p,
		store:    st,
		cfg:      cfg,
		log:      log,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/fact-check", s.handleSubmit)
		api.GET("/fact-check/:id", s.handleResult)
	}

	router.GET("/results/:id", s.handleResultPage)

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
