// Package server wires the HTTP routes to the movie repository and the
// TMDb client. All dependencies arrive through the constructor; there
// is no process-wide store handle.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"filmlog/internal/config"
	"filmlog/internal/movies"
	"filmlog/internal/tmdb"
)

// Server holds the handler dependencies.
type Server struct {
	cfg    *config.Config
	repo   *movies.Repository
	tmdb   *tmdb.Client
	logger hclog.Logger
}

// New creates a server with its dependencies injected.
func New(cfg *config.Config, repo *movies.Repository, tmdbClient *tmdb.Client, logger hclog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		repo:   repo,
		tmdb:   tmdbClient,
		logger: logger,
	}
}

// Router configures and returns the gin engine.
func (s *Server) Router() *gin.Engine {
	if s.cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	if s.cfg.Server.EnableCORS {
		r.Use(corsMiddleware())
	}

	r.GET("/", s.listMovies)
	r.GET("/add", s.showAddForm)
	r.POST("/add", s.searchCandidates)
	r.GET("/find", s.findMovie)
	r.GET("/update", s.showUpdateForm)
	r.POST("/update", s.updateMovie)
	r.GET("/delete/:movie_id", s.deleteMovie)
	r.POST("/delete/:movie_id", s.deleteMovie)
	r.GET("/health", s.health)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
