// Package server exposes quiz sessions over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/venusquiz/internal/quiz"
	"github.com/abhisek/venusquiz/internal/session"
)

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Config configures a Server.
type Config struct {
	Addr string

	// AllowOrigins lists the CORS origins; "*" allows any. Empty disables CORS.
	AllowOrigins []string

	// Labels render question difficulties.
	Labels quiz.DifficultyLabels

	// NewSession creates the controller behind a new session. The server
	// passes its own options, which must be applied.
	NewSession func(opts ...session.Option) *session.Controller
}

// Server routes HTTP requests to session controllers.
type Server struct {
	cfg      Config
	engine   *gin.Engine
	sessions *registry
	metrics  *metrics
}

// New builds the router. Call Run to serve, or use Handler directly.
func New(cfg Config) *Server {
	s := &Server{
		cfg:      cfg,
		engine:   gin.Default(),
		sessions: newRegistry(),
		metrics:  newMetrics(),
	}

	if len(cfg.AllowOrigins) > 0 {
		s.engine.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.AllowOrigins,
			AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Content-Type", "Content-Length", "Accept", "Origin"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}
	s.engine.Use(s.metrics.middleware())

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api/sessions")
	{
		api.POST("", s.createSession)
		api.GET("/:id", s.getSession)
		api.DELETE("/:id", s.deleteSession)
		api.POST("/:id/start", s.start)
		api.POST("/:id/answers", s.submitAnswer)
		api.POST("/:id/review", s.openReview)
		api.DELETE("/:id/review", s.closeReview)
		api.POST("/:id/reset", s.reset)
	}

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully and closes
// every open session.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close discards every open session.
func (s *Server) Close() {
	s.sessions.closeAll()
	s.metrics.sessions.Set(0)
}
