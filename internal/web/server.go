// Package web serves the surf spots as an HTML page and a JSON API
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dgilberg1988/my-surf-spots/internal/catalog"
	"github.com/dgilberg1988/my-surf-spots/internal/config"
	"github.com/dgilberg1988/my-surf-spots/internal/marine"
	"github.com/dgilberg1988/my-surf-spots/internal/ranking"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server bundles the router and its dependencies
type Server struct {
	cfg         config.WebConfig
	catalog     *catalog.Catalog
	fetcher     marine.WaveFetcher
	defaultSort ranking.SortMode
	logger      *slog.Logger
	engine      *gin.Engine
}

// New constructs a server with routes and middleware
func New(cfg config.WebConfig, cat *catalog.Catalog, fetcher marine.WaveFetcher, defaultSort ranking.SortMode, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		requestLogger(logger),
	)
	engine.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	s := &Server{
		cfg:         cfg,
		catalog:     cat,
		fetcher:     fetcher,
		defaultSort: defaultSort,
		logger:      logger.With("component", "web"),
		engine:      engine,
	}
	s.registerRoutes()
	return s
}

// Engine exposes the underlying gin engine (for tests)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until ctx is done or it fails
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.cfg.Address,
		Handler:        s.engine,
		ReadTimeout:    s.cfg.ReadTimeout,
		WriteTimeout:   s.cfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/api/spots", s.handleSpots)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
