// Package api exposes the liability engine over HTTP with gin.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/carbonliab/internal/breakeven"
	"github.com/rgehrsitz/carbonliab/internal/calculation"
	"github.com/rgehrsitz/carbonliab/internal/compare"
)

// Server wires the engine into a gin router.
type Server struct {
	engine  *calculation.CarbonEngine
	compare *compare.CompareEngine
	solver  *breakeven.Solver
	logger  calculation.Logger
	router  *gin.Engine
}

// NewServer builds the router for engine. Use gin.SetMode before calling to
// pick release or test mode.
func NewServer(engine *calculation.CarbonEngine) *Server {
	s := &Server{
		engine:  engine,
		compare: compare.NewCompareEngine(engine),
		solver:  breakeven.NewDefaultSolver(),
		logger:  engine.Logger,
	}
	s.solver.SetLogger(engine.Logger)

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := r.Group("/api/v1")
	v1.GET("/liability", s.handleLiability)
	v1.GET("/montecarlo", s.handleMonteCarlo)
	v1.GET("/sensitivity", s.handleSensitivity)
	v1.GET("/insights", s.handleInsights)
	v1.GET("/summary", s.handleSummary)
	v1.GET("/compare", s.handleCompare)
	v1.GET("/breakeven", s.handleBreakeven)
	v1.GET("/facilities", s.handleFacilities)
	v1.GET("/markets", s.handleMarkets)
	v1.GET("/glossary", s.handleGlossary)
	v1.GET("/pathways", s.handlePathways)
	v1.GET("/stakeholders", s.handleStakeholders)
	v1.GET("/payback", s.handlePayback)

	s.router = r
	return s
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Infof("server stopped")
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debugf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
