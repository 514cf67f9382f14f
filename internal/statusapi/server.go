// Package statusapi is a small read-only HTTP introspection surface for a
// running interpreter instance: health, rate/resource stats, and recently
// reported anomalies, with Swagger docs. Adapted from the teacher's
// internal/api, trimmed to the read-only subset — there is no mutable
// zone/config state here for an operator to write to.
package statusapi

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dnsglass/passivedns/internal/config"
)

// Server is the status API's HTTP server.
type Server struct {
	logger     *slog.Logger
	engine     *gin.Engine
	httpServer *http.Server
	Recorder   *Recorder
}

// New builds a Server bound to cfg.Host:cfg.Port. The caller feeds
// interpreter activity into Server.Recorder as messages are parsed and
// weirds are reported.
func New(cfg config.StatusAPIConfig, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(slogRequestLogger(logger))

	recorder := NewRecorder()
	h := newHandler(recorder)
	registerRoutes(engine, h)

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{logger: logger, engine: engine, httpServer: httpServer, Recorder: recorder}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s.httpServer == nil {
		return ""
	}
	return s.httpServer.Addr
}

// Engine exposes the underlying gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine { return s.engine }

// ListenAndServe runs the HTTP server until it is shut down or fails.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
