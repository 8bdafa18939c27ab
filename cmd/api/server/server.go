package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Server runs the REST API.
type Server struct {
	HTTP   *http.Server
	Logger *zap.Logger
}

// New creates a server listening on :port.
func New(port string, handler http.Handler, l *zap.Logger) *Server {
	return &Server{
		HTTP:   NewGinServer(":"+port, handler),
		Logger: l,
	}
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	s.Logger.Info("REST API running", zap.String("address", s.HTTP.Addr))

	if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("shutting down REST API...")
	return s.HTTP.Shutdown(ctx)
}
