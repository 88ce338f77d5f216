package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/aries-go/vcprover/internal/api/auth"
	"github.com/aries-go/vcprover/internal/config"
	"github.com/aries-go/vcprover/internal/logger"
	"github.com/aries-go/vcprover/pkg/prover"
	"github.com/aries-go/vcprover/pkg/walletstore"
)

// Server is the demo control-plane HTTP server exposing svc's handle-keyed
// operations over REST, behind a bearer-token guard.
type Server struct {
	server       *http.Server
	config       config.APIConfig
	shutdownOnce sync.Once
}

// NewServer builds a Server wired to svc and conns. history may be nil to
// disable presentation-history recording. The server is created stopped;
// call Start to begin serving.
func NewServer(cfg config.APIConfig, svc *prover.Service, conns *ConnectionRegistry, jwtService *auth.JWTService, history walletstore.Store) *Server {
	router := NewRouter(svc, conns, jwtService, history)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{server: httpServer, config: cfg}
}

// Start serves requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("control-plane API listening", "port", s.config.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
			}
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("control-plane API shutdown signal received")
		return s.Stop(context.Background())
	case err := <-errChan:
		return fmt.Errorf("control-plane API failed: %w", err)
	}
}

// Stop gracefully shuts down the server. Safe to call multiple times.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("control-plane API shutdown error: %w", err)
			logger.Error("control-plane API shutdown error", "error", err)
		} else {
			logger.Info("control-plane API stopped gracefully")
		}
	})
	return shutdownErr
}

// Port returns the TCP port the server is listening on.
func (s *Server) Port() int {
	return s.config.Port
}
