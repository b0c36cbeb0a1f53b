// Package httpapi exposes the account operations over HTTP. The surface is
// deliberately thin: form-encoded inputs, JSON outputs, all domain logic
// behind the AuthService facade.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/twinsight/dashboard-auth/internal/logging"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	srv    *http.Server
	logger logging.Logger
}

// NewServer builds the router and the underlying http.Server.
func NewServer(addr string, auth AuthService, logger logging.Logger) *Server {
	h := &handler{auth: auth, logger: logger}

	r := mux.NewRouter()
	r.Use(loggingMiddleware(logger), corsMiddleware)
	r.HandleFunc("/auth/register", h.register).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/auth/logout", h.logout).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/auth/session", h.session).Methods(http.MethodPost, http.MethodOptions)

	return &Server{
		srv:    &http.Server{Addr: addr, Handler: r},
		logger: logger,
	}
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}
