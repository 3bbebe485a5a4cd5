package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server runs the API listener next to a diagnostics listener.
type Server struct {
	api    *http.Server
	diag   *http.Server
	logger *zap.SugaredLogger
}

func NewServer(addr string, handler http.Handler, diagAddr string, diagHandler http.Handler, logger *zap.SugaredLogger) *Server {
	return &Server{
		api: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		diag: &http.Server{
			Addr:    diagAddr,
			Handler: diagHandler,
		},
		logger: logger,
	}
}

// Start blocks until either listener fails or both are shut down.
func (s *Server) Start() error {
	errc := make(chan error, 2)

	go func() {
		s.logger.Infow("diagnostics listening", "addr", s.diag.Addr)
		errc <- s.diag.ListenAndServe()
	}()
	go func() {
		s.logger.Infow("api listening", "addr", s.api.Addr)
		errc <- s.api.ListenAndServe()
	}()

	for i := 0; i < 2; i++ {
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return errors.Join(s.api.Shutdown(ctx), s.diag.Shutdown(ctx))
}
