package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hnrobert/signalist/internal/config"
	"github.com/hnrobert/signalist/internal/logger"
)

type Server struct {
	cfg config.Config
	app *App
	err error
	h   http.Handler
}

func New(cfg config.Config, deps Deps) *Server {
	app, err := newApp(cfg, deps)
	if err != nil {
		// Defer error to Run for a single error return path.
		return &Server{cfg: cfg, err: err, h: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		})}
	}
	return &Server{cfg: cfg, app: app, h: app.routes()}
}

func (s *Server) Handler() http.Handler { return s.h }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	httpSrv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.app.forms.Run(sweepCtx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
