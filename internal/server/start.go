package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Start runs the HTTP server until an interrupt or terminate signal arrives,
// then shuts it down gracefully.
func (s *Server) Start(addr string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if s.Cfg.GetHotReload() {
		if err := s.watcher.Start(ctx); err != nil {
			return err
		}
		defer s.watcher.Stop()
	} else {
		slog.Info("Hot-reload disabled, skipping help watcher setup")
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting online help server", "addr", addr)
		if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-waitForShutdown():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	slog.Info("Shutting down online help server")
	return s.E.Shutdown(shutdownCtx)
}
