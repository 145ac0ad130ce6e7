package server

import (
	"os"
	"os/signal"
	"syscall"
)

// waitForShutdown returns a channel that is closed when an interrupt or
// terminate signal is received.
func waitForShutdown() <-chan struct{} {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		<-quit
		signal.Stop(quit)
		close(done)
	}()
	return done
}
