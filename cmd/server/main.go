package main

import (
	"log/slog"
	"os"

	"github.com/nfrund/onlinehelp/internal/config"
	"github.com/nfrund/onlinehelp/internal/logging"
	"github.com/nfrund/onlinehelp/internal/server"
)

func main() {
	cfg := config.New()
	logging.New() // Initialize the structured logger

	s, err := server.New(server.Deps{Cfg: cfg})
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	if err := s.Start(cfg.GetAddr()); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
