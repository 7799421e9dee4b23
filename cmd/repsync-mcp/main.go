package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/repsync/internal/config"
	"github.com/meltforce/repsync/internal/mcp"
	"github.com/meltforce/repsync/internal/schedule"
	"github.com/meltforce/repsync/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Serves the coaching MCP tools over stdio for assistant integrations.
// Logs go to stderr; stdout carries the protocol.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	resolver := schedule.NewResolver(db, log)
	s := mcp.New(db, resolver, Version, log)

	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
