package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/repsync/internal/config"
	"github.com/meltforce/repsync/internal/importer"
	"github.com/meltforce/repsync/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	programsPath := flag.String("path", "", "path to directory of program spreadsheets (required)")
	statePath := flag.String("state", "", "directory for the import state db (default: alongside spreadsheets)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *programsPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: repsync-import -config config.yaml -path /path/to/programs [-state dir]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*programsPath)
	if err != nil || !info.IsDir() {
		log.Error("programs path does not exist or is not a directory", "path", *programsPath)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	stateDir := *statePath
	if stateDir == "" {
		stateDir = *programsPath
	}
	state, err := importer.OpenStateDB(stateDir)
	if err != nil {
		log.Error("failed to open state db", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	stats, err := importer.New(db, state, log).Import(ctx, *programsPath)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	log.Info("import complete",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"programs_created", stats.ProgramsCreated,
		"templates_created", stats.TemplatesCreated,
		"rows_inserted", stats.RowsInserted,
		"rows_duplicated", stats.RowsDuplicated,
	)
}
