package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/Apurer/dbmodel-tracking/internal/app/api"
	notesworkflows "github.com/Apurer/dbmodel-tracking/internal/domains/notes/adapters/workflows"
	platformobservability "github.com/Apurer/dbmodel-tracking/internal/platform/observability"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN not set; nothing to archive in an in-memory store")
	}
	logger := platformobservability.NewLogger(cfg.ObservabilitySettings("notes-archiver"))

	noteService, cleanup := api.BuildNotesService(ctx, cfg, &platformobservability.Instruments{Logger: logger})
	defer cleanup()

	cutoff := cfg.ArchiveCutoff(time.Now())
	archived, err := notesworkflows.NewInlineArchiver(noteService).ArchiveStale(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to archive stale notes: %v", err)
	}
	logger.Info("archive completed", slog.Int("archived", archived), slog.Time("cutoff", cutoff))
}
