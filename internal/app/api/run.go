package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	notehandlers "github.com/Apurer/dbmodel-tracking/internal/domains/notes/adapters/http/handlers"
	notesworkflows "github.com/Apurer/dbmodel-tracking/internal/domains/notes/adapters/workflows"
	notesports "github.com/Apurer/dbmodel-tracking/internal/domains/notes/ports"
	"github.com/Apurer/dbmodel-tracking/internal/platform/auth"
	platformobservability "github.com/Apurer/dbmodel-tracking/internal/platform/observability"
)

const serviceName = "notes-api"

// Run boots the notes HTTP API with observability, repositories, auth, and archiving wired.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.ObservabilitySettings(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	noteService, cleanupRepo := BuildNotesService(ctx, cfg, instruments)
	defer cleanupRepo()

	var archiver notesports.Archiver = notesworkflows.NewInlineArchiver(noteService)
	if temporalClient, err := ConnectTemporal(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, archiving inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		archiver = notesworkflows.NewTemporalArchiver(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	if cfg.ArchiveIntervalMinutes > 0 {
		go runArchiveLoop(ctx, cfg, archiver, logger)
	}

	var verifier *auth.Verifier
	if cfg.AuthJWTSecret == "" {
		logger.Warn("AUTH_JWT_SECRET not set, every request is anonymous and writes will be rejected")
	} else if verifier, err = auth.NewVerifier(cfg.AuthJWTSecret); err != nil {
		return fmt.Errorf("failed to configure auth: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName), auth.Authenticate(verifier, logger))
	notehandlers.NewNotesAPI(noteService, nil).Register(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("notes API listening", slog.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("notes API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// runArchiveLoop triggers the stale-note archive on a fixed interval until ctx ends.
func runArchiveLoop(ctx context.Context, cfg Config, archiver notesports.Archiver, logger *slog.Logger) {
	ticker := time.NewTicker(time.Duration(cfg.ArchiveIntervalMinutes) * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			archived, err := archiver.ArchiveStale(ctx, cfg.ArchiveCutoff(now))
			if err != nil {
				logger.Error("scheduled archive failed", slog.String("error", err.Error()))
				continue
			}
			logger.Info("scheduled archive completed", slog.Int("archived", archived))
		}
	}
}
