package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/dbmodel-tracking/internal/app/api"
	noteactivities "github.com/Apurer/dbmodel-tracking/internal/durable/temporal/activities/notes"
	noteworkflows "github.com/Apurer/dbmodel-tracking/internal/durable/temporal/workflows/notes"
	platformobservability "github.com/Apurer/dbmodel-tracking/internal/platform/observability"
)

func main() {
	ctx := context.Background()
	const serviceName = "notes-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.ObservabilitySettings(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	noteService, cleanupRepo := api.BuildNotesService(ctx, cfg, instruments)
	defer cleanupRepo()
	noteActivities := noteactivities.NewActivities(noteService)

	cfg.TemporalDisabled = false
	temporalClient, err := api.ConnectTemporal(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, noteworkflows.ArchiveTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(noteworkflows.ArchiveStaleWorkflow, workflow.RegisterOptions{Name: noteworkflows.ArchiveStaleWorkflowName})
	w.RegisterActivityWithOptions(noteActivities.ArchiveStale, activity.RegisterOptions{Name: noteactivities.ArchiveStaleActivityName})

	logger.Info("worker listening", slog.String("taskQueue", noteworkflows.ArchiveTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
