package api

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	notememory "github.com/Apurer/dbmodel-tracking/internal/domains/notes/adapters/memory"
	notesobs "github.com/Apurer/dbmodel-tracking/internal/domains/notes/adapters/observability"
	notespostgres "github.com/Apurer/dbmodel-tracking/internal/domains/notes/adapters/persistence/postgres"
	notesapp "github.com/Apurer/dbmodel-tracking/internal/domains/notes/application"
	notesports "github.com/Apurer/dbmodel-tracking/internal/domains/notes/ports"
	"github.com/Apurer/dbmodel-tracking/internal/platform/migrations"
	platformobservability "github.com/Apurer/dbmodel-tracking/internal/platform/observability"
	platformpostgres "github.com/Apurer/dbmodel-tracking/internal/platform/postgres"
)

// BuildNotesService wires the notes service behind its observability decorator. It uses
// PostgreSQL when configured and reachable, and the in-memory repository otherwise.
func BuildNotesService(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*notesobs.Service, func()) {
	logger := effectiveLogger(instruments)
	repo, cleanup := buildNoteRepository(ctx, cfg, logger)
	return notesobs.New(
		notesapp.NewService(repo),
		notesobs.WithLogger(logger),
		notesobs.WithTracer(instruments.Tracer("internal.notes.application")),
		notesobs.WithMeter(instruments.Meter("internal.notes.application")),
	), cleanup
}

func buildNoteRepository(ctx context.Context, cfg Config, logger *slog.Logger) (notesports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return notememory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate postgres schema, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return notememory.NewRepository(), func() {}
	}
	logger.Info("note repository configured with postgres")
	return notespostgres.NewRepository(db), cleanup
}

// ConnectTemporal dials Temporal with tracing and structured logging, unless disabled.
func ConnectTemporal(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
