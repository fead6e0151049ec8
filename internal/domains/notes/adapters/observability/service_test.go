package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	notememory "github.com/Apurer/dbmodel-tracking/internal/domains/notes/adapters/memory"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/application"
	notetypes "github.com/Apurer/dbmodel-tracking/internal/domains/notes/application/types"
	trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"
)

func TestService_RecordsSpansLogsAndMetrics(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	var logs bytes.Buffer

	svc := New(application.NewService(notememory.NewRepository()),
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
		WithTracer(tracerProvider.Tracer("test")),
		WithMeter(meterProvider.Meter("test")),
	)
	ctx := context.Background()
	actor := notetypes.Actor{Identity: trackingdomain.NewNamedIdentity("Ann"), UserID: 4}

	note, err := svc.CreateNote(ctx, actor, notetypes.NoteInput{Title: "hello"})
	require.NoError(t, err)
	_, err = svc.CreateNote(ctx, notetypes.Actor{UserID: 4}, notetypes.NoteInput{Title: "anonymous"})
	require.ErrorIs(t, err, trackingdomain.ErrMissingIdentity)

	ended := spans.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "NotesService.CreateNote", ended[0].Name())
	assert.Len(t, ended[1].Events(), 1, "failed span records the error")
	assert.Contains(t, logs.String(), "note created")
	assert.Contains(t, logs.String(), "failed to create note")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	created := rm.ScopeMetrics[0].Metrics[0]
	assert.Equal(t, "notes.service.notes_created", created.Name)
	sum, ok := created.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
	assert.NotZero(t, note.ID)
}

func TestService_DefaultsAreSilent(t *testing.T) {
	svc := New(application.NewService(notememory.NewRepository()))

	archived, err := svc.ArchiveStale(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Zero(t, archived)
}
