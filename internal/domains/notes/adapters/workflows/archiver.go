package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/ports"
	noteactivities "github.com/Apurer/dbmodel-tracking/internal/durable/temporal/activities/notes"
	noteworkflows "github.com/Apurer/dbmodel-tracking/internal/durable/temporal/workflows/notes"
)

var (
	_ ports.Archiver = (*TemporalArchiver)(nil)
	_ ports.Archiver = (*InlineArchiver)(nil)
)

// TemporalArchiver runs the stale-note archive as a Temporal workflow.
type TemporalArchiver struct {
	client    client.Client
	taskQueue string
}

// NewTemporalArchiver wires a Temporal client into the archiver.
func NewTemporalArchiver(c client.Client) *TemporalArchiver {
	return &TemporalArchiver{client: c, taskQueue: noteworkflows.ArchiveTaskQueue}
}

// ArchiveStale starts the archive workflow and waits for its result. Runs share a
// per-day workflow ID, so a second trigger on the same day joins the running one.
func (a *TemporalArchiver) ArchiveStale(ctx context.Context, cutoff time.Time) (int, error) {
	if a == nil || a.client == nil {
		return 0, errors.New("temporal archiver not configured")
	}
	workflowID := buildArchiveWorkflowID(cutoff)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: a.taskQueue,
	}
	run, err := a.client.ExecuteWorkflow(
		ctx,
		options,
		noteworkflows.ArchiveStaleWorkflowName,
		noteworkflows.ArchiveStaleWorkflowInput{Cutoff: cutoff.UTC(), TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return 0, err
		}
		run = a.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var result noteactivities.ArchiveStaleResult
	if err := run.Get(ctx, &result); err != nil {
		return 0, err
	}
	return result.Archived, nil
}

// InlineArchiver runs the archive in-process, for tests and deployments without Temporal.
type InlineArchiver struct {
	archiver ports.Archiver
}

// NewInlineArchiver wraps the notes service for synchronous execution.
func NewInlineArchiver(archiver ports.Archiver) *InlineArchiver {
	return &InlineArchiver{archiver: archiver}
}

// ArchiveStale delegates to the application service without durable orchestration.
func (a *InlineArchiver) ArchiveStale(ctx context.Context, cutoff time.Time) (int, error) {
	if a == nil || a.archiver == nil {
		return 0, errors.New("inline archiver not configured")
	}
	return a.archiver.ArchiveStale(ctx, cutoff)
}

// buildArchiveWorkflowID derives a sortable per-day ID: the ULID timestamp is the
// cutoff day, and the entropy is zeroed so every trigger for that day collides.
func buildArchiveWorkflowID(cutoff time.Time) string {
	day := cutoff.UTC().Truncate(24 * time.Hour)
	var id ulid.ULID
	if err := id.SetTime(ulid.Timestamp(day)); err != nil {
		return fmt.Sprintf("notes-archive-%s", day.Format("20060102"))
	}
	return "notes-archive-" + id.String()
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
