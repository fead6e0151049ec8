package notes

import (
	"time"

	"go.temporal.io/sdk/workflow"

	noteactivities "github.com/Apurer/dbmodel-tracking/internal/durable/temporal/activities/notes"
	"github.com/Apurer/dbmodel-tracking/internal/durable/temporal/sequences"
)

const (
	// ArchiveStaleWorkflowName is the public identifier for registering the workflow.
	ArchiveStaleWorkflowName = "notes.workflows.ArchiveStale"
	// ArchiveTaskQueue is the queue consumed by the worker processing archive workflows.
	ArchiveTaskQueue = "NOTES_ARCHIVE"
)

// ArchiveStaleWorkflowInput carries the cutoff for one archive run.
type ArchiveStaleWorkflowInput struct {
	Cutoff  time.Time
	TraceID string
}

// ArchiveStaleWorkflow archives notes untouched since the cutoff.
func ArchiveStaleWorkflow(ctx workflow.Context, input ArchiveStaleWorkflowInput) (noteactivities.ArchiveStaleResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ArchiveStaleWorkflow started", withTraceID(input.TraceID, "cutoff", input.Cutoff)...)
	result, err := sequences.RunArchiveSequence(ctx, input.Cutoff)
	if err != nil {
		logger.Error("ArchiveStaleWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return noteactivities.ArchiveStaleResult{}, err
	}
	logger.Info("ArchiveStaleWorkflow completed", withTraceID(input.TraceID, "archived", result.Archived)...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
