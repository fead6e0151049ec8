package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	noteactivities "github.com/Apurer/dbmodel-tracking/internal/durable/temporal/activities/notes"
)

// RunArchiveSequence executes the activities that archive stale notes.
func RunArchiveSequence(ctx workflow.Context, cutoff time.Time) (noteactivities.ArchiveStaleResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("archive sequence started", "cutoff", cutoff)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var result noteactivities.ArchiveStaleResult
	err := workflow.ExecuteActivity(ctx, noteactivities.ArchiveStaleActivityName, noteactivities.ArchiveStaleInput{Cutoff: cutoff}).Get(ctx, &result)
	if err != nil {
		logger.Error("archive sequence failed", "cutoff", cutoff, "error", err)
		return noteactivities.ArchiveStaleResult{}, err
	}
	logger.Info("archive sequence completed", "archived", result.Archived)
	return result, nil
}
