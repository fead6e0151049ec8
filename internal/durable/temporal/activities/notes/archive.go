package notes

import (
	"context"
	"errors"
	"time"

	"go.temporal.io/sdk/activity"

	notesports "github.com/Apurer/dbmodel-tracking/internal/domains/notes/ports"
)

// ArchiveStaleActivityName archives notes that have not changed since a cutoff.
const ArchiveStaleActivityName = "notes.activities.ArchiveStale"

// ArchiveStaleInput is the activity payload.
type ArchiveStaleInput struct {
	Cutoff time.Time
}

// ArchiveStaleResult reports how many notes were archived.
type ArchiveStaleResult struct {
	Archived int
}

// Activities groups activities that operate on the notes bounded context.
type Activities struct {
	archiver notesports.Archiver
}

// NewActivities wires the notes archiver into the Temporal activities bundle.
func NewActivities(archiver notesports.Archiver) *Activities {
	return &Activities{archiver: archiver}
}

// ArchiveStale archives stale notes on behalf of the system actor.
func (a *Activities) ArchiveStale(ctx context.Context, input ArchiveStaleInput) (ArchiveStaleResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.archiver == nil {
		logger.Error("archive activity not initialized")
		return ArchiveStaleResult{}, errors.New("archive activity not initialized")
	}
	logger.Info("ArchiveStale activity started", "cutoff", input.Cutoff)
	archived, err := a.archiver.ArchiveStale(ctx, input.Cutoff)
	if err != nil {
		logger.Error("ArchiveStale activity failed", "cutoff", input.Cutoff, "error", err)
		return ArchiveStaleResult{}, err
	}
	logger.Info("ArchiveStale activity completed", "archived", archived)
	return ArchiveStaleResult{Archived: archived}, nil
}
