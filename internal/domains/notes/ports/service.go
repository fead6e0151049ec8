package ports

import (
	"context"
	"time"

	notetypes "github.com/Apurer/dbmodel-tracking/internal/domains/notes/application/types"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/domain"
)

// Service defines the notes use cases exposed to adapters (inbound/driving port).
type Service interface {
	CreateNote(ctx context.Context, actor notetypes.Actor, input notetypes.NoteInput) (*domain.Note, error)
	CreateNotes(ctx context.Context, actor notetypes.Actor, inputs []notetypes.NoteInput) ([]*domain.Note, error)
	UpdateNote(ctx context.Context, actor notetypes.Actor, input notetypes.UpdateNoteInput) (*domain.Note, error)
	GetByID(ctx context.Context, id int64) (*domain.Note, error)
	List(ctx context.Context) ([]*domain.Note, error)
	Delete(ctx context.Context, actor notetypes.Actor, id int64) error
	ArchiveStale(ctx context.Context, cutoff time.Time) (int, error)
}

// Archiver runs the stale-note archive, either inline or through a durable workflow.
type Archiver interface {
	ArchiveStale(ctx context.Context, cutoff time.Time) (int, error)
}
