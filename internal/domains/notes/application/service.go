package application

import (
	"context"
	"time"

	notetypes "github.com/Apurer/dbmodel-tracking/internal/domains/notes/application/types"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/domain"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/ports"
	trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"
)

// Service orchestrates the notes use cases and stamps tracked metadata on every write.
type Service struct {
	repo ports.Repository
}

// NewService wires the notes service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateNote builds, stamps, and persists a single note.
func (s *Service) CreateNote(ctx context.Context, actor notetypes.Actor, input notetypes.NoteInput) (*domain.Note, error) {
	note, err := buildNote(input)
	if err != nil {
		return nil, mapError(err)
	}
	if err := trackingdomain.StampCreated(note, actor.Identity, actor.UserID); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, note)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// CreateNotes builds every note first, then stamps and persists the batch.
func (s *Service) CreateNotes(ctx context.Context, actor notetypes.Actor, inputs []notetypes.NoteInput) ([]*domain.Note, error) {
	if actor.Identity == nil {
		return nil, mapError(trackingdomain.ErrMissingIdentity)
	}
	notes := make([]*domain.Note, 0, len(inputs))
	for _, input := range inputs {
		note, err := buildNote(input)
		if err != nil {
			return nil, mapError(err)
		}
		notes = append(notes, note)
	}
	if err := trackingdomain.StampCreatedAll(notes, actor.Identity, actor.UserID); err != nil {
		return nil, mapError(err)
	}
	if len(notes) == 0 {
		return notes, nil
	}
	saved, err := s.repo.CreateAll(ctx, notes)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateNote applies a partial update and records who made it.
func (s *Service) UpdateNote(ctx context.Context, actor notetypes.Actor, input notetypes.UpdateNoteInput) (*domain.Note, error) {
	note, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := applyUpdate(note, input); err != nil {
		return nil, mapError(err)
	}
	if err := trackingdomain.StampUpdated(note, actor.Identity, actor.UserID); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, note)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single note.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return note, nil
}

// List returns every note.
func (s *Service) List(ctx context.Context) ([]*domain.Note, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return notes, nil
}

// Delete removes a note. Like every other write it requires a caller identity.
func (s *Service) Delete(ctx context.Context, actor notetypes.Actor, id int64) error {
	if actor.Identity == nil {
		return mapError(trackingdomain.ErrMissingIdentity)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// ArchiveStale archives active notes untouched since cutoff on behalf of the system actor.
func (s *Service) ArchiveStale(ctx context.Context, cutoff time.Time) (int, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		return 0, mapError(err)
	}
	stale := make([]*domain.Note, 0, len(notes))
	for _, note := range notes {
		if note.IsStale(cutoff) {
			note.Archive()
			stale = append(stale, note)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	system := notetypes.SystemActor()
	if err := trackingdomain.StampUpdatedAll(stale, system.Identity, system.UserID); err != nil {
		return 0, mapError(err)
	}
	if _, err := s.repo.SaveAll(ctx, stale); err != nil {
		return 0, mapError(err)
	}
	return len(stale), nil
}

func buildNote(input notetypes.NoteInput) (*domain.Note, error) {
	note, err := domain.NewNote(input.ID, input.Title, input.Body)
	if err != nil {
		return nil, err
	}
	if input.Tags != nil {
		if err := note.ReplaceTags(input.Tags); err != nil {
			return nil, err
		}
	}
	return note, nil
}

func applyUpdate(target *domain.Note, input notetypes.UpdateNoteInput) error {
	if input.Title != nil {
		if err := target.Rename(*input.Title); err != nil {
			return err
		}
	}
	if input.Body != nil {
		target.Rewrite(*input.Body)
	}
	if input.Tags != nil {
		if err := target.ReplaceTags(*input.Tags); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ ports.Service  = (*Service)(nil)
	_ ports.Archiver = (*Service)(nil)
)
