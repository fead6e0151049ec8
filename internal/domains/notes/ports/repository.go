package ports

import (
	"context"
	"errors"

	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/domain"
)

var (
	ErrNotFound = errors.New("note not found")
	// ErrConflict signals a create for an id that is already taken.
	ErrConflict = errors.New("note already exists")
)

// Repository persists notes together with their tracked metadata (outbound/driven port).
// Create and CreateAll only insert; Save and SaveAll upsert existing notes.
type Repository interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	CreateAll(ctx context.Context, notes []*domain.Note) ([]*domain.Note, error)
	Save(ctx context.Context, note *domain.Note) (*domain.Note, error)
	SaveAll(ctx context.Context, notes []*domain.Note) ([]*domain.Note, error)
	GetByID(ctx context.Context, id int64) (*domain.Note, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Note, error)
}
