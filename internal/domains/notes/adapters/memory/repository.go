package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/domain"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory note persistence adapter used for demos/tests.
type Repository struct {
	mu     sync.RWMutex
	notes  map[int64]*domain.Note
	nextID int64
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{notes: map[int64]*domain.Note{}}
}

// Create inserts a new note, assigning an id when it has none. An id that is already
// taken fails with ports.ErrConflict and leaves the stored note untouched.
func (r *Repository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	created, err := r.CreateAll(ctx, []*domain.Note{note})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// CreateAll inserts every note or none of them.
func (r *Repository) CreateAll(_ context.Context, notes []*domain.Note) ([]*domain.Note, error) {
	for _, note := range notes {
		if note == nil {
			return nil, errors.New("cannot create nil note")
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[int64]struct{}, len(notes))
	for _, note := range notes {
		if note.ID == 0 {
			continue
		}
		if _, taken := r.notes[note.ID]; taken {
			return nil, fmt.Errorf("%w: id %d", ports.ErrConflict, note.ID)
		}
		if _, dup := seen[note.ID]; dup {
			return nil, fmt.Errorf("%w: id %d repeated in batch", ports.ErrConflict, note.ID)
		}
		seen[note.ID] = struct{}{}
	}
	created := make([]*domain.Note, 0, len(notes))
	for _, note := range notes {
		created = append(created, r.saveLocked(note))
	}
	return created, nil
}

// Save inserts or replaces a note, assigning an id when it has none.
func (r *Repository) Save(_ context.Context, note *domain.Note) (*domain.Note, error) {
	if note == nil {
		return nil, errors.New("cannot save nil note")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(note), nil
}

// SaveAll stores the notes atomically with respect to other callers.
func (r *Repository) SaveAll(_ context.Context, notes []*domain.Note) ([]*domain.Note, error) {
	for _, note := range notes {
		if note == nil {
			return nil, errors.New("cannot save nil note")
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make([]*domain.Note, 0, len(notes))
	for _, note := range notes {
		saved = append(saved, r.saveLocked(note))
	}
	return saved, nil
}

// GetByID fetches a note if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	note, ok := r.notes[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return note.Clone(), nil
}

// Delete removes a note.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}

// List returns every note ordered by id.
func (r *Repository) List(_ context.Context) ([]*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Note, 0, len(r.notes))
	for _, note := range r.notes {
		list = append(list, note.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) saveLocked(note *domain.Note) *domain.Note {
	clone := note.Clone()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.notes[clone.ID] = clone
	return clone.Clone()
}
