package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/domain"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/ports"
	"github.com/Apurer/dbmodel-tracking/internal/platform/migrations"
	trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists notes in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
// The DB must be opened with TranslateError so that id clashes surface as ports.ErrConflict.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new note. It never overwrites: an id that is already taken fails
// with ports.ErrConflict.
func (r *Repository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	created, err := r.CreateAll(ctx, []*domain.Note{note})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// CreateAll inserts the notes in a single transaction, all or none.
func (r *Repository) CreateAll(ctx context.Context, notes []*domain.Note) ([]*domain.Note, error) {
	return r.write(ctx, notes, func(tx *gorm.DB, record *migrations.NoteRecord) error {
		return tx.Create(record).Error
	})
}

// Save inserts or updates a note.
func (r *Repository) Save(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	saved, err := r.SaveAll(ctx, []*domain.Note{note})
	if err != nil {
		return nil, err
	}
	return saved[0], nil
}

// SaveAll upserts the notes in a single transaction.
func (r *Repository) SaveAll(ctx context.Context, notes []*domain.Note) ([]*domain.Note, error) {
	return r.write(ctx, notes, upsert)
}

func (r *Repository) write(ctx context.Context, notes []*domain.Note, store func(*gorm.DB, *migrations.NoteRecord) error) ([]*domain.Note, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	records := make([]migrations.NoteRecord, 0, len(notes))
	explicitIDs := false
	for _, note := range notes {
		if note == nil {
			return nil, errors.New("note is nil")
		}
		explicitIDs = explicitIDs || note.ID != 0
		records = append(records, toRecord(note))
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := store(tx, &records[i]); err != nil {
				return err
			}
		}
		if explicitIDs {
			return syncIDSequence(tx)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %w", ports.ErrConflict, err)
		}
		return nil, err
	}
	saved := make([]*domain.Note, 0, len(records))
	for i := range records {
		saved = append(saved, toDomain(records[i]))
	}
	return saved, nil
}

// GetByID fetches a note by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record migrations.NoteRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toDomain(record), nil
}

// Delete removes a note by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&migrations.NoteRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all notes ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.Note, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []migrations.NoteRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	notes := make([]*domain.Note, 0, len(records))
	for i := range records {
		notes = append(notes, toDomain(records[i]))
	}
	return notes, nil
}

func upsert(tx *gorm.DB, record *migrations.NoteRecord) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(migrations.NoteUpsertColumns),
	}).Create(record).Error
}

// syncIDSequence moves the id sequence past explicitly inserted ids, so that a later
// insert without an id cannot collide with them.
func syncIDSequence(tx *gorm.DB) error {
	return tx.Exec("SELECT setval(pg_get_serial_sequence('notes', 'id'), (SELECT COALESCE(MAX(id), 0) + 1 FROM notes), false)").Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres note repository not configured")
	}
	return nil
}

func toRecord(note *domain.Note) migrations.NoteRecord {
	rec := migrations.NoteRecord{
		ID:       note.ID,
		Title:    note.Title,
		Body:     note.Body,
		Tags:     pq.StringArray(append([]string{}, note.Tags...)),
		Archived: note.Archived,
	}
	if info := note.EntityInfo(); info != nil {
		rec.Tracked = true
		rec.CreatedAt = info.CreatedAt()
		rec.CreatedBy = info.CreatedBy
		rec.CreatedByName = info.CreatedByName
		rec.UpdatedAt = info.UpdatedAt
		rec.UpdatedBy = info.UpdatedBy
		rec.UpdatedByName = info.UpdatedByName
	}
	return rec
}

func toDomain(r migrations.NoteRecord) *domain.Note {
	note := &domain.Note{
		ID:       r.ID,
		Title:    r.Title,
		Body:     r.Body,
		Archived: r.Archived,
	}
	if len(r.Tags) > 0 {
		note.Tags = append([]string{}, r.Tags...)
	}
	if r.Tracked {
		note.SetEntityInfo(trackingdomain.RestoreTrackedEntity(
			r.CreatedAt.UTC(),
			r.CreatedBy,
			r.CreatedByName,
			utcPtr(r.UpdatedAt),
			r.UpdatedBy,
			r.UpdatedByName,
		))
	}
	return note
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
