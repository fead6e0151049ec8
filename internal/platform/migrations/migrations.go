package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for every bounded context that stores tracked entities.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&NoteRecord{})
}

// NoteRecord is the notes table row, shared with the notes Postgres adapter. The tracked
// columns are nullable so that a deleted or unknown actor can be stored as NULL.
type NoteRecord struct {
	ID            int64          `gorm:"primaryKey;column:id"`
	Title         string         `gorm:"column:title;not null"`
	Body          string         `gorm:"column:body"`
	Tags          pq.StringArray `gorm:"column:tags;type:text[]"`
	Archived      bool           `gorm:"column:archived;index"`
	Tracked       bool           `gorm:"column:tracked;not null;default:false"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime:false;index"`
	CreatedBy     *int64         `gorm:"column:created_by;index"`
	CreatedByName *string        `gorm:"column:created_by_name"`
	UpdatedAt     *time.Time     `gorm:"column:updated_at;autoUpdateTime:false;index"`
	UpdatedBy     *int64         `gorm:"column:updated_by;index"`
	UpdatedByName *string        `gorm:"column:updated_by_name"`
}

func (NoteRecord) TableName() string { return "notes" }

// NoteUpsertColumns lists the columns overwritten when an existing note is saved again.
var NoteUpsertColumns = []string{
	"title", "body", "tags", "archived", "tracked",
	"created_at", "created_by", "created_by_name",
	"updated_at", "updated_by", "updated_by_name",
}
