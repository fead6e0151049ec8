package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/domain"
	"github.com/Apurer/dbmodel-tracking/internal/platform/migrations"
	trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"
)

func TestRecordMapping_RoundTripsTrackedColumns(t *testing.T) {
	note, err := domain.NewNote(4, "groceries", "milk")
	require.NoError(t, err)
	require.NoError(t, note.ReplaceTags([]string{"home"}))
	require.NoError(t, trackingdomain.StampCreated(note, trackingdomain.NewNamedIdentity("Ann"), 22))
	require.NoError(t, trackingdomain.StampUpdated(note, trackingdomain.SystemIdentity{}, trackingdomain.SystemUserID))

	var record migrations.NoteRecord = toRecord(note)
	restored := toDomain(record)

	assert.True(t, record.Tracked)
	assert.Equal(t, "notes", record.TableName())
	assert.Equal(t, note.Tags, restored.Tags)
	info := restored.EntityInfo()
	require.NotNil(t, info)
	assert.True(t, note.EntityInfo().CreatedAt().Equal(info.CreatedAt()))
	assert.Equal(t, int64(22), *info.CreatedBy)
	assert.Equal(t, "Ann", *info.CreatedByName)
	assert.Equal(t, trackingdomain.SystemUserID, *info.UpdatedBy)
	assert.Equal(t, trackingdomain.SystemUserName, *info.UpdatedByName)
}

func TestRecordMapping_UntrackedStaysUntracked(t *testing.T) {
	note, err := domain.NewNote(1, "legacy", "")
	require.NoError(t, err)

	record := toRecord(note)

	assert.False(t, record.Tracked)
	assert.Nil(t, toDomain(record).EntityInfo())
}

func TestUpsertColumnsCoverTrackedColumns(t *testing.T) {
	for _, column := range []string{"created_at", "created_by", "created_by_name", "updated_at", "updated_by", "updated_by_name"} {
		assert.Contains(t, migrations.NoteUpsertColumns, column)
	}
}
