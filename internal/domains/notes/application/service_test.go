package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notememory "github.com/Apurer/dbmodel-tracking/internal/domains/notes/adapters/memory"
	notetypes "github.com/Apurer/dbmodel-tracking/internal/domains/notes/application/types"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/domain"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/ports"
	trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"
)

func testActor(name string, id int64) notetypes.Actor {
	return notetypes.Actor{Identity: trackingdomain.NewNamedIdentity(name), UserID: id}
}

func TestCreateNote_StampsCreator(t *testing.T) {
	svc := NewService(notememory.NewRepository())

	note, err := svc.CreateNote(context.Background(), testActor("Ann", 22), notetypes.NoteInput{Title: "Groceries", Tags: []string{"home"}})

	require.NoError(t, err)
	require.NotNil(t, note.EntityInfo())
	assert.Equal(t, int64(1), note.ID)
	assert.Equal(t, int64(22), *note.EntityInfo().CreatedBy)
	assert.Equal(t, "Ann", *note.EntityInfo().CreatedByName)
	assert.False(t, note.EntityInfo().CreatedAt().IsZero())
	assert.Nil(t, note.EntityInfo().UpdatedAt)
}

func TestCreateNote_MissingIdentity(t *testing.T) {
	repo := notememory.NewRepository()
	svc := NewService(repo)

	_, err := svc.CreateNote(context.Background(), notetypes.Actor{UserID: 22}, notetypes.NoteInput{Title: "Groceries"})

	require.ErrorIs(t, err, ErrUnauthenticated)
	require.ErrorIs(t, err, trackingdomain.ErrMissingIdentity)
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateNote_InvalidInput(t *testing.T) {
	svc := NewService(notememory.NewRepository())

	_, err := svc.CreateNote(context.Background(), testActor("Ann", 22), notetypes.NoteInput{})

	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyTitle)
}

func TestCreateNotes_StampsEveryNote(t *testing.T) {
	svc := NewService(notememory.NewRepository())

	notes, err := svc.CreateNotes(context.Background(), notetypes.SystemActor(), []notetypes.NoteInput{{Title: "a"}, {Title: "b"}})

	require.NoError(t, err)
	require.Len(t, notes, 2)
	for _, note := range notes {
		assert.Equal(t, trackingdomain.SystemUserID, *note.EntityInfo().CreatedBy)
		assert.Equal(t, trackingdomain.SystemUserName, *note.EntityInfo().CreatedByName)
	}
}

func TestCreateNotes_RejectsBatchWithoutIdentity(t *testing.T) {
	repo := notememory.NewRepository()
	svc := NewService(repo)

	_, err := svc.CreateNotes(context.Background(), notetypes.Actor{}, []notetypes.NoteInput{{Title: "a"}})

	require.ErrorIs(t, err, ErrUnauthenticated)
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateNotes_Empty(t *testing.T) {
	svc := NewService(notememory.NewRepository())

	notes, err := svc.CreateNotes(context.Background(), testActor("Ann", 1), nil)

	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestUpdateNote_StampsUpdater(t *testing.T) {
	svc := NewService(notememory.NewRepository())
	ctx := context.Background()
	created, err := svc.CreateNote(ctx, testActor("Ann", 22), notetypes.NoteInput{Title: "Groceries"})
	require.NoError(t, err)

	title := "Groceries (weekly)"
	updated, err := svc.UpdateNote(ctx, testActor("Bob", 7), notetypes.UpdateNoteInput{ID: created.ID, Title: &title})

	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	info := updated.EntityInfo()
	require.NotNil(t, info.UpdatedAt)
	assert.False(t, info.UpdatedAt.Before(info.CreatedAt()))
	assert.Equal(t, int64(7), *info.UpdatedBy)
	assert.Equal(t, "Bob", *info.UpdatedByName)
	assert.Equal(t, created.EntityInfo().CreatedAt(), info.CreatedAt())
	assert.Equal(t, int64(22), *info.CreatedBy)
	assert.Equal(t, "Ann", *info.CreatedByName)
}

func TestUpdateNote_MissingEntityInfo(t *testing.T) {
	repo := notememory.NewRepository()
	svc := NewService(repo)
	ctx := context.Background()
	legacy, err := domain.NewNote(9, "legacy", "")
	require.NoError(t, err)
	_, err = repo.Save(ctx, legacy)
	require.NoError(t, err)

	body := "new body"
	_, err = svc.UpdateNote(ctx, testActor("Ann", 1), notetypes.UpdateNoteInput{ID: 9, Body: &body})

	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, trackingdomain.ErrMissingEntityInfo)
	stored, err := repo.GetByID(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, stored.EntityInfo())
	assert.Empty(t, stored.Body)
}

func TestUpdateNote_NotFound(t *testing.T) {
	svc := NewService(notememory.NewRepository())

	_, err := svc.UpdateNote(context.Background(), testActor("Ann", 1), notetypes.UpdateNoteInput{ID: 404})

	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestArchiveStale_UsesSystemActor(t *testing.T) {
	repo := notememory.NewRepository()
	svc := NewService(repo)
	ctx := context.Background()

	old, err := domain.NewNote(1, "old", "")
	require.NoError(t, err)
	old.SetEntityInfo(trackingdomain.RestoreTrackedEntity(time.Now().UTC().Add(-48*time.Hour), nil, nil, nil, nil, nil))
	_, err = repo.Save(ctx, old)
	require.NoError(t, err)
	_, err = svc.CreateNote(ctx, testActor("Ann", 2), notetypes.NoteInput{Title: "fresh"})
	require.NoError(t, err)

	archived, err := svc.ArchiveStale(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, archived)

	stored, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, stored.Archived)
	assert.Equal(t, trackingdomain.SystemUserID, *stored.EntityInfo().UpdatedBy)
	assert.Equal(t, trackingdomain.SystemUserName, *stored.EntityInfo().UpdatedByName)

	fresh, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.False(t, fresh.Archived)

	again, err := svc.ArchiveStale(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestDelete(t *testing.T) {
	svc := NewService(notememory.NewRepository())
	ctx := context.Background()
	created, err := svc.CreateNote(ctx, testActor("Ann", 1), notetypes.NoteInput{Title: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, testActor("Bob", 2), created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDelete_MissingIdentity(t *testing.T) {
	svc := NewService(notememory.NewRepository())
	ctx := context.Background()
	created, err := svc.CreateNote(ctx, testActor("Ann", 1), notetypes.NoteInput{Title: "x"})
	require.NoError(t, err)

	err = svc.Delete(ctx, notetypes.Actor{UserID: 1}, created.ID)

	require.ErrorIs(t, err, ErrUnauthenticated)
	require.ErrorIs(t, err, trackingdomain.ErrMissingIdentity)
	_, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
}

func TestCreateNote_TakenIDKeepsOriginalCreator(t *testing.T) {
	svc := NewService(notememory.NewRepository())
	ctx := context.Background()
	original, err := svc.CreateNote(ctx, testActor("Ann", 22), notetypes.NoteInput{Title: "Ann's"})
	require.NoError(t, err)

	_, err = svc.CreateNote(ctx, testActor("Bob", 7), notetypes.NoteInput{ID: original.ID, Title: "Bob's"})

	require.ErrorIs(t, err, ports.ErrConflict)
	stored, err := svc.GetByID(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann's", stored.Title)
	assert.Equal(t, int64(22), *stored.EntityInfo().CreatedBy)
	assert.Equal(t, "Ann", *stored.EntityInfo().CreatedByName)
	assert.Equal(t, original.EntityInfo().CreatedAt(), stored.EntityInfo().CreatedAt())
}

func TestCreateNotes_TakenIDCreatesNothing(t *testing.T) {
	repo := notememory.NewRepository()
	svc := NewService(repo)
	ctx := context.Background()
	original, err := svc.CreateNote(ctx, testActor("Ann", 22), notetypes.NoteInput{Title: "Ann's"})
	require.NoError(t, err)

	_, err = svc.CreateNotes(ctx, testActor("Bob", 7), []notetypes.NoteInput{{Title: "new"}, {ID: original.ID, Title: "Bob's"}})

	require.ErrorIs(t, err, ports.ErrConflict)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ann", *list[0].EntityInfo().CreatedByName)
}
