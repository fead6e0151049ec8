package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/domain"
	trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"
)

func stampedNote(t *testing.T) *domain.Note {
	t.Helper()
	note, err := domain.NewNote(3, "groceries", "milk")
	require.NoError(t, err)
	require.NoError(t, trackingdomain.StampCreated(note, trackingdomain.NewNamedIdentity("Ann"), 7))
	return note
}

func TestFromDomainV1_EmbedsUnixEntityInfo(t *testing.T) {
	note := stampedNote(t)

	view := FromDomainV1(note)

	require.NotNil(t, view.EntityInfo)
	assert.Equal(t, note.EntityInfo().CreatedAt().Unix(), view.EntityInfo.CreatedAt)
	assert.Equal(t, int64(7), *view.EntityInfo.CreatedBy)
	assert.Equal(t, "Ann", *view.EntityInfo.CreatedByName)
	assert.Equal(t, []string{}, view.Tags)
}

func TestFromDomainV2_EmbedsNativeEntityInfo(t *testing.T) {
	note := stampedNote(t)

	view := FromDomainV2(note)

	require.NotNil(t, view.EntityInfo)
	assert.True(t, note.EntityInfo().CreatedAt().Equal(view.EntityInfo.CreatedAt))
	assert.Nil(t, view.EntityInfo.UpdatedAt)
}

func TestFromDomain_UntrackedNoteHasNullEntityInfo(t *testing.T) {
	note, err := domain.NewNote(1, "draft", "")
	require.NoError(t, err)

	raw, err := json.Marshal(FromDomainV1(note))
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"entityInfo":null`)
}

func TestFromDomainList_PreservesOrder(t *testing.T) {
	first, err := domain.NewNote(1, "a", "")
	require.NoError(t, err)
	second, err := domain.NewNote(2, "b", "")
	require.NoError(t, err)

	v1 := FromDomainListV1([]*domain.Note{second, first})
	v2 := FromDomainListV2([]*domain.Note{second, first})

	assert.Equal(t, []int64{2, 1}, []int64{v1[0].ID, v1[1].ID})
	assert.Equal(t, []int64{2, 1}, []int64{v2[0].ID, v2[1].ID})
}

func TestToUpdateInput_KeepsFieldPresence(t *testing.T) {
	var payload UpdateNote
	require.NoError(t, json.Unmarshal([]byte(`{"body":""}`), &payload))

	input := ToUpdateInput(9, payload)

	assert.Equal(t, int64(9), input.ID)
	assert.Nil(t, input.Title)
	require.NotNil(t, input.Body)
	assert.Equal(t, "", *input.Body)
	assert.Nil(t, input.Tags)
}
