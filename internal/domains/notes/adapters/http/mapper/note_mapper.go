package mapper

import (
	notetypes "github.com/Apurer/dbmodel-tracking/internal/domains/notes/application/types"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/domain"
	trackingmapper "github.com/Apurer/dbmodel-tracking/internal/tracking/adapters/http/mapper"
)

// CreateNote is the inbound payload for creating a note. Ids are always assigned by the store.
type CreateNote struct {
	Title string   `json:"title"`
	Body  string   `json:"body,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// UpdateNote captures a partial update while preserving field presence.
type UpdateNote struct {
	Title *string   `json:"title,omitempty"`
	Body  *string   `json:"body,omitempty"`
	Tags  *[]string `json:"tags,omitempty"`
}

// NoteV1 is the v1 response shape: tracked timestamps as unix seconds.
type NoteV1 struct {
	ID         int64                           `json:"id"`
	Title      string                          `json:"title"`
	Body       string                          `json:"body"`
	Tags       []string                        `json:"tags"`
	Archived   bool                            `json:"archived"`
	EntityInfo *trackingmapper.TrackedEntityV1 `json:"entityInfo"`
}

// NoteV2 is the v2 response shape: tracked timestamps as RFC 3339.
type NoteV2 struct {
	ID         int64                           `json:"id"`
	Title      string                          `json:"title"`
	Body       string                          `json:"body"`
	Tags       []string                        `json:"tags"`
	Archived   bool                            `json:"archived"`
	EntityInfo *trackingmapper.TrackedEntityV2 `json:"entityInfo"`
}

// ToNoteInput converts the create payload to an application input.
func ToNoteInput(payload CreateNote) notetypes.NoteInput {
	return notetypes.NoteInput{
		Title: payload.Title,
		Body:  payload.Body,
		Tags:  payload.Tags,
	}
}

// ToNoteInputs converts a batch payload preserving order.
func ToNoteInputs(payloads []CreateNote) []notetypes.NoteInput {
	inputs := make([]notetypes.NoteInput, 0, len(payloads))
	for _, payload := range payloads {
		inputs = append(inputs, ToNoteInput(payload))
	}
	return inputs
}

// ToUpdateInput converts the update payload for the note identified by id.
func ToUpdateInput(id int64, payload UpdateNote) notetypes.UpdateNoteInput {
	return notetypes.UpdateNoteInput{
		ID:    id,
		Title: payload.Title,
		Body:  payload.Body,
		Tags:  payload.Tags,
	}
}

// FromDomainV1 maps a note to its v1 representation.
func FromDomainV1(note *domain.Note) *NoteV1 {
	if note == nil {
		return nil
	}
	return &NoteV1{
		ID:         note.ID,
		Title:      note.Title,
		Body:       note.Body,
		Tags:       tagsOrEmpty(note.Tags),
		Archived:   note.Archived,
		EntityInfo: trackingmapper.FromDomainV1(note.EntityInfo()),
	}
}

// FromDomainV2 maps a note to its v2 representation.
func FromDomainV2(note *domain.Note) *NoteV2 {
	if note == nil {
		return nil
	}
	return &NoteV2{
		ID:         note.ID,
		Title:      note.Title,
		Body:       note.Body,
		Tags:       tagsOrEmpty(note.Tags),
		Archived:   note.Archived,
		EntityInfo: trackingmapper.FromDomainV2(note.EntityInfo()),
	}
}

func FromDomainListV1(notes []*domain.Note) []*NoteV1 {
	out := make([]*NoteV1, 0, len(notes))
	for _, note := range notes {
		out = append(out, FromDomainV1(note))
	}
	return out
}

func FromDomainListV2(notes []*domain.Note) []*NoteV2 {
	out := make([]*NoteV2, 0, len(notes))
	for _, note := range notes {
		out = append(out, FromDomainV2(note))
	}
	return out
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return append([]string{}, tags...)
}
