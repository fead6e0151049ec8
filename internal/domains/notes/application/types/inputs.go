package types

import trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"

// Actor identifies who performs a change: the caller identity plus its numeric user id.
type Actor struct {
	Identity trackingdomain.Identity
	UserID   int64
}

// SystemActor returns the actor used by background jobs.
func SystemActor() Actor {
	return Actor{Identity: trackingdomain.SystemIdentity{}, UserID: trackingdomain.SystemUserID}
}

// NoteInput carries the fields required to create a note.
type NoteInput struct {
	ID    int64
	Title string
	Body  string
	Tags  []string
}

// UpdateNoteInput carries a partial update; nil fields are left unchanged.
type UpdateNoteInput struct {
	ID    int64
	Title *string
	Body  *string
	Tags  *[]string
}
