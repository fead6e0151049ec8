package domain

import "time"

const (
	// SystemUserID identifies the system actor (automated processes, migrations, jobs).
	SystemUserID int64 = -1
	// SystemUserName is the display name recorded for the system actor.
	SystemUserName = "SystemUser"
)

// TrackedEntity records who created and last updated an entity, and when.
//
// CreatedBy and UpdatedBy use SystemUserID for the system actor and nil when
// the actor is unknown or no longer exists.
type TrackedEntity struct {
	createdAt     time.Time
	CreatedBy     *int64
	CreatedByName *string
	UpdatedAt     *time.Time
	UpdatedBy     *int64
	UpdatedByName *string
}

// NewTrackedEntity returns metadata created now and attributed to the system actor.
func NewTrackedEntity() *TrackedEntity {
	return &TrackedEntity{
		createdAt: now(),
		CreatedBy: int64Ptr(SystemUserID),
	}
}

// RestoreTrackedEntity rebuilds metadata loaded from storage, keeping its original creation time.
func RestoreTrackedEntity(createdAt time.Time, createdBy *int64, createdByName *string, updatedAt *time.Time, updatedBy *int64, updatedByName *string) *TrackedEntity {
	return &TrackedEntity{
		createdAt:     createdAt,
		CreatedBy:     cloneInt64(createdBy),
		CreatedByName: cloneString(createdByName),
		UpdatedAt:     cloneTime(updatedAt),
		UpdatedBy:     cloneInt64(updatedBy),
		UpdatedByName: cloneString(updatedByName),
	}
}

// CreatedAt reports when the metadata was created.
func (t *TrackedEntity) CreatedAt() time.Time {
	return t.createdAt
}

// IsUpdated reports whether an update has ever been stamped.
func (t *TrackedEntity) IsUpdated() bool {
	return t != nil && t.UpdatedAt != nil
}

// LastChangedAt returns the update time if present, else the creation time.
func (t *TrackedEntity) LastChangedAt() time.Time {
	if t.UpdatedAt != nil {
		return *t.UpdatedAt
	}
	return t.createdAt
}

// Clone returns a deep copy so stores never share metadata between entities.
func (t *TrackedEntity) Clone() *TrackedEntity {
	if t == nil {
		return nil
	}
	return RestoreTrackedEntity(t.createdAt, t.CreatedBy, t.CreatedByName, t.UpdatedAt, t.UpdatedBy, t.UpdatedByName)
}

// Trackable is implemented by entities that carry tracked metadata.
type Trackable interface {
	EntityInfo() *TrackedEntity
	SetEntityInfo(info *TrackedEntity)
}

func int64Ptr(v int64) *int64 { return &v }

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
