package domain

import (
	"fmt"
	"time"
)

var now = func() time.Time { return time.Now().UTC() }

// StampCreated replaces the entity's metadata with a new record attributed to actorID.
// Any previous metadata, including update fields, is discarded.
func StampCreated(entity Trackable, identity Identity, actorID int64) error {
	if identity == nil {
		return ErrMissingIdentity
	}
	entity.SetEntityInfo(newCreated(identity, actorID))
	return nil
}

// StampCreatedAll stamps every entity in order. The identity is checked before any entity is touched.
func StampCreatedAll[T Trackable](entities []T, identity Identity, actorID int64) error {
	if identity == nil {
		return ErrMissingIdentity
	}
	for _, entity := range entities {
		entity.SetEntityInfo(newCreated(identity, actorID))
	}
	return nil
}

// StampUpdated records an update by actorID on the entity's existing metadata.
func StampUpdated(entity Trackable, identity Identity, actorID int64) error {
	if identity == nil {
		return ErrMissingIdentity
	}
	return markUpdated(entity, identity, actorID)
}

// StampUpdatedAll stamps every entity in order and stops at the first one without metadata.
// Entities stamped before the failure keep their new values.
func StampUpdatedAll[T Trackable](entities []T, identity Identity, actorID int64) error {
	if identity == nil {
		return ErrMissingIdentity
	}
	for i, entity := range entities {
		if err := markUpdated(entity, identity, actorID); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return nil
}

func newCreated(identity Identity, actorID int64) *TrackedEntity {
	return &TrackedEntity{
		createdAt:     now(),
		CreatedBy:     int64Ptr(actorID),
		CreatedByName: actorName(identity, actorID),
	}
}

func markUpdated(entity Trackable, identity Identity, actorID int64) error {
	info := entity.EntityInfo()
	if info == nil {
		return ErrMissingEntityInfo
	}
	ts := now()
	info.UpdatedAt = &ts
	info.UpdatedBy = int64Ptr(actorID)
	info.UpdatedByName = actorName(identity, actorID)
	return nil
}
