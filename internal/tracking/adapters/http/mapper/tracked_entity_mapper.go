package mapper

import (
	"time"

	trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"
)

// deletedSuffix marks names whose actor no longer exists.
const deletedSuffix = " (deleted)"

// TrackedEntityV1 is the v1 transport shape; timestamps are unix seconds.
type TrackedEntityV1 struct {
	CreatedAt     int64   `json:"createdAt"`
	CreatedBy     *int64  `json:"createdBy"`
	CreatedByName *string `json:"createdByName"`
	UpdatedAt     *int64  `json:"updatedAt"`
	UpdatedBy     *int64  `json:"updatedBy"`
	UpdatedByName *string `json:"updatedByName"`
}

// TrackedEntityV2 is the v2 transport shape; timestamps keep their native form.
type TrackedEntityV2 struct {
	CreatedAt     time.Time  `json:"createdAt"`
	CreatedBy     *int64     `json:"createdBy"`
	CreatedByName *string    `json:"createdByName"`
	UpdatedAt     *time.Time `json:"updatedAt"`
	UpdatedBy     *int64     `json:"updatedBy"`
	UpdatedByName *string    `json:"updatedByName"`
}

// FromDomainV1 converts tracked metadata into the v1 representation.
func FromDomainV1(info *trackingdomain.TrackedEntity) *TrackedEntityV1 {
	if info == nil {
		return nil
	}
	var updatedAt *int64
	if info.UpdatedAt != nil {
		seconds := info.UpdatedAt.Unix()
		updatedAt = &seconds
	}
	return &TrackedEntityV1{
		CreatedAt:     info.CreatedAt().Unix(),
		CreatedBy:     copyInt64(info.CreatedBy),
		CreatedByName: actorName(info.CreatedBy, info.CreatedByName),
		UpdatedAt:     updatedAt,
		UpdatedBy:     copyInt64(info.UpdatedBy),
		UpdatedByName: updaterName(info),
	}
}

// FromDomainV2 converts tracked metadata into the v2 representation.
func FromDomainV2(info *trackingdomain.TrackedEntity) *TrackedEntityV2 {
	if info == nil {
		return nil
	}
	var updatedAt *time.Time
	if info.UpdatedAt != nil {
		ts := *info.UpdatedAt
		updatedAt = &ts
	}
	return &TrackedEntityV2{
		CreatedAt:     info.CreatedAt(),
		CreatedBy:     copyInt64(info.CreatedBy),
		CreatedByName: actorName(info.CreatedBy, info.CreatedByName),
		UpdatedAt:     updatedAt,
		UpdatedBy:     copyInt64(info.UpdatedBy),
		UpdatedByName: updaterName(info),
	}
}

// FromDomainListV1 converts a slice of metadata records to v1, preserving order.
func FromDomainListV1(infos []*trackingdomain.TrackedEntity) []*TrackedEntityV1 {
	result := make([]*TrackedEntityV1, 0, len(infos))
	for _, info := range infos {
		result = append(result, FromDomainV1(info))
	}
	return result
}

// FromDomainListV2 converts a slice of metadata records to v2, preserving order.
func FromDomainListV2(infos []*trackingdomain.TrackedEntity) []*TrackedEntityV2 {
	result := make([]*TrackedEntityV2, 0, len(infos))
	for _, info := range infos {
		result = append(result, FromDomainV2(info))
	}
	return result
}

// updaterName leaves never-updated records undecorated: there is no updater to have been deleted.
func updaterName(info *trackingdomain.TrackedEntity) *string {
	if !info.IsUpdated() {
		return copyString(info.UpdatedByName)
	}
	return actorName(info.UpdatedBy, info.UpdatedByName)
}

// actorName passes the stored name through while the actor exists, otherwise
// decorates it. A nil name renders as empty text before the suffix.
func actorName(actorID *int64, name *string) *string {
	if actorID != nil {
		return copyString(name)
	}
	var stored string
	if name != nil {
		stored = *name
	}
	decorated := stored + deletedSuffix
	return &decorated
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
