package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"
)

func ptr[T any](v T) *T { return &v }

func trackedEntity(createdBy *int64, updatedBy *int64, updatedAt time.Time) *trackingdomain.TrackedEntity {
	return trackingdomain.RestoreTrackedEntity(
		time.Date(2024, 5, 10, 8, 30, 0, 0, time.UTC),
		createdBy,
		ptr("Test user"),
		&updatedAt,
		updatedBy,
		ptr("Test user"),
	)
}

func TestFromDomainV1_ExistingUser(t *testing.T) {
	updatedAt := time.Date(2024, 5, 11, 9, 0, 0, 0, time.UTC)
	info := trackedEntity(ptr(int64(22)), ptr(int64(22)), updatedAt)

	vm := FromDomainV1(info)

	require.NotNil(t, vm)
	assert.Equal(t, info.CreatedAt().Unix(), vm.CreatedAt)
	assert.Equal(t, int64(22), *vm.CreatedBy)
	assert.Equal(t, "Test user", *vm.CreatedByName)
	assert.Equal(t, int64(22), *vm.UpdatedBy)
	assert.Equal(t, "Test user", *vm.UpdatedByName)
	require.NotNil(t, vm.UpdatedAt)
	assert.Equal(t, updatedAt.Unix(), *vm.UpdatedAt)
}

func TestFromDomainV1_DeletedUser(t *testing.T) {
	updatedAt := time.Date(2024, 5, 11, 9, 0, 0, 0, time.UTC)
	info := trackedEntity(nil, nil, updatedAt)

	vm := FromDomainV1(info)

	require.NotNil(t, vm)
	assert.Nil(t, vm.CreatedBy)
	assert.Equal(t, "Test user (deleted)", *vm.CreatedByName)
	assert.Nil(t, vm.UpdatedBy)
	assert.Equal(t, "Test user (deleted)", *vm.UpdatedByName)
	assert.Equal(t, updatedAt.Unix(), *vm.UpdatedAt)
}

func TestFromDomainV2_ExistingUser(t *testing.T) {
	updatedAt := time.Date(2024, 5, 11, 9, 0, 0, 0, time.UTC)
	info := trackedEntity(ptr(int64(22)), ptr(int64(22)), updatedAt)

	vm := FromDomainV2(info)

	require.NotNil(t, vm)
	assert.Equal(t, info.CreatedAt(), vm.CreatedAt)
	assert.Equal(t, int64(22), *vm.CreatedBy)
	assert.Equal(t, "Test user", *vm.CreatedByName)
	assert.Equal(t, int64(22), *vm.UpdatedBy)
	assert.Equal(t, "Test user", *vm.UpdatedByName)
	assert.Equal(t, updatedAt, *vm.UpdatedAt)
}

func TestFromDomainV2_DeletedUser(t *testing.T) {
	updatedAt := time.Date(2024, 5, 11, 9, 0, 0, 0, time.UTC)
	info := trackedEntity(nil, nil, updatedAt)

	vm := FromDomainV2(info)

	require.NotNil(t, vm)
	assert.Nil(t, vm.CreatedBy)
	assert.Equal(t, "Test user (deleted)", *vm.CreatedByName)
	assert.Nil(t, vm.UpdatedBy)
	assert.Equal(t, "Test user (deleted)", *vm.UpdatedByName)
	assert.Equal(t, updatedAt, *vm.UpdatedAt)
}

func TestFromDomain_NotUpdated(t *testing.T) {
	info := trackingdomain.NewTrackedEntity()

	v1 := FromDomainV1(info)
	v2 := FromDomainV2(info)

	assert.Nil(t, v1.UpdatedAt)
	assert.Nil(t, v2.UpdatedAt)
	assert.Equal(t, trackingdomain.SystemUserID, *v1.CreatedBy)
	assert.Nil(t, v1.CreatedByName)
	assert.Nil(t, v1.UpdatedBy)
	assert.Nil(t, v1.UpdatedByName)
	assert.Nil(t, v2.UpdatedByName)
}

func TestFromDomain_DeletedUserWithoutName(t *testing.T) {
	info := trackingdomain.RestoreTrackedEntity(time.Now().UTC(), nil, nil, nil, nil, nil)

	assert.Equal(t, " (deleted)", *FromDomainV1(info).CreatedByName)
	assert.Equal(t, " (deleted)", *FromDomainV2(info).CreatedByName)
}

func TestFromDomain_IsPure(t *testing.T) {
	updatedAt := time.Date(2024, 5, 11, 9, 0, 0, 0, time.UTC)
	info := trackedEntity(nil, ptr(int64(3)), updatedAt)

	assert.Equal(t, FromDomainV1(info), FromDomainV1(info))
	assert.Equal(t, FromDomainV2(info), FromDomainV2(info))
	assert.Equal(t, "Test user", *info.CreatedByName)
}

func TestFromDomain_DoesNotAliasSource(t *testing.T) {
	updatedAt := time.Date(2024, 5, 11, 9, 0, 0, 0, time.UTC)
	info := trackedEntity(ptr(int64(22)), ptr(int64(22)), updatedAt)

	vm := FromDomainV2(info)
	*vm.CreatedBy = 1
	*vm.UpdatedAt = updatedAt.Add(time.Hour)

	assert.Equal(t, int64(22), *info.CreatedBy)
	assert.Equal(t, updatedAt, *info.UpdatedAt)
}

func TestFromDomain_Nil(t *testing.T) {
	assert.Nil(t, FromDomainV1(nil))
	assert.Nil(t, FromDomainV2(nil))
}

func TestFromDomainList_PreservesOrder(t *testing.T) {
	first := trackingdomain.RestoreTrackedEntity(time.Unix(100, 0).UTC(), ptr(int64(1)), ptr("a"), nil, nil, nil)
	second := trackingdomain.RestoreTrackedEntity(time.Unix(200, 0).UTC(), ptr(int64(2)), ptr("b"), nil, nil, nil)

	v1 := FromDomainListV1([]*trackingdomain.TrackedEntity{first, second})
	v2 := FromDomainListV2([]*trackingdomain.TrackedEntity{first, second})

	require.Len(t, v1, 2)
	require.Len(t, v2, 2)
	assert.Equal(t, int64(100), v1[0].CreatedAt)
	assert.Equal(t, int64(200), v1[1].CreatedAt)
	assert.Equal(t, "b", *v2[1].CreatedByName)
}

func TestTrackedEntityV1_JSON(t *testing.T) {
	info := trackingdomain.RestoreTrackedEntity(time.Unix(1700000000, 0).UTC(), ptr(int64(22)), ptr("Test user"), nil, nil, nil)

	raw, err := json.Marshal(FromDomainV1(info))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"createdAt": 1700000000,
		"createdBy": 22,
		"createdByName": "Test user",
		"updatedAt": null,
		"updatedBy": null,
		"updatedByName": null
	}`, string(raw))
}
