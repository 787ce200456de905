package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestimo/rentd/internal/model"
	"github.com/gestimo/rentd/internal/repository"
)

func TestAddRoomPersistsOnColocation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyService(db, repository.NewPropertyRepository(db))
	orgID := uuid.New()
	principal := manager(orgID)

	property, err := svc.CreateProperty(context.Background(), principal, CreatePropertyInput{
		Name:      "12 rue des Lilas",
		UsageType: model.UsageTypeColocation,
	})
	require.NoError(t, err)

	room, err := svc.AddRoom(context.Background(), principal, property.ID, AddRoomInput{
		Name:       "Chambre 2",
		RentAmount: 480,
		Charges:    40,
		Surface:    11,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusAvailable, room.Status)

	reloaded, err := svc.GetProperty(context.Background(), principal, property.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Rooms, 1)
	assert.Equal(t, "Chambre 2", reloaded.Rooms[0].Name)
}

func TestAddRoomRejectedOnCompleteProperty(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyService(db, repository.NewPropertyRepository(db))
	orgID := uuid.New()
	principal := manager(orgID)

	property, err := svc.CreateProperty(context.Background(), principal, CreatePropertyInput{
		Name:      "Maison entière",
		UsageType: model.UsageTypeComplete,
	})
	require.NoError(t, err)

	_, err = svc.AddRoom(context.Background(), principal, property.ID, AddRoomInput{Name: "Chambre"})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestRemoveRoomDeletesRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyService(db, repository.NewPropertyRepository(db))
	orgID := uuid.New()
	principal := manager(orgID)
	property, roomID := seedColocation(t, db, orgID)

	require.NoError(t, svc.RemoveRoom(context.Background(), principal, property.ID, roomID))

	var count int64
	require.NoError(t, db.Model(&model.Room{}).Where("id = ?", roomID).Count(&count).Error)
	assert.Zero(t, count)
}

// A terminated contract keeps pointing at its old room until the room row is
// deleted; the FK on contracts.room_id then sets it to NULL so removing the
// freed room stays a plain domain operation instead of a constraint error.
func TestRemoveRoomAfterTerminationUnderForeignKeys(t *testing.T) {
	db := newForeignKeyDB(t)
	orgID := uuid.New()
	contracts := newContractService(db)
	properties := NewPropertyService(db, repository.NewPropertyRepository(db))
	property, roomID := seedColocation(t, db, orgID)
	start, end := contractDates()

	noticeAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	noticeEndAt := noticeAt.AddDate(0, 3, 0)
	contract, err := model.NewContract(model.NewContractInput{
		OrgID:      orgID,
		PropertyID: property.ID,
		TenantID:   uuid.New(),
		RoomID:     &roomID,
		Type:       model.ContractTypeColocation,
		StartDate:  start,
		EndDate:    end,
		RentAmount: 450,
	})
	require.NoError(t, err)
	contract.Status = model.ContractStatusNoticeGiven
	contract.NoticeAt = &noticeAt
	contract.NoticeEndAt = &noticeEndAt
	require.NoError(t, db.Create(contract).Error)

	require.NoError(t, db.Model(&model.Room{}).Where("id = ?", roomID).Updates(map[string]any{
		"status":      model.RoomStatusOccupied,
		"contract_id": contract.ID,
	}).Error)
	require.NoError(t, db.Model(&model.Property{}).Where("id = ?", property.ID).Update("occupied_rooms", 1).Error)

	terminated, err := contracts.TerminateContract(context.Background(), manager(orgID), contract.ID, noticeEndAt)
	require.NoError(t, err)
	assert.Equal(t, model.ContractStatusTerminated, terminated.Status)

	reloaded, err := repository.NewPropertyRepository(db).Get(context.Background(), orgID, property.ID)
	require.NoError(t, err)
	room, err := reloaded.GetRoom(roomID)
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusAvailable, room.Status)

	require.NoError(t, properties.RemoveRoom(context.Background(), manager(orgID), property.ID, roomID))

	var count int64
	require.NoError(t, db.Model(&model.Room{}).Where("id = ?", roomID).Count(&count).Error)
	assert.Zero(t, count)

	released, err := repository.NewContractRepository(db).Get(context.Background(), orgID, contract.ID)
	require.NoError(t, err)
	assert.Nil(t, released.RoomID)
}

func TestRoomMutationsRequireWriteRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyService(db, repository.NewPropertyRepository(db))
	orgID := uuid.New()
	property, roomID := seedColocation(t, db, orgID)

	_, err := svc.AddRoom(context.Background(), viewer(orgID), property.ID, AddRoomInput{Name: "Chambre"})
	require.ErrorIs(t, err, ErrPermissionDenied)

	err = svc.RemoveRoom(context.Background(), viewer(orgID), property.ID, roomID)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestListAvailableRoomsScopedToOrg(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyService(db, repository.NewPropertyRepository(db))
	orgID := uuid.New()
	property, _ := seedColocation(t, db, orgID)

	rooms, err := svc.ListAvailableRooms(context.Background(), manager(orgID), property.ID)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	_, err = svc.ListAvailableRooms(context.Background(), manager(uuid.New()), property.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
