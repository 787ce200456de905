package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type UsageType string

const (
	UsageTypeComplete             UsageType = "COMPLETE"
	UsageTypeColocation           UsageType = "COLOCATION"
	UsageTypeColocationIndividual UsageType = "COLOCATION_INDIVIDUAL"
	UsageTypeAirbnb               UsageType = "AIRBNB"
)

type RoomStatus string

const (
	RoomStatusAvailable RoomStatus = "AVAILABLE"
	RoomStatusReserved  RoomStatus = "RESERVED"
	RoomStatusOccupied  RoomStatus = "OCCUPIED"
)

// Property owns its Rooms (colocation usage only). The occupied/reserved
// counters are kept in step with the room statuses by the mutation methods.
type Property struct {
	ID            uuid.UUID `gorm:"primaryKey"`
	OrgID         uuid.UUID `gorm:"index"`
	Name          string
	Address       string
	City          string
	PostalCode    string
	UsageType     UsageType
	OccupiedRooms int
	ReservedRooms int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Rooms         []Room `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

type Room struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	PropertyID  uuid.UUID `gorm:"index"`
	Name        string
	RentAmount  float64
	Charges     float64
	Surface     float64
	Description string
	Status      RoomStatus
	ContractID  *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoomUpdate carries a partial update; nil fields keep the current value.
type RoomUpdate struct {
	Name        *string
	RentAmount  *float64
	Charges     *float64
	Surface     *float64
	Description *string
}

func (p *Property) IsColocation() bool {
	return p.UsageType == UsageTypeColocation || p.UsageType == UsageTypeColocationIndividual
}

func (p *Property) GetRoom(roomID uuid.UUID) (*Room, error) {
	for i := range p.Rooms {
		if p.Rooms[i].ID == roomID {
			return &p.Rooms[i], nil
		}
	}
	return nil, fmt.Errorf("%w: room not found on property", ErrValidation)
}

func (p *Property) AvailableRooms() []Room {
	available := make([]Room, 0, len(p.Rooms))
	for _, room := range p.Rooms {
		if room.Status == RoomStatusAvailable {
			available = append(available, room)
		}
	}
	return available
}

func (p *Property) AddRoom(name string, rent, surface, charges float64, description string) (*Room, error) {
	if !p.IsColocation() {
		return nil, fmt.Errorf("%w: rooms can only be added to a colocation property", ErrValidation)
	}
	if rent < 0 {
		return nil, fmt.Errorf("%w: room rent must not be negative", ErrValidation)
	}
	room := Room{
		ID:          uuid.New(),
		PropertyID:  p.ID,
		Name:        name,
		RentAmount:  rent,
		Charges:     charges,
		Surface:     surface,
		Description: description,
		Status:      RoomStatusAvailable,
	}
	p.Rooms = append(p.Rooms, room)
	return &p.Rooms[len(p.Rooms)-1], nil
}

// ReserveRoom holds an available room for a contract that is not signed yet.
func (p *Property) ReserveRoom(roomID, contractID uuid.UUID) error {
	if !p.IsColocation() {
		return fmt.Errorf("%w: property usage type %s has no rooms to reserve", ErrValidation, p.UsageType)
	}
	room, err := p.GetRoom(roomID)
	if err != nil {
		return err
	}
	if room.Status != RoomStatusAvailable {
		return fmt.Errorf("%w: room %s is not available", ErrValidation, room.Name)
	}
	room.Status = RoomStatusReserved
	room.ContractID = &contractID
	p.ReservedRooms++
	return nil
}

// OccupyRoom transitions a room to occupied and associates the contract.
// Called by the contract-signing command in the same transaction as the
// contract mutation.
func (p *Property) OccupyRoom(roomID, contractID uuid.UUID) error {
	if !p.IsColocation() {
		return fmt.Errorf("%w: property usage type %s has no rooms to occupy", ErrValidation, p.UsageType)
	}
	room, err := p.GetRoom(roomID)
	if err != nil {
		return err
	}
	if room.Status == RoomStatusOccupied {
		return fmt.Errorf("%w: room %s is already occupied", ErrValidation, room.Name)
	}
	if room.Status == RoomStatusReserved {
		if room.ContractID != nil && *room.ContractID != contractID {
			return fmt.Errorf("%w: room %s is reserved for another contract", ErrValidation, room.Name)
		}
		p.ReservedRooms--
	}
	room.Status = RoomStatusOccupied
	room.ContractID = &contractID
	p.OccupiedRooms++
	return nil
}

// ReleaseRoom returns a room to the available pool and clears the contract
// association.
func (p *Property) ReleaseRoom(roomID uuid.UUID) error {
	if !p.IsColocation() {
		return fmt.Errorf("%w: property usage type %s has no rooms to release", ErrValidation, p.UsageType)
	}
	room, err := p.GetRoom(roomID)
	if err != nil {
		return err
	}
	if room.ContractID == nil {
		return fmt.Errorf("%w: room %s is not associated to a contract", ErrValidation, room.Name)
	}
	switch room.Status {
	case RoomStatusOccupied:
		p.OccupiedRooms--
	case RoomStatusReserved:
		p.ReservedRooms--
	}
	room.Status = RoomStatusAvailable
	room.ContractID = nil
	return nil
}

// RemoveRoom detaches an available room from the property and returns it so
// the repository can delete the row. Occupied or reserved rooms cannot be
// removed.
func (p *Property) RemoveRoom(roomID uuid.UUID) (*Room, error) {
	for i := range p.Rooms {
		if p.Rooms[i].ID != roomID {
			continue
		}
		if p.Rooms[i].Status != RoomStatusAvailable {
			return nil, fmt.Errorf("%w: only an available room can be removed, room %s is %s", ErrValidation, p.Rooms[i].Name, p.Rooms[i].Status)
		}
		removed := p.Rooms[i]
		p.Rooms = append(p.Rooms[:i], p.Rooms[i+1:]...)
		return &removed, nil
	}
	return nil, fmt.Errorf("%w: room not found on property", ErrValidation)
}

func (p *Property) UpdateRoom(roomID uuid.UUID, update RoomUpdate) error {
	room, err := p.GetRoom(roomID)
	if err != nil {
		return err
	}
	if update.Name != nil {
		room.Name = *update.Name
	}
	if update.RentAmount != nil {
		if *update.RentAmount < 0 {
			return fmt.Errorf("%w: room rent must not be negative", ErrValidation)
		}
		room.RentAmount = *update.RentAmount
	}
	if update.Charges != nil {
		room.Charges = *update.Charges
	}
	if update.Surface != nil {
		room.Surface = *update.Surface
	}
	if update.Description != nil {
		room.Description = *update.Description
	}
	return nil
}
