package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gestimo/rentd/internal/model"
	"github.com/gestimo/rentd/internal/repository"
)

// PropertyService runs the room commands on colocation properties.
type PropertyService struct {
	db         *gorm.DB
	properties *repository.PropertyRepository
}

func NewPropertyService(db *gorm.DB, properties *repository.PropertyRepository) *PropertyService {
	return &PropertyService{db: db, properties: properties}
}

type CreatePropertyInput struct {
	Name       string
	Address    string
	City       string
	PostalCode string
	UsageType  model.UsageType
}

func (s *PropertyService) CreateProperty(ctx context.Context, principal model.Principal, input CreatePropertyInput) (*model.Property, error) {
	if !principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	property := &model.Property{
		ID:         uuid.New(),
		OrgID:      principal.OrgID,
		Name:       input.Name,
		Address:    input.Address,
		City:       input.City,
		PostalCode: input.PostalCode,
		UsageType:  input.UsageType,
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Property, error) {
	property, err := s.properties.Get(ctx, principal.OrgID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return property, nil
}

func (s *PropertyService) ListAvailableRooms(ctx context.Context, principal model.Principal, id uuid.UUID) ([]model.Room, error) {
	property, err := s.properties.Get(ctx, principal.OrgID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return property.AvailableRooms(), nil
}

type AddRoomInput struct {
	Name        string
	RentAmount  float64
	Charges     float64
	Surface     float64
	Description string
}

func (s *PropertyService) AddRoom(ctx context.Context, principal model.Principal, propertyID uuid.UUID, input AddRoomInput) (*model.Room, error) {
	if !principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: room name is required", ErrInvalidInput)
	}

	var room model.Room
	err := s.db.Transaction(func(tx *gorm.DB) error {
		property, err := s.properties.WithTx(tx).Get(ctx, principal.OrgID, propertyID)
		if err != nil {
			return notFoundOr(err)
		}
		added, err := property.AddRoom(input.Name, input.RentAmount, input.Surface, input.Charges, input.Description)
		if err != nil {
			return err
		}
		room = *added
		return s.properties.WithTx(tx).Save(ctx, property)
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *PropertyService) UpdateRoom(ctx context.Context, principal model.Principal, propertyID, roomID uuid.UUID, update model.RoomUpdate) (*model.Room, error) {
	if !principal.CanWrite() {
		return nil, ErrPermissionDenied
	}

	var room model.Room
	err := s.db.Transaction(func(tx *gorm.DB) error {
		property, err := s.properties.WithTx(tx).Get(ctx, principal.OrgID, propertyID)
		if err != nil {
			return notFoundOr(err)
		}
		if err := property.UpdateRoom(roomID, update); err != nil {
			return err
		}
		updated, err := property.GetRoom(roomID)
		if err != nil {
			return err
		}
		room = *updated
		return s.properties.WithTx(tx).Save(ctx, property)
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *PropertyService) ReleaseRoom(ctx context.Context, principal model.Principal, propertyID, roomID uuid.UUID) error {
	if !principal.CanWrite() {
		return ErrPermissionDenied
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		property, err := s.properties.WithTx(tx).Get(ctx, principal.OrgID, propertyID)
		if err != nil {
			return notFoundOr(err)
		}
		if err := property.ReleaseRoom(roomID); err != nil {
			return err
		}
		return s.properties.WithTx(tx).Save(ctx, property)
	})
}

func (s *PropertyService) RemoveRoom(ctx context.Context, principal model.Principal, propertyID, roomID uuid.UUID) error {
	if !principal.CanWrite() {
		return ErrPermissionDenied
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		property, err := s.properties.WithTx(tx).Get(ctx, principal.OrgID, propertyID)
		if err != nil {
			return notFoundOr(err)
		}
		removed, err := property.RemoveRoom(roomID)
		if err != nil {
			return err
		}
		if err := s.properties.WithTx(tx).DeleteRoom(ctx, removed.ID); err != nil {
			return err
		}
		return s.properties.WithTx(tx).Save(ctx, property)
	})
}
