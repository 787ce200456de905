package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gestimo/rentd/internal/model"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) WithTx(tx *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: tx}
}

func (r *PropertyRepository) Get(ctx context.Context, orgID, id uuid.UUID) (*model.Property, error) {
	var property model.Property
	err := r.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepository) Create(ctx context.Context, property *model.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

// Save flushes the property and its room collection in one go.
func (r *PropertyRepository) Save(ctx context.Context, property *model.Property) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(property).Error
}

// DeleteRoom removes a room row detached from the aggregate by RemoveRoom.
func (r *PropertyRepository) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Room{}, "id = ?", roomID).Error
}
