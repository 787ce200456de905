package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gestimo/rentd/internal/model"
)

type AddendumRepository struct {
	db *gorm.DB
}

func NewAddendumRepository(db *gorm.DB) *AddendumRepository {
	return &AddendumRepository{db: db}
}

func (r *AddendumRepository) WithTx(tx *gorm.DB) *AddendumRepository {
	return &AddendumRepository{db: tx}
}

func (r *AddendumRepository) Get(ctx context.Context, orgID, id uuid.UUID) (*model.Addendum, error) {
	var addendum model.Addendum
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&addendum).Error
	if err != nil {
		return nil, err
	}
	return &addendum, nil
}

func (r *AddendumRepository) Create(ctx context.Context, addendum *model.Addendum) error {
	return r.db.WithContext(ctx).Create(addendum).Error
}

func (r *AddendumRepository) Save(ctx context.Context, addendum *model.Addendum) error {
	return r.db.WithContext(ctx).Save(addendum).Error
}

func (r *AddendumRepository) GetDocument(ctx context.Context, orgID, id uuid.UUID) (*model.Document, error) {
	var document model.Document
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&document).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *AddendumRepository) SaveDocument(ctx context.Context, document *model.Document) error {
	return r.db.WithContext(ctx).Save(document).Error
}
