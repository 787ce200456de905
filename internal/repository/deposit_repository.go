package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gestimo/rentd/internal/model"
)

type DepositRepository struct {
	db *gorm.DB
}

func NewDepositRepository(db *gorm.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

func (r *DepositRepository) WithTx(tx *gorm.DB) *DepositRepository {
	return &DepositRepository{db: tx}
}

// GetByContract loads the one deposit of a contract, ledger included, in
// recording order.
func (r *DepositRepository) GetByContract(ctx context.Context, orgID, contractID uuid.UUID) (*model.Deposit, error) {
	var deposit model.Deposit
	err := r.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("org_id = ? AND contract_id = ?", orgID, contractID).
		First(&deposit).Error
	if err != nil {
		return nil, err
	}
	return &deposit, nil
}

func (r *DepositRepository) Create(ctx context.Context, deposit *model.Deposit) error {
	return r.db.WithContext(ctx).Create(deposit).Error
}

func (r *DepositRepository) Save(ctx context.Context, deposit *model.Deposit) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(deposit).Error
}
