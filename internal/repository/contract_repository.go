package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gestimo/rentd/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// WithTx rebinds the repository to a transaction so several aggregate writes
// commit together.
func (r *ContractRepository) WithTx(tx *gorm.DB) *ContractRepository {
	return &ContractRepository{db: tx}
}

func (r *ContractRepository) Get(ctx context.Context, orgID, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepository) Create(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

// Save flushes the contract and its payment collection in one go.
func (r *ContractRepository) Save(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(contract).Error
}

func (r *ContractRepository) Delete(ctx context.Context, contract *model.Contract) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("contract_id = ?", contract.ID).Delete(&model.Payment{}).Error; err != nil {
		return err
	}
	return db.Delete(&model.Contract{}, "id = ?", contract.ID).Error
}

// ContractSummary is the flat row returned by list queries.
type ContractSummary struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	TenantID   uuid.UUID
	Status     model.ContractStatus
	Type       model.ContractType
	StartDate  time.Time
	EndDate    time.Time
	RentAmount float64
	Charges    float64
	TenantName string
}

func (r *ContractRepository) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]ContractSummary, error) {
	var rows []ContractSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.property_id,
			c.tenant_id,
			c.status,
			c.type,
			c.start_date,
			c.end_date,
			c.rent_amount,
			c.charges,
			COALESCE(t.first_name || ' ' || t.last_name, '') AS tenant_name
		FROM contracts c
		LEFT JOIN tenants t ON t.id = c.tenant_id
		WHERE c.org_id = ?
		ORDER BY c.created_at DESC
	`, orgID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ContractRepository) GetOrganization(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *ContractRepository) GetTenant(ctx context.Context, orgID, id uuid.UUID) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}
