package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gestimo/rentd/internal/model"
	"github.com/gestimo/rentd/internal/repository"
)

// DepositService records security-deposit transactions and serves the derived
// balance view.
type DepositService struct {
	db       *gorm.DB
	deposits *repository.DepositRepository
}

func NewDepositService(db *gorm.DB, deposits *repository.DepositRepository) *DepositService {
	return &DepositService{db: db, deposits: deposits}
}

type RecordDepositTransactionInput struct {
	Kind      model.DepositTransactionKind
	Amount    float64
	DateUTC   time.Time
	Reference string
}

func (s *DepositService) RecordTransaction(ctx context.Context, principal model.Principal, contractID uuid.UUID, input RecordDepositTransactionInput) (*model.DepositTransaction, error) {
	if !principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	if input.DateUTC.IsZero() {
		input.DateUTC = time.Now().UTC()
	}

	var recorded *model.DepositTransaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		deposit, err := s.deposits.WithTx(tx).GetByContract(ctx, principal.OrgID, contractID)
		if err != nil {
			return notFoundOr(err)
		}
		recorded, err = deposit.RecordTransaction(input.Kind, input.Amount, input.DateUTC, input.Reference)
		if err != nil {
			return err
		}
		return s.deposits.WithTx(tx).Save(ctx, deposit)
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}

// DepositSummary is the derived view of a deposit ledger; every figure is
// recomputed from the transactions on read.
type DepositSummary struct {
	ContractID     uuid.UUID
	AmountExpected float64
	DueDate        time.Time
	Status         model.DepositStatus
	TotalReceived  float64
	TotalRefunded  float64
	TotalDeducted  float64
	BalanceHeld    float64
	Outstanding    float64
	Transactions   []model.DepositTransaction
}

func (s *DepositService) GetSummary(ctx context.Context, principal model.Principal, contractID uuid.UUID) (*DepositSummary, error) {
	deposit, err := s.deposits.GetByContract(ctx, principal.OrgID, contractID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &DepositSummary{
		ContractID:     deposit.ContractID,
		AmountExpected: deposit.AmountExpected,
		DueDate:        deposit.DueDate,
		Status:         deposit.Status,
		TotalReceived:  deposit.TotalReceived(),
		TotalRefunded:  deposit.TotalRefunded(),
		TotalDeducted:  deposit.TotalDeducted(),
		BalanceHeld:    deposit.BalanceHeld(),
		Outstanding:    deposit.Outstanding(),
		Transactions:   deposit.Transactions,
	}, nil
}
