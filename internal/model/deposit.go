package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type DepositStatus string

const (
	DepositStatusPending       DepositStatus = "PENDING"
	DepositStatusPartiallyPaid DepositStatus = "PARTIALLY_PAID"
	DepositStatusFullyPaid     DepositStatus = "FULLY_PAID"
	DepositStatusRefunded      DepositStatus = "REFUNDED"
)

type DepositTransactionKind string

const (
	DepositTransactionReceived DepositTransactionKind = "RECEIVED"
	DepositTransactionRefunded DepositTransactionKind = "REFUNDED"
	DepositTransactionDeducted DepositTransactionKind = "DEDUCTED"
)

// Deposit tracks a security deposit against an append-only transaction ledger.
// All balances are derived from the ledger on every read; Status is a cached
// summary recomputed after each transaction, never authoritative.
type Deposit struct {
	ID                uuid.UUID `gorm:"primaryKey"`
	OrgID             uuid.UUID `gorm:"index"`
	ContractID        uuid.UUID `gorm:"uniqueIndex"`
	AmountExpected    float64
	DueDate           time.Time
	AllowInstallments bool
	Status            DepositStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Transactions      []DepositTransaction `gorm:"foreignKey:DepositID;constraint:OnDelete:CASCADE"`
}

type DepositTransaction struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	DepositID uuid.UUID `gorm:"index"`
	Kind      DepositTransactionKind
	Amount    float64
	DateUTC   time.Time
	Reference string
	CreatedAt time.Time
}

func NewDeposit(orgID, contractID uuid.UUID, amountExpected float64, dueDate time.Time, allowInstallments bool) (*Deposit, error) {
	if amountExpected < 0 {
		return nil, fmt.Errorf("%w: expected deposit amount must not be negative", ErrValidation)
	}
	return &Deposit{
		ID:                uuid.New(),
		OrgID:             orgID,
		ContractID:        contractID,
		AmountExpected:    amountExpected,
		DueDate:           dueDate,
		AllowInstallments: allowInstallments,
		Status:            DepositStatusPending,
	}, nil
}

// RecordTransaction appends a ledger entry. Amounts are always positive; the
// direction is carried by the kind. Refunds and deductions may not exceed the
// balance currently held. Corrections are made with an offsetting entry, never
// by deleting one.
func (d *Deposit) RecordTransaction(kind DepositTransactionKind, amount float64, dateUTC time.Time, reference string) (*DepositTransaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: transaction amount must be positive", ErrValidation)
	}
	switch kind {
	case DepositTransactionReceived:
	case DepositTransactionRefunded, DepositTransactionDeducted:
		if amount > d.BalanceHeld() {
			return nil, fmt.Errorf("%w: amount exceeds the balance held (%.2f)", ErrValidation, d.BalanceHeld())
		}
	default:
		return nil, fmt.Errorf("%w: unknown transaction kind %q", ErrValidation, kind)
	}

	tx := DepositTransaction{
		ID:        uuid.New(),
		DepositID: d.ID,
		Kind:      kind,
		Amount:    amount,
		DateUTC:   dateUTC,
		Reference: reference,
	}
	d.Transactions = append(d.Transactions, tx)
	d.refreshStatus()
	return &d.Transactions[len(d.Transactions)-1], nil
}

func (d *Deposit) TotalReceived() float64 { return d.sum(DepositTransactionReceived) }
func (d *Deposit) TotalRefunded() float64 { return d.sum(DepositTransactionRefunded) }
func (d *Deposit) TotalDeducted() float64 { return d.sum(DepositTransactionDeducted) }

func (d *Deposit) BalanceHeld() float64 {
	return d.TotalReceived() - d.TotalRefunded() - d.TotalDeducted()
}

func (d *Deposit) Outstanding() float64 {
	outstanding := d.AmountExpected - d.TotalReceived()
	if outstanding < 0 {
		return 0
	}
	return outstanding
}

func (d *Deposit) sum(kind DepositTransactionKind) float64 {
	var total float64
	for _, tx := range d.Transactions {
		if tx.Kind == kind {
			total += tx.Amount
		}
	}
	return total
}

func (d *Deposit) refreshStatus() {
	received := d.TotalReceived()
	switch {
	case received == 0:
		d.Status = DepositStatusPending
	case d.Outstanding() > 0:
		d.Status = DepositStatusPartiallyPaid
	case d.BalanceHeld() == 0:
		d.Status = DepositStatusRefunded
	default:
		d.Status = DepositStatusFullyPaid
	}
}
