package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	ContractStatusDraft       ContractStatus = "DRAFT"
	ContractStatusPending     ContractStatus = "PENDING"
	ContractStatusSigned      ContractStatus = "SIGNED"
	ContractStatusActive      ContractStatus = "ACTIVE"
	ContractStatusNoticeGiven ContractStatus = "NOTICE_GIVEN"
	ContractStatusExpired     ContractStatus = "EXPIRED"
	ContractStatusCancelled   ContractStatus = "CANCELLED"
	ContractStatusTerminated  ContractStatus = "TERMINATED"
)

type ContractType string

const (
	ContractTypeFurnished            ContractType = "FURNISHED"
	ContractTypeUnfurnished          ContractType = "UNFURNISHED"
	ContractTypeColocation           ContractType = "COLOCATION"
	ContractTypeColocationIndividual ContractType = "COLOCATION_INDIVIDUAL"
	ContractTypeSeasonal             ContractType = "SEASONAL"
)

type PaymentMethod string

const (
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodCheck    PaymentMethod = "CHECK"
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
)

// Contract is the lease aggregate. It owns its Payments; Property, Tenant and
// Room are referenced by ID only and mutated by the calling service within the
// same transaction.
type Contract struct {
	ID            uuid.UUID `gorm:"primaryKey"`
	OrgID         uuid.UUID `gorm:"index"`
	PropertyID    uuid.UUID
	TenantID      uuid.UUID
	RoomID        *uuid.UUID
	Type          ContractType
	Status        ContractStatus
	StartDate     time.Time
	EndDate       time.Time
	RentAmount    float64
	Charges       float64
	DepositAmount float64
	SignedAt      *time.Time
	NoticeAt      *time.Time
	NoticeEndAt   *time.Time
	NoticeReason  *string
	TerminatedAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Payments      []Payment `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE"`
}

type Payment struct {
	ID         uuid.UUID `gorm:"primaryKey"`
	ContractID uuid.UUID `gorm:"index"`
	Amount     float64
	PaidAt     time.Time
	Method     PaymentMethod
	Reference  string
	Voided     bool
	CreatedAt  time.Time
}

type NewContractInput struct {
	OrgID         uuid.UUID
	PropertyID    uuid.UUID
	TenantID      uuid.UUID
	RoomID        *uuid.UUID
	Type          ContractType
	StartDate     time.Time
	EndDate       time.Time
	RentAmount    float64
	Charges       float64
	DepositAmount float64
}

func NewContract(input NewContractInput) (*Contract, error) {
	if !input.EndDate.After(input.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}
	if input.RentAmount < 0 {
		return nil, fmt.Errorf("%w: rent must not be negative", ErrValidation)
	}
	if input.Charges < 0 {
		return nil, fmt.Errorf("%w: charges must not be negative", ErrValidation)
	}
	return &Contract{
		ID:            uuid.New(),
		OrgID:         input.OrgID,
		PropertyID:    input.PropertyID,
		TenantID:      input.TenantID,
		RoomID:        input.RoomID,
		Type:          input.Type,
		Status:        ContractStatusDraft,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		RentAmount:    input.RentAmount,
		Charges:       input.Charges,
		DepositAmount: input.DepositAmount,
	}, nil
}

// Activate moves a draft or signed contract into its active period.
func (c *Contract) Activate() error {
	if c.Status != ContractStatusDraft && c.Status != ContractStatusSigned {
		return fmt.Errorf("%w: cannot activate a contract in status %s", ErrValidation, c.Status)
	}
	c.Status = ContractStatusActive
	return nil
}

// MarkAsSigned records the signature date. Follow-on effects (occupying a
// colocation room) are the caller's responsibility.
func (c *Contract) MarkAsSigned(signedAt time.Time) error {
	if c.Status != ContractStatusDraft && c.Status != ContractStatusPending {
		return fmt.Errorf("%w: cannot sign a contract in status %s", ErrValidation, c.Status)
	}
	c.SignedAt = &signedAt
	c.Status = ContractStatusSigned
	return nil
}

func (c *Contract) GiveNotice(noticeAt, noticeEndAt time.Time, reason string) error {
	if c.Status != ContractStatusActive {
		return fmt.Errorf("%w: notice can only be given on an active contract, status is %s", ErrValidation, c.Status)
	}
	if !noticeEndAt.After(noticeAt) {
		return fmt.Errorf("%w: notice end date must be after notice date", ErrValidation)
	}
	c.NoticeAt = &noticeAt
	c.NoticeEndAt = &noticeEndAt
	c.NoticeReason = &reason
	c.Status = ContractStatusNoticeGiven
	return nil
}

func (c *Contract) MarkAsExpired(now time.Time) error {
	if c.Status != ContractStatusActive && c.Status != ContractStatusNoticeGiven {
		return fmt.Errorf("%w: cannot expire a contract in status %s", ErrValidation, c.Status)
	}
	if now.Before(c.EndDate) {
		return fmt.Errorf("%w: contract end date has not been reached", ErrValidation)
	}
	c.Status = ContractStatusExpired
	return nil
}

// Cancel aborts a contract that never started.
func (c *Contract) Cancel() error {
	switch c.Status {
	case ContractStatusDraft, ContractStatusPending, ContractStatusSigned:
		c.Status = ContractStatusCancelled
		return nil
	default:
		return fmt.Errorf("%w: cannot cancel a contract in status %s", ErrValidation, c.Status)
	}
}

// Terminate closes a contract at the end of its notice period.
func (c *Contract) Terminate(at time.Time) error {
	if c.Status != ContractStatusNoticeGiven {
		return fmt.Errorf("%w: cannot terminate a contract in status %s", ErrValidation, c.Status)
	}
	c.TerminatedAt = &at
	c.Status = ContractStatusTerminated
	return nil
}

// RecordPayment appends a payment regardless of contract status and returns it
// so the caller can read the generated ID. Payments are never removed, only
// voided in place.
func (c *Contract) RecordPayment(amount float64, paidAt time.Time, method PaymentMethod, reference string) (*Payment, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	payment := Payment{
		ID:         uuid.New(),
		ContractID: c.ID,
		Amount:     amount,
		PaidAt:     paidAt,
		Method:     method,
		Reference:  reference,
	}
	c.Payments = append(c.Payments, payment)
	return &c.Payments[len(c.Payments)-1], nil
}

func (c *Contract) VoidPayment(paymentID uuid.UUID) error {
	for i := range c.Payments {
		if c.Payments[i].ID != paymentID {
			continue
		}
		if c.Payments[i].Voided {
			return fmt.Errorf("%w: payment is already voided", ErrValidation)
		}
		c.Payments[i].Voided = true
		return nil
	}
	return fmt.Errorf("%w: payment not found on contract", ErrValidation)
}

// CanBeDeleted reports whether the contract may be removed outright.
func (c *Contract) CanBeDeleted() bool {
	return c.Status == ContractStatusDraft || c.Status == ContractStatusCancelled
}

func (c *Contract) IsColocation() bool {
	return c.Type == ContractTypeColocation || c.Type == ContractTypeColocationIndividual
}
