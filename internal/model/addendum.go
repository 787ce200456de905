package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AddendumType string

const (
	AddendumTypeRentChange    AddendumType = "RENT_CHANGE"
	AddendumTypeRoomChange    AddendumType = "ROOM_CHANGE"
	AddendumTypeDateExtension AddendumType = "DATE_EXTENSION"
	AddendumTypeClauseChange  AddendumType = "CLAUSE_CHANGE"
)

type SignatureStatus string

const (
	SignatureStatusDraft    SignatureStatus = "DRAFT"
	SignatureStatusSigned   SignatureStatus = "SIGNED"
	SignatureStatusRejected SignatureStatus = "REJECTED"
)

// Addendum amends a contract (rent, room, dates or clauses) and carries its
// own signature flow. Before/after snapshots keep the amendment auditable
// without touching the contract history. AttachedDocumentIDs holds a JSON
// array of document UUIDs.
type Addendum struct {
	ID                  uuid.UUID `gorm:"primaryKey"`
	OrgID               uuid.UUID `gorm:"index"`
	ContractID          uuid.UUID `gorm:"index"`
	Type                AddendumType
	EffectiveDate       time.Time
	RentBefore          *float64
	RentAfter           *float64
	ChargesBefore       *float64
	ChargesAfter        *float64
	EndDateBefore       *time.Time
	EndDateAfter        *time.Time
	RoomBefore          *uuid.UUID
	RoomAfter           *uuid.UUID
	Reason              string
	Description         string
	Notes               string
	AttachedDocumentIDs string
	SignatureStatus     SignatureStatus
	SignedAt            *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// MarkAsSigned is a no-op on an already signed addendum. A rejected addendum
// can never be signed.
func (a *Addendum) MarkAsSigned(signedAt time.Time) error {
	switch a.SignatureStatus {
	case SignatureStatusSigned:
		return nil
	case SignatureStatusRejected:
		return fmt.Errorf("%w: a rejected addendum cannot be signed", ErrValidation)
	}
	a.SignatureStatus = SignatureStatusSigned
	a.SignedAt = &signedAt
	return nil
}

// Reject is terminal.
func (a *Addendum) Reject() error {
	switch a.SignatureStatus {
	case SignatureStatusRejected:
		return nil
	case SignatureStatusSigned:
		return fmt.Errorf("%w: a signed addendum cannot be rejected", ErrValidation)
	}
	a.SignatureStatus = SignatureStatusRejected
	return nil
}

// DocumentIDs parses the attached-document payload. An empty payload means no
// attachments; a malformed one is reported to the caller, which decides how
// loudly to degrade.
func (a *Addendum) DocumentIDs() ([]uuid.UUID, error) {
	if a.AttachedDocumentIDs == "" {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(a.AttachedDocumentIDs), &ids); err != nil {
		return nil, fmt.Errorf("parse attached document ids: %w", err)
	}
	return ids, nil
}
