package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentTypeLease    DocumentType = "BAIL"
	DocumentTypeAddendum DocumentType = "AVENANT"
	DocumentTypeReceipt  DocumentType = "QUITTANCE"
	DocumentTypeOther    DocumentType = "AUTRE"
)

type DocumentStatus string

const (
	DocumentStatusDraft  DocumentStatus = "DRAFT"
	DocumentStatusSigned DocumentStatus = "SIGNED"
)

type Document struct {
	ID         uuid.UUID `gorm:"primaryKey"`
	OrgID      uuid.UUID `gorm:"index"`
	ContractID *uuid.UUID
	Type       DocumentType
	Name       string
	Status     DocumentStatus
	SignedAt   *time.Time
	SignedBy   *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MarkAsSigned is idempotent; signing an already signed document keeps the
// original signature.
func (d *Document) MarkAsSigned(signedAt time.Time, signedBy uuid.UUID) {
	if d.Status == DocumentStatusSigned {
		return
	}
	d.Status = DocumentStatusSigned
	d.SignedAt = &signedAt
	d.SignedBy = &signedBy
}
