package model

import (
	"strings"

	"github.com/google/uuid"
)

// Tenant is the occupant referenced by contracts. Loaded read-only by the
// receipt and export flows.
type Tenant struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	OrgID     uuid.UUID `gorm:"index"`
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (t Tenant) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}
