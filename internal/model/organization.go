package model

import "github.com/google/uuid"

type Organization struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	Name      string
	LegalName string
	SIREN     string
	Address   string
	City      string
	Phone     string
	Email     string
}
