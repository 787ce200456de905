package model

import "time"

// ReceiptDocument is the flattened input of the rent-receipt PDF.
type ReceiptDocument struct {
	Organization Organization
	Tenant       Tenant
	Property     Property
	Contract     Contract
	PeriodStart  time.Time
	PeriodEnd    time.Time
}

// LedgerExport is the flattened input of the contract ledger workbook.
// Deposit is nil when no deposit exists for the contract.
type LedgerExport struct {
	Organization Organization
	Tenant       Tenant
	Contract     Contract
	Deposit      *Deposit
}
