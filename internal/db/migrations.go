package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS organizations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		legal_name VARCHAR(255),
		siren VARCHAR(32),
		address TEXT,
		city VARCHAR(128),
		phone VARCHAR(32),
		email VARCHAR(255)
	);`,
	`CREATE TABLE IF NOT EXISTS tenants (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL REFERENCES organizations(id),
		first_name VARCHAR(128) NOT NULL,
		last_name VARCHAR(128) NOT NULL,
		email VARCHAR(255),
		phone VARCHAR(32)
	);`,
	`CREATE TABLE IF NOT EXISTS properties (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL REFERENCES organizations(id),
		name VARCHAR(255) NOT NULL,
		address TEXT,
		city VARCHAR(128),
		postal_code VARCHAR(16),
		usage_type VARCHAR(32) NOT NULL DEFAULT 'COMPLETE',
		occupied_rooms INTEGER NOT NULL DEFAULT 0,
		reserved_rooms INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		property_id UUID NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		name VARCHAR(128) NOT NULL,
		rent_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		charges NUMERIC(12,2) NOT NULL DEFAULT 0,
		surface NUMERIC(8,2),
		description TEXT,
		status VARCHAR(16) NOT NULL DEFAULT 'AVAILABLE',
		contract_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL REFERENCES organizations(id),
		property_id UUID NOT NULL REFERENCES properties(id),
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		room_id UUID REFERENCES rooms(id) ON DELETE SET NULL,
		type VARCHAR(32) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'DRAFT',
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		rent_amount NUMERIC(12,2) NOT NULL,
		charges NUMERIC(12,2) NOT NULL DEFAULT 0,
		deposit_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		signed_at TIMESTAMPTZ,
		notice_at TIMESTAMPTZ,
		notice_end_at TIMESTAMPTZ,
		notice_reason TEXT,
		terminated_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		amount NUMERIC(12,2) NOT NULL,
		paid_at TIMESTAMPTZ NOT NULL,
		method VARCHAR(16) NOT NULL,
		reference VARCHAR(128),
		voided BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS deposits (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL REFERENCES organizations(id),
		contract_id UUID NOT NULL UNIQUE REFERENCES contracts(id) ON DELETE CASCADE,
		amount_expected NUMERIC(12,2) NOT NULL,
		due_date DATE,
		allow_installments BOOLEAN NOT NULL DEFAULT FALSE,
		status VARCHAR(24) NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS deposit_transactions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		deposit_id UUID NOT NULL REFERENCES deposits(id) ON DELETE CASCADE,
		kind VARCHAR(16) NOT NULL,
		amount NUMERIC(12,2) NOT NULL,
		date_utc TIMESTAMPTZ NOT NULL,
		reference VARCHAR(128),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS addendums (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL REFERENCES organizations(id),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		type VARCHAR(32) NOT NULL,
		effective_date DATE,
		rent_before NUMERIC(12,2),
		rent_after NUMERIC(12,2),
		charges_before NUMERIC(12,2),
		charges_after NUMERIC(12,2),
		end_date_before DATE,
		end_date_after DATE,
		room_before UUID,
		room_after UUID,
		reason TEXT,
		description TEXT,
		notes TEXT,
		attached_document_ids TEXT,
		signature_status VARCHAR(16) NOT NULL DEFAULT 'DRAFT',
		signed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		org_id UUID NOT NULL REFERENCES organizations(id),
		contract_id UUID REFERENCES contracts(id),
		type VARCHAR(32) NOT NULL,
		name VARCHAR(255) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'DRAFT',
		signed_at TIMESTAMPTZ,
		signed_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_org_id ON contracts (org_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_property_id ON contracts (property_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts (status);`,
	`CREATE INDEX IF NOT EXISTS idx_payments_contract_id ON payments (contract_id);`,
	`CREATE INDEX IF NOT EXISTS idx_rooms_property_id ON rooms (property_id);`,
	`CREATE INDEX IF NOT EXISTS idx_deposit_transactions_deposit_id ON deposit_transactions (deposit_id);`,
	`CREATE INDEX IF NOT EXISTS idx_addendums_contract_id ON addendums (contract_id);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_org_id ON documents (org_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
