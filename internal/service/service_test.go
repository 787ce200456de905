package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gestimo/rentd/internal/model"
	"github.com/gestimo/rentd/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Organization{},
		&model.Tenant{},
		&model.Property{},
		&model.Room{},
		&model.Contract{},
		&model.Payment{},
		&model.Deposit{},
		&model.DepositTransaction{},
		&model.Addendum{},
		&model.Document{},
	))
	return db
}

// newForeignKeyDB opens a sqlite database with foreign keys enforced and a
// schema carrying the production FK shape for the contract/room relation, so
// referential behavior (ON DELETE SET NULL on contracts.room_id) is exercised
// rather than silently skipped.
func newForeignKeyDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE properties (
			id TEXT PRIMARY KEY,
			org_id TEXT NOT NULL,
			name TEXT NOT NULL,
			address TEXT,
			city TEXT,
			postal_code TEXT,
			usage_type TEXT NOT NULL,
			occupied_rooms INTEGER NOT NULL DEFAULT 0,
			reserved_rooms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE rooms (
			id TEXT PRIMARY KEY,
			property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			rent_amount REAL NOT NULL DEFAULT 0,
			charges REAL NOT NULL DEFAULT 0,
			surface REAL,
			description TEXT,
			status TEXT NOT NULL,
			contract_id TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE contracts (
			id TEXT PRIMARY KEY,
			org_id TEXT NOT NULL,
			property_id TEXT NOT NULL,
			tenant_id TEXT NOT NULL,
			room_id TEXT REFERENCES rooms(id) ON DELETE SET NULL,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			start_date DATETIME,
			end_date DATETIME,
			rent_amount REAL,
			charges REAL,
			deposit_amount REAL,
			signed_at DATETIME,
			notice_at DATETIME,
			notice_end_at DATETIME,
			notice_reason TEXT,
			terminated_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE payments (
			id TEXT PRIMARY KEY,
			contract_id TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
			amount REAL NOT NULL,
			paid_at DATETIME,
			method TEXT,
			reference TEXT,
			voided BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME
		);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func manager(orgID uuid.UUID) model.Principal {
	return model.Principal{UserID: uuid.New(), OrgID: orgID, Role: model.RoleManager}
}

func viewer(orgID uuid.UUID) model.Principal {
	return model.Principal{UserID: uuid.New(), OrgID: orgID, Role: model.RoleViewer}
}

func newContractService(db *gorm.DB) *ContractService {
	return NewContractService(
		db,
		repository.NewContractRepository(db),
		repository.NewPropertyRepository(db),
		repository.NewDepositRepository(db),
		nil,
		nil,
	)
}

func seedTenant(t *testing.T, db *gorm.DB, orgID uuid.UUID) *model.Tenant {
	t.Helper()
	tenant := &model.Tenant{ID: uuid.New(), OrgID: orgID, FirstName: "Claire", LastName: "Moreau"}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

func seedColocation(t *testing.T, db *gorm.DB, orgID uuid.UUID) (*model.Property, uuid.UUID) {
	t.Helper()
	property := &model.Property{
		ID:        uuid.New(),
		OrgID:     orgID,
		Name:      "12 rue des Lilas",
		UsageType: model.UsageTypeColocation,
	}
	room, err := property.AddRoom("Chambre 1", 450, 12, 50, "")
	require.NoError(t, err)
	require.NoError(t, db.Create(property).Error)
	return property, room.ID
}

func contractDates() (time.Time, time.Time) {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
}
