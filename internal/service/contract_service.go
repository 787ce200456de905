package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gestimo/rentd/internal/model"
	"github.com/gestimo/rentd/internal/repository"
)

type ReceiptGenerator interface {
	Generate(doc model.ReceiptDocument) ([]byte, error)
}

type LedgerExporter interface {
	Generate(export model.LedgerExport) ([]byte, error)
}

// ContractService runs the contract lifecycle commands. Each command is one
// gorm transaction: when a command touches the property aggregate too (room
// occupancy on signing, release on termination), both writes commit together.
type ContractService struct {
	db         *gorm.DB
	contracts  *repository.ContractRepository
	properties *repository.PropertyRepository
	deposits   *repository.DepositRepository
	receipts   ReceiptGenerator
	ledger     LedgerExporter
}

func NewContractService(
	db *gorm.DB,
	contracts *repository.ContractRepository,
	properties *repository.PropertyRepository,
	deposits *repository.DepositRepository,
	receipts ReceiptGenerator,
	ledger LedgerExporter,
) *ContractService {
	return &ContractService{
		db:         db,
		contracts:  contracts,
		properties: properties,
		deposits:   deposits,
		receipts:   receipts,
		ledger:     ledger,
	}
}

type CreateContractInput struct {
	PropertyID        uuid.UUID
	TenantID          uuid.UUID
	RoomID            *uuid.UUID
	Type              model.ContractType
	StartDate         time.Time
	EndDate           time.Time
	RentAmount        float64
	Charges           float64
	DepositAmount     float64
	DepositDueDate    time.Time
	AllowInstallments bool
}

// CreateContract opens a draft contract with its deposit. On a colocation
// property the target room is reserved in the same transaction.
func (s *ContractService) CreateContract(ctx context.Context, principal model.Principal, input CreateContractInput) (*model.Contract, error) {
	if !principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	if input.PropertyID == uuid.Nil || input.TenantID == uuid.Nil {
		return nil, fmt.Errorf("%w: property_id and tenant_id are required", ErrInvalidInput)
	}

	contract, err := model.NewContract(model.NewContractInput{
		OrgID:         principal.OrgID,
		PropertyID:    input.PropertyID,
		TenantID:      input.TenantID,
		RoomID:        input.RoomID,
		Type:          input.Type,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		RentAmount:    input.RentAmount,
		Charges:       input.Charges,
		DepositAmount: input.DepositAmount,
	})
	if err != nil {
		return nil, err
	}

	dueDate := input.DepositDueDate
	if dueDate.IsZero() {
		dueDate = input.StartDate
	}
	deposit, err := model.NewDeposit(principal.OrgID, contract.ID, input.DepositAmount, dueDate, input.AllowInstallments)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if contract.IsColocation() && contract.RoomID != nil {
			property, err := s.properties.WithTx(tx).Get(ctx, principal.OrgID, contract.PropertyID)
			if err != nil {
				return notFoundOr(err)
			}
			if err := property.ReserveRoom(*contract.RoomID, contract.ID); err != nil {
				return err
			}
			if err := s.properties.WithTx(tx).Save(ctx, property); err != nil {
				return err
			}
		}
		if err := s.contracts.WithTx(tx).Create(ctx, contract); err != nil {
			return err
		}
		return s.deposits.WithTx(tx).Create(ctx, deposit)
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *ContractService) GetContract(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Contract, error) {
	contract, err := s.contracts.Get(ctx, principal.OrgID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return contract, nil
}

func (s *ContractService) ListContracts(ctx context.Context, principal model.Principal) ([]repository.ContractSummary, error) {
	return s.contracts.ListByOrg(ctx, principal.OrgID)
}

func (s *ContractService) ActivateContract(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Contract, error) {
	return s.mutate(ctx, principal, id, func(contract *model.Contract, _ *gorm.DB) error {
		return contract.Activate()
	})
}

// SignContract marks the contract signed and, for a colocation lease bound to
// a room, occupies that room. Both aggregates flush in the same transaction so
// a signed contract never coexists with an unoccupied room.
func (s *ContractService) SignContract(ctx context.Context, principal model.Principal, id uuid.UUID, signedAt time.Time) (*model.Contract, error) {
	if signedAt.IsZero() {
		signedAt = time.Now().UTC()
	}
	return s.mutate(ctx, principal, id, func(contract *model.Contract, tx *gorm.DB) error {
		if err := contract.MarkAsSigned(signedAt); err != nil {
			return err
		}
		if !contract.IsColocation() || contract.RoomID == nil {
			return nil
		}
		property, err := s.properties.WithTx(tx).Get(ctx, principal.OrgID, contract.PropertyID)
		if err != nil {
			return notFoundOr(err)
		}
		if err := property.OccupyRoom(*contract.RoomID, contract.ID); err != nil {
			return err
		}
		return s.properties.WithTx(tx).Save(ctx, property)
	})
}

func (s *ContractService) GiveNotice(ctx context.Context, principal model.Principal, id uuid.UUID, noticeAt, noticeEndAt time.Time, reason string) (*model.Contract, error) {
	if noticeAt.IsZero() || noticeEndAt.IsZero() {
		return nil, fmt.Errorf("%w: notice dates are required", ErrInvalidInput)
	}
	return s.mutate(ctx, principal, id, func(contract *model.Contract, _ *gorm.DB) error {
		return contract.GiveNotice(noticeAt, noticeEndAt, reason)
	})
}

func (s *ContractService) ExpireContract(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Contract, error) {
	return s.mutate(ctx, principal, id, func(contract *model.Contract, tx *gorm.DB) error {
		if err := contract.MarkAsExpired(time.Now().UTC()); err != nil {
			return err
		}
		return s.releaseRoomIfHeld(ctx, tx, principal.OrgID, contract)
	})
}

func (s *ContractService) CancelContract(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Contract, error) {
	return s.mutate(ctx, principal, id, func(contract *model.Contract, tx *gorm.DB) error {
		if err := contract.Cancel(); err != nil {
			return err
		}
		return s.releaseRoomIfHeld(ctx, tx, principal.OrgID, contract)
	})
}

func (s *ContractService) TerminateContract(ctx context.Context, principal model.Principal, id uuid.UUID, at time.Time) (*model.Contract, error) {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return s.mutate(ctx, principal, id, func(contract *model.Contract, tx *gorm.DB) error {
		if err := contract.Terminate(at); err != nil {
			return err
		}
		return s.releaseRoomIfHeld(ctx, tx, principal.OrgID, contract)
	})
}

type RecordPaymentInput struct {
	Amount    float64
	PaidAt    time.Time
	Method    model.PaymentMethod
	Reference string
}

func (s *ContractService) RecordPayment(ctx context.Context, principal model.Principal, id uuid.UUID, input RecordPaymentInput) (*model.Payment, error) {
	if !principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	if input.PaidAt.IsZero() {
		input.PaidAt = time.Now().UTC()
	}

	var payment *model.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		contract, err := s.contracts.WithTx(tx).Get(ctx, principal.OrgID, id)
		if err != nil {
			return notFoundOr(err)
		}
		payment, err = contract.RecordPayment(input.Amount, input.PaidAt, input.Method, input.Reference)
		if err != nil {
			return err
		}
		return s.contracts.WithTx(tx).Save(ctx, contract)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// RecordExternalPayment is the webhook ingestion path: no principal, the
// organization comes from the event payload.
func (s *ContractService) RecordExternalPayment(ctx context.Context, orgID, contractID uuid.UUID, amount float64, paidAt time.Time, method model.PaymentMethod, reference string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		contract, err := s.contracts.WithTx(tx).Get(ctx, orgID, contractID)
		if err != nil {
			return notFoundOr(err)
		}
		if _, err := contract.RecordPayment(amount, paidAt, method, reference); err != nil {
			return err
		}
		return s.contracts.WithTx(tx).Save(ctx, contract)
	})
}

func (s *ContractService) VoidPayment(ctx context.Context, principal model.Principal, id, paymentID uuid.UUID) error {
	if !principal.CanWrite() {
		return ErrPermissionDenied
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		contract, err := s.contracts.WithTx(tx).Get(ctx, principal.OrgID, id)
		if err != nil {
			return notFoundOr(err)
		}
		if err := contract.VoidPayment(paymentID); err != nil {
			return err
		}
		return s.contracts.WithTx(tx).Save(ctx, contract)
	})
}

// DeleteContract removes a draft or cancelled contract. A room still reserved
// for it is released in the same transaction.
func (s *ContractService) DeleteContract(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.CanWrite() {
		return ErrPermissionDenied
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		contract, err := s.contracts.WithTx(tx).Get(ctx, principal.OrgID, id)
		if err != nil {
			return notFoundOr(err)
		}
		if !contract.CanBeDeleted() {
			return fmt.Errorf("%w: only draft or cancelled contracts can be deleted", model.ErrValidation)
		}
		if err := s.releaseRoomIfHeld(ctx, tx, principal.OrgID, contract); err != nil {
			return err
		}
		return s.contracts.WithTx(tx).Delete(ctx, contract)
	})
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// RentReceipt renders the quittance for one rent period.
func (s *ContractService) RentReceipt(ctx context.Context, principal model.Principal, id uuid.UUID, periodStart, periodEnd time.Time) (*ExportResult, error) {
	if periodStart.IsZero() || periodEnd.IsZero() {
		return nil, fmt.Errorf("%w: period dates are required", ErrInvalidInput)
	}
	if !periodEnd.After(periodStart) {
		return nil, fmt.Errorf("%w: period_end must be after period_start", ErrInvalidInput)
	}

	doc, err := s.loadExportContext(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	content, err := s.receipts.Generate(model.ReceiptDocument{
		Organization: doc.org,
		Tenant:       doc.tenant,
		Property:     doc.property,
		Contract:     *doc.contract,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
	})
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("quittance-%s-%s.pdf", sanitizeFileName(doc.tenant.FullName()), periodStart.Format("200601"))
	return &ExportResult{FileName: fileName, Content: content}, nil
}

// ContractLedger exports payments and deposit transactions as a workbook.
func (s *ContractService) ContractLedger(ctx context.Context, principal model.Principal, id uuid.UUID) (*ExportResult, error) {
	doc, err := s.loadExportContext(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	deposit, err := s.deposits.GetByContract(ctx, principal.OrgID, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	content, err := s.ledger.Generate(model.LedgerExport{
		Organization: doc.org,
		Tenant:       doc.tenant,
		Contract:     *doc.contract,
		Deposit:      deposit,
	})
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("ledger-%s-%s.xlsx", sanitizeFileName(doc.tenant.FullName()), doc.contract.ID)
	return &ExportResult{FileName: fileName, Content: content}, nil
}

type exportContext struct {
	contract *model.Contract
	tenant   model.Tenant
	property model.Property
	org      model.Organization
}

func (s *ContractService) loadExportContext(ctx context.Context, principal model.Principal, id uuid.UUID) (*exportContext, error) {
	contract, err := s.contracts.Get(ctx, principal.OrgID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	tenant, err := s.contracts.GetTenant(ctx, principal.OrgID, contract.TenantID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	property, err := s.properties.Get(ctx, principal.OrgID, contract.PropertyID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	org, err := s.contracts.GetOrganization(ctx, principal.OrgID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &exportContext{contract: contract, tenant: *tenant, property: *property, org: *org}, nil
}

// mutate loads the contract, applies fn and saves, all in one transaction.
func (s *ContractService) mutate(ctx context.Context, principal model.Principal, id uuid.UUID, fn func(*model.Contract, *gorm.DB) error) (*model.Contract, error) {
	if !principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	var contract *model.Contract
	err := s.db.Transaction(func(tx *gorm.DB) error {
		loaded, err := s.contracts.WithTx(tx).Get(ctx, principal.OrgID, id)
		if err != nil {
			return notFoundOr(err)
		}
		if err := fn(loaded, tx); err != nil {
			return err
		}
		if err := s.contracts.WithTx(tx).Save(ctx, loaded); err != nil {
			return err
		}
		contract = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// releaseRoomIfHeld frees the colocation room still associated to the
// contract, if any. Rooms held by another contract are left alone.
func (s *ContractService) releaseRoomIfHeld(ctx context.Context, tx *gorm.DB, orgID uuid.UUID, contract *model.Contract) error {
	if !contract.IsColocation() || contract.RoomID == nil {
		return nil
	}
	property, err := s.properties.WithTx(tx).Get(ctx, orgID, contract.PropertyID)
	if err != nil {
		return notFoundOr(err)
	}
	room, err := property.GetRoom(*contract.RoomID)
	if err != nil {
		return nil
	}
	if room.ContractID == nil || *room.ContractID != contract.ID {
		return nil
	}
	if err := property.ReleaseRoom(room.ID); err != nil {
		return err
	}
	return s.properties.WithTx(tx).Save(ctx, property)
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
