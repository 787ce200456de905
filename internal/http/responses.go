package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/gestimo/rentd/internal/model"
	"github.com/gestimo/rentd/internal/service"
)

type contractResponse struct {
	ID            uuid.UUID         `json:"id"`
	PropertyID    uuid.UUID         `json:"property_id"`
	TenantID      uuid.UUID         `json:"tenant_id"`
	RoomID        *uuid.UUID        `json:"room_id,omitempty"`
	Type          string            `json:"type"`
	Status        string            `json:"status"`
	StartDate     time.Time         `json:"start_date"`
	EndDate       time.Time         `json:"end_date"`
	RentAmount    float64           `json:"rent_amount"`
	Charges       float64           `json:"charges"`
	DepositAmount float64           `json:"deposit_amount"`
	SignedAt      *time.Time        `json:"signed_at,omitempty"`
	NoticeAt      *time.Time        `json:"notice_at,omitempty"`
	NoticeEndAt   *time.Time        `json:"notice_end_at,omitempty"`
	NoticeReason  *string           `json:"notice_reason,omitempty"`
	TerminatedAt  *time.Time        `json:"terminated_at,omitempty"`
	Payments      []paymentResponse `json:"payments"`
}

type paymentResponse struct {
	ID        uuid.UUID `json:"id"`
	Amount    float64   `json:"amount"`
	PaidAt    time.Time `json:"paid_at"`
	Method    string    `json:"method"`
	Reference string    `json:"reference,omitempty"`
	Voided    bool      `json:"voided"`
}

func toContractResponse(c *model.Contract) contractResponse {
	payments := make([]paymentResponse, 0, len(c.Payments))
	for _, p := range c.Payments {
		payments = append(payments, toPaymentResponse(p))
	}
	return contractResponse{
		ID:            c.ID,
		PropertyID:    c.PropertyID,
		TenantID:      c.TenantID,
		RoomID:        c.RoomID,
		Type:          string(c.Type),
		Status:        string(c.Status),
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		RentAmount:    c.RentAmount,
		Charges:       c.Charges,
		DepositAmount: c.DepositAmount,
		SignedAt:      c.SignedAt,
		NoticeAt:      c.NoticeAt,
		NoticeEndAt:   c.NoticeEndAt,
		NoticeReason:  c.NoticeReason,
		TerminatedAt:  c.TerminatedAt,
		Payments:      payments,
	}
}

func toPaymentResponse(p model.Payment) paymentResponse {
	return paymentResponse{
		ID:        p.ID,
		Amount:    p.Amount,
		PaidAt:    p.PaidAt,
		Method:    string(p.Method),
		Reference: p.Reference,
		Voided:    p.Voided,
	}
}

type propertyResponse struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Address       string         `json:"address,omitempty"`
	City          string         `json:"city,omitempty"`
	PostalCode    string         `json:"postal_code,omitempty"`
	UsageType     string         `json:"usage_type"`
	OccupiedRooms int            `json:"occupied_rooms"`
	ReservedRooms int            `json:"reserved_rooms"`
	Rooms         []roomResponse `json:"rooms"`
}

type roomResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	RentAmount  float64    `json:"rent_amount"`
	Charges     float64    `json:"charges"`
	Surface     float64    `json:"surface,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	ContractID  *uuid.UUID `json:"contract_id,omitempty"`
}

func toPropertyResponse(p *model.Property) propertyResponse {
	rooms := make([]roomResponse, 0, len(p.Rooms))
	for _, room := range p.Rooms {
		rooms = append(rooms, toRoomResponse(room))
	}
	return propertyResponse{
		ID:            p.ID,
		Name:          p.Name,
		Address:       p.Address,
		City:          p.City,
		PostalCode:    p.PostalCode,
		UsageType:     string(p.UsageType),
		OccupiedRooms: p.OccupiedRooms,
		ReservedRooms: p.ReservedRooms,
		Rooms:         rooms,
	}
}

func toRoomResponse(r model.Room) roomResponse {
	return roomResponse{
		ID:          r.ID,
		Name:        r.Name,
		RentAmount:  r.RentAmount,
		Charges:     r.Charges,
		Surface:     r.Surface,
		Description: r.Description,
		Status:      string(r.Status),
		ContractID:  r.ContractID,
	}
}

type depositResponse struct {
	ContractID     uuid.UUID                    `json:"contract_id"`
	AmountExpected float64                      `json:"amount_expected"`
	DueDate        time.Time                    `json:"due_date"`
	Status         string                       `json:"status"`
	TotalReceived  float64                      `json:"total_received"`
	TotalRefunded  float64                      `json:"total_refunded"`
	TotalDeducted  float64                      `json:"total_deducted"`
	BalanceHeld    float64                      `json:"balance_held"`
	Outstanding    float64                      `json:"outstanding"`
	Transactions   []depositTransactionResponse `json:"transactions"`
}

type depositTransactionResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Amount    float64   `json:"amount"`
	DateUTC   time.Time `json:"date_utc"`
	Reference string    `json:"reference,omitempty"`
}

func toDepositResponse(summary *service.DepositSummary) depositResponse {
	transactions := make([]depositTransactionResponse, 0, len(summary.Transactions))
	for _, tx := range summary.Transactions {
		transactions = append(transactions, toDepositTransactionResponse(tx))
	}
	return depositResponse{
		ContractID:     summary.ContractID,
		AmountExpected: summary.AmountExpected,
		DueDate:        summary.DueDate,
		Status:         string(summary.Status),
		TotalReceived:  summary.TotalReceived,
		TotalRefunded:  summary.TotalRefunded,
		TotalDeducted:  summary.TotalDeducted,
		BalanceHeld:    summary.BalanceHeld,
		Outstanding:    summary.Outstanding,
		Transactions:   transactions,
	}
}

func toDepositTransactionResponse(tx model.DepositTransaction) depositTransactionResponse {
	return depositTransactionResponse{
		ID:        tx.ID,
		Kind:      string(tx.Kind),
		Amount:    tx.Amount,
		DateUTC:   tx.DateUTC,
		Reference: tx.Reference,
	}
}

type addendumResponse struct {
	ID              uuid.UUID   `json:"id"`
	ContractID      uuid.UUID   `json:"contract_id"`
	Type            string      `json:"type"`
	EffectiveDate   time.Time   `json:"effective_date"`
	RentBefore      *float64    `json:"rent_before,omitempty"`
	RentAfter       *float64    `json:"rent_after,omitempty"`
	ChargesBefore   *float64    `json:"charges_before,omitempty"`
	ChargesAfter    *float64    `json:"charges_after,omitempty"`
	EndDateBefore   *time.Time  `json:"end_date_before,omitempty"`
	EndDateAfter    *time.Time  `json:"end_date_after,omitempty"`
	RoomBefore      *uuid.UUID  `json:"room_before,omitempty"`
	RoomAfter       *uuid.UUID  `json:"room_after,omitempty"`
	Reason          string      `json:"reason,omitempty"`
	Description     string      `json:"description,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	DocumentIDs     []uuid.UUID `json:"document_ids"`
	SignatureStatus string      `json:"signature_status"`
	SignedAt        *time.Time  `json:"signed_at,omitempty"`
}

func toAddendumResponse(a *model.Addendum) addendumResponse {
	ids, err := a.DocumentIDs()
	if err != nil {
		ids = nil
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return addendumResponse{
		ID:              a.ID,
		ContractID:      a.ContractID,
		Type:            string(a.Type),
		EffectiveDate:   a.EffectiveDate,
		RentBefore:      a.RentBefore,
		RentAfter:       a.RentAfter,
		ChargesBefore:   a.ChargesBefore,
		ChargesAfter:    a.ChargesAfter,
		EndDateBefore:   a.EndDateBefore,
		EndDateAfter:    a.EndDateAfter,
		RoomBefore:      a.RoomBefore,
		RoomAfter:       a.RoomAfter,
		Reason:          a.Reason,
		Description:     a.Description,
		Notes:           a.Notes,
		DocumentIDs:     ids,
		SignatureStatus: string(a.SignatureStatus),
		SignedAt:        a.SignedAt,
	}
}
