package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gestimo/rentd/internal/http/middleware"
	"github.com/gestimo/rentd/internal/model"
	"github.com/gestimo/rentd/internal/service"
	"github.com/gestimo/rentd/internal/webhook"
)

type Handler struct {
	contracts     *service.ContractService
	properties    *service.PropertyService
	deposits      *service.DepositService
	addendums     *service.AddendumService
	queue         *webhook.Queue
	webhookSecret string
	log           zerolog.Logger
}

func NewHandler(
	contracts *service.ContractService,
	properties *service.PropertyService,
	deposits *service.DepositService,
	addendums *service.AddendumService,
	queue *webhook.Queue,
	webhookSecret string,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		contracts:     contracts,
		properties:    properties,
		deposits:      deposits,
		addendums:     addendums,
		queue:         queue,
		webhookSecret: webhookSecret,
		log:           log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/webhooks/payments", h.ingestPaymentWebhook)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/contracts", h.createContract)
	protected.GET("/contracts", h.listContracts)
	protected.GET("/contracts/:id", h.getContract)
	protected.DELETE("/contracts/:id", h.deleteContract)
	protected.POST("/contracts/:id/activate", h.activateContract)
	protected.POST("/contracts/:id/sign", h.signContract)
	protected.POST("/contracts/:id/notice", h.giveNotice)
	protected.POST("/contracts/:id/expire", h.expireContract)
	protected.POST("/contracts/:id/cancel", h.cancelContract)
	protected.POST("/contracts/:id/terminate", h.terminateContract)
	protected.POST("/contracts/:id/payments", h.recordPayment)
	protected.POST("/contracts/:id/payments/:paymentID/void", h.voidPayment)
	protected.GET("/contracts/:id/receipt", h.rentReceipt)
	protected.GET("/contracts/:id/ledger", h.contractLedger)
	protected.GET("/contracts/:id/deposit", h.depositSummary)
	protected.POST("/contracts/:id/deposit/transactions", h.recordDepositTransaction)

	protected.POST("/properties", h.createProperty)
	protected.GET("/properties/:id", h.getProperty)
	protected.GET("/properties/:id/rooms/available", h.availableRooms)
	protected.POST("/properties/:id/rooms", h.addRoom)
	protected.PATCH("/properties/:id/rooms/:roomID", h.updateRoom)
	protected.DELETE("/properties/:id/rooms/:roomID", h.removeRoom)
	protected.POST("/properties/:id/rooms/:roomID/release", h.releaseRoom)

	protected.GET("/addendums/:id", h.getAddendum)
	protected.POST("/addendums/:id/sign", h.signAddendum)
	protected.POST("/addendums/:id/reject", h.rejectAddendum)
}

type createContractRequest struct {
	PropertyID        string  `json:"property_id" binding:"required"`
	TenantID          string  `json:"tenant_id" binding:"required"`
	RoomID            string  `json:"room_id"`
	Type              string  `json:"type" binding:"required"`
	StartDate         string  `json:"start_date" binding:"required"`
	EndDate           string  `json:"end_date" binding:"required"`
	RentAmount        float64 `json:"rent_amount"`
	Charges           float64 `json:"charges"`
	DepositAmount     float64 `json:"deposit_amount"`
	DepositDueDate    string  `json:"deposit_due_date"`
	AllowInstallments bool    `json:"allow_installments"`
}

func (h *Handler) createContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	propertyID, err := parseID(req.PropertyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property_id"})
		return
	}
	tenantID, err := parseID(req.TenantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant_id"})
		return
	}
	var roomID *uuid.UUID
	if req.RoomID != "" {
		id, err := parseID(req.RoomID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
			return
		}
		roomID = &id
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}
	var depositDue time.Time
	if req.DepositDueDate != "" {
		depositDue, err = parseDate(req.DepositDueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deposit_due_date"})
			return
		}
	}

	contract, err := h.contracts.CreateContract(c.Request.Context(), principal, service.CreateContractInput{
		PropertyID:        propertyID,
		TenantID:          tenantID,
		RoomID:            roomID,
		Type:              model.ContractType(strings.ToUpper(strings.TrimSpace(req.Type))),
		StartDate:         startDate,
		EndDate:           endDate,
		RentAmount:        req.RentAmount,
		Charges:           req.Charges,
		DepositAmount:     req.DepositAmount,
		DepositDueDate:    depositDue,
		AllowInstallments: req.AllowInstallments,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toContractResponse(contract))
}

func (h *Handler) listContracts(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	summaries, err := h.contracts.ListContracts(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": summaries})
}

func (h *Handler) getContract(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		contract, err := h.contracts.GetContract(c.Request.Context(), principal, id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toContractResponse(contract))
	})
}

func (h *Handler) deleteContract(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		if err := h.contracts.DeleteContract(c.Request.Context(), principal, id); err != nil {
			h.handleError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func (h *Handler) activateContract(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		contract, err := h.contracts.ActivateContract(c.Request.Context(), principal, id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toContractResponse(contract))
	})
}

type signRequest struct {
	SignedAt string `json:"signed_at"`
}

func (h *Handler) signContract(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		var req signRequest
		_ = c.ShouldBindJSON(&req)
		var signedAt time.Time
		if req.SignedAt != "" {
			parsed, err := parseDate(req.SignedAt)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signed_at"})
				return
			}
			signedAt = parsed
		}
		contract, err := h.contracts.SignContract(c.Request.Context(), principal, id, signedAt)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toContractResponse(contract))
	})
}

type noticeRequest struct {
	NoticeAt    string `json:"notice_at" binding:"required"`
	NoticeEndAt string `json:"notice_end_at" binding:"required"`
	Reason      string `json:"reason"`
}

func (h *Handler) giveNotice(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		var req noticeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		noticeAt, err := parseDate(req.NoticeAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice_at"})
			return
		}
		noticeEndAt, err := parseDate(req.NoticeEndAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice_end_at"})
			return
		}
		contract, err := h.contracts.GiveNotice(c.Request.Context(), principal, id, noticeAt, noticeEndAt, req.Reason)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toContractResponse(contract))
	})
}

func (h *Handler) expireContract(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		contract, err := h.contracts.ExpireContract(c.Request.Context(), principal, id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toContractResponse(contract))
	})
}

func (h *Handler) cancelContract(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		contract, err := h.contracts.CancelContract(c.Request.Context(), principal, id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toContractResponse(contract))
	})
}

type terminateRequest struct {
	TerminatedAt string `json:"terminated_at"`
}

func (h *Handler) terminateContract(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		var req terminateRequest
		_ = c.ShouldBindJSON(&req)
		var at time.Time
		if req.TerminatedAt != "" {
			parsed, err := parseDate(req.TerminatedAt)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid terminated_at"})
				return
			}
			at = parsed
		}
		contract, err := h.contracts.TerminateContract(c.Request.Context(), principal, id, at)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toContractResponse(contract))
	})
}

type recordPaymentRequest struct {
	Amount    float64 `json:"amount" binding:"required"`
	PaidAt    string  `json:"paid_at"`
	Method    string  `json:"method" binding:"required"`
	Reference string  `json:"reference"`
}

func (h *Handler) recordPayment(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		var req recordPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var paidAt time.Time
		if req.PaidAt != "" {
			parsed, err := parseDate(req.PaidAt)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paid_at"})
				return
			}
			paidAt = parsed
		}
		payment, err := h.contracts.RecordPayment(c.Request.Context(), principal, id, service.RecordPaymentInput{
			Amount:    req.Amount,
			PaidAt:    paidAt,
			Method:    model.PaymentMethod(strings.ToUpper(strings.TrimSpace(req.Method))),
			Reference: req.Reference,
		})
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toPaymentResponse(*payment))
	})
}

func (h *Handler) voidPayment(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		paymentID, err := parseID(c.Param("paymentID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
			return
		}
		if err := h.contracts.VoidPayment(c.Request.Context(), principal, id, paymentID); err != nil {
			h.handleError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func (h *Handler) rentReceipt(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		periodStart, err := parseDate(c.Query("period_start"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_start"})
			return
		}
		periodEnd, err := parseDate(c.Query("period_end"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_end"})
			return
		}
		result, err := h.contracts.RentReceipt(c.Request.Context(), principal, id, periodStart, periodEnd)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
		c.Data(http.StatusOK, "application/pdf", result.Content)
	})
}

func (h *Handler) contractLedger(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		result, err := h.contracts.ContractLedger(c.Request.Context(), principal, id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
	})
}

func (h *Handler) depositSummary(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		summary, err := h.deposits.GetSummary(c.Request.Context(), principal, id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toDepositResponse(summary))
	})
}

type depositTransactionRequest struct {
	Kind      string  `json:"kind" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Date      string  `json:"date"`
	Reference string  `json:"reference"`
}

func (h *Handler) recordDepositTransaction(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		var req depositTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var date time.Time
		if req.Date != "" {
			parsed, err := parseDate(req.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
				return
			}
			date = parsed
		}
		tx, err := h.deposits.RecordTransaction(c.Request.Context(), principal, id, service.RecordDepositTransactionInput{
			Kind:      model.DepositTransactionKind(strings.ToUpper(strings.TrimSpace(req.Kind))),
			Amount:    req.Amount,
			DateUTC:   date,
			Reference: req.Reference,
		})
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toDepositTransactionResponse(*tx))
	})
}

type createPropertyRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	UsageType  string `json:"usage_type" binding:"required"`
}

func (h *Handler) createProperty(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	property, err := h.properties.CreateProperty(c.Request.Context(), principal, service.CreatePropertyInput{
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		UsageType:  model.UsageType(strings.ToUpper(strings.TrimSpace(req.UsageType))),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPropertyResponse(property))
}

func (h *Handler) getProperty(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		property, err := h.properties.GetProperty(c.Request.Context(), principal, id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toPropertyResponse(property))
	})
}

func (h *Handler) availableRooms(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		rooms, err := h.properties.ListAvailableRooms(c.Request.Context(), principal, id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		responses := make([]roomResponse, 0, len(rooms))
		for _, room := range rooms {
			responses = append(responses, toRoomResponse(room))
		}
		c.JSON(http.StatusOK, gin.H{"rooms": responses})
	})
}

type addRoomRequest struct {
	Name        string  `json:"name" binding:"required"`
	RentAmount  float64 `json:"rent_amount"`
	Charges     float64 `json:"charges"`
	Surface     float64 `json:"surface"`
	Description string  `json:"description"`
}

func (h *Handler) addRoom(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		var req addRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		room, err := h.properties.AddRoom(c.Request.Context(), principal, id, service.AddRoomInput{
			Name:        req.Name,
			RentAmount:  req.RentAmount,
			Charges:     req.Charges,
			Surface:     req.Surface,
			Description: req.Description,
		})
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toRoomResponse(*room))
	})
}

type updateRoomRequest struct {
	Name        *string  `json:"name"`
	RentAmount  *float64 `json:"rent_amount"`
	Charges     *float64 `json:"charges"`
	Surface     *float64 `json:"surface"`
	Description *string  `json:"description"`
}

func (h *Handler) updateRoom(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		roomID, err := parseID(c.Param("roomID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
			return
		}
		var req updateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		room, err := h.properties.UpdateRoom(c.Request.Context(), principal, id, roomID, model.RoomUpdate{
			Name:        req.Name,
			RentAmount:  req.RentAmount,
			Charges:     req.Charges,
			Surface:     req.Surface,
			Description: req.Description,
		})
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toRoomResponse(*room))
	})
}

func (h *Handler) removeRoom(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		roomID, err := parseID(c.Param("roomID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
			return
		}
		if err := h.properties.RemoveRoom(c.Request.Context(), principal, id, roomID); err != nil {
			h.handleError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func (h *Handler) releaseRoom(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		roomID, err := parseID(c.Param("roomID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
			return
		}
		if err := h.properties.ReleaseRoom(c.Request.Context(), principal, id, roomID); err != nil {
			h.handleError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func (h *Handler) getAddendum(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		addendum, err := h.addendums.GetAddendum(c.Request.Context(), principal, id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toAddendumResponse(addendum))
	})
}

func (h *Handler) signAddendum(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		var req signRequest
		_ = c.ShouldBindJSON(&req)
		var signedAt time.Time
		if req.SignedAt != "" {
			parsed, err := parseDate(req.SignedAt)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signed_at"})
				return
			}
			signedAt = parsed
		}
		addendum, err := h.addendums.SignAddendum(c.Request.Context(), principal, id, signedAt)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toAddendumResponse(addendum))
	})
}

func (h *Handler) rejectAddendum(c *gin.Context) {
	h.withID(c, func(principal model.Principal, id uuid.UUID) {
		addendum, err := h.addendums.RejectAddendum(c.Request.Context(), principal, id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toAddendumResponse(addendum))
	})
}

type paymentWebhookRequest struct {
	OrgID      string  `json:"org_id" binding:"required"`
	ContractID string  `json:"contract_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	PaidAt     string  `json:"paid_at"`
	Method     string  `json:"method"`
	Reference  string  `json:"reference"`
}

// ingestPaymentWebhook authenticates with the shared webhook secret and only
// enqueues; processing happens on the queue consumer. A full queue drops the
// event and still returns 202 to the provider.
func (h *Handler) ingestPaymentWebhook(c *gin.Context) {
	presented := c.GetHeader("X-Webhook-Secret")
	if h.webhookSecret == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(h.webhookSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook secret"})
		return
	}

	var req paymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orgID, err := parseID(req.OrgID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid org_id"})
		return
	}
	contractID, err := parseID(req.ContractID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_id"})
		return
	}
	paidAt := time.Now().UTC()
	if req.PaidAt != "" {
		parsed, err := parseDate(req.PaidAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paid_at"})
			return
		}
		paidAt = parsed
	}
	method := model.PaymentMethodTransfer
	if req.Method != "" {
		method = model.PaymentMethod(strings.ToUpper(strings.TrimSpace(req.Method)))
	}

	accepted := h.queue.Enqueue(webhook.PaymentEvent{
		OrgID:      orgID,
		ContractID: contractID,
		Amount:     req.Amount,
		PaidAt:     paidAt,
		Method:     method,
		Reference:  req.Reference,
	})
	if !accepted {
		h.log.Warn().Str("contract_id", req.ContractID).Msg("payment webhook dropped, queue full")
	}
	c.JSON(http.StatusAccepted, gin.H{"accepted": accepted})
}

// withID resolves the principal and the :id path parameter before handing off
// to the operation.
func (h *Handler) withID(c *gin.Context, fn func(model.Principal, uuid.UUID)) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	fn(principal, id)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("command failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(raw string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(raw))
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
