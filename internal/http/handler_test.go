package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gestimo/rentd/internal/http/middleware"
	"github.com/gestimo/rentd/internal/model"
	"github.com/gestimo/rentd/internal/repository"
	"github.com/gestimo/rentd/internal/service"
	"github.com/gestimo/rentd/internal/webhook"
)

func newTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
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

	contractRepo := repository.NewContractRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	depositRepo := repository.NewDepositRepository(db)
	addendumRepo := repository.NewAddendumRepository(db)

	contracts := service.NewContractService(db, contractRepo, propertyRepo, depositRepo, nil, nil)
	properties := service.NewPropertyService(db, propertyRepo)
	deposits := service.NewDepositService(db, depositRepo)
	addendums := service.NewAddendumService(db, addendumRepo, zerolog.Nop())
	queue := webhook.NewQueue(4, contracts, zerolog.Nop())

	handler := NewHandler(contracts, properties, deposits, addendums, queue, "hook-secret", zerolog.Nop())
	return handler, db
}

func newTestRouter(handler *Handler, principal model.Principal) *gin.Engine {
	router := gin.New()
	handler.Register(router, func(c *gin.Context) {
		middleware.SetPrincipal(c, principal)
		c.Next()
	})
	return router
}

func perform(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateAndSignContractOverHTTP(t *testing.T) {
	handler, db := newTestHandler(t)
	orgID := uuid.New()
	principal := model.Principal{UserID: uuid.New(), OrgID: orgID, Role: model.RoleManager}
	router := newTestRouter(handler, principal)

	tenant := &model.Tenant{ID: uuid.New(), OrgID: orgID, FirstName: "Claire", LastName: "Moreau"}
	require.NoError(t, db.Create(tenant).Error)
	property := &model.Property{ID: uuid.New(), OrgID: orgID, Name: "12 rue des Lilas", UsageType: model.UsageTypeColocation}
	room, err := property.AddRoom("Chambre 1", 450, 12, 50, "")
	require.NoError(t, err)
	roomID := room.ID
	require.NoError(t, db.Create(property).Error)

	res := perform(router, http.MethodPost, "/contracts", gin.H{
		"property_id":    property.ID.String(),
		"tenant_id":      tenant.ID.String(),
		"room_id":        roomID.String(),
		"type":           "COLOCATION",
		"start_date":     "2025-01-01",
		"end_date":       "2025-12-31",
		"rent_amount":    450,
		"charges":        50,
		"deposit_amount": 450,
	})
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	var created contractResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
	assert.Equal(t, "DRAFT", created.Status)

	res = perform(router, http.MethodPost, "/contracts/"+created.ID.String()+"/sign", gin.H{"signed_at": "2025-01-02"})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var signed contractResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &signed))
	assert.Equal(t, "SIGNED", signed.Status)

	var reloaded model.Property
	require.NoError(t, db.Preload("Rooms").First(&reloaded, "id = ?", property.ID).Error)
	assert.Equal(t, 1, reloaded.OccupiedRooms)
	assert.Equal(t, model.RoomStatusOccupied, reloaded.Rooms[0].Status)
}

func TestErrorMapping(t *testing.T) {
	handler, _ := newTestHandler(t)
	orgID := uuid.New()
	router := newTestRouter(handler, model.Principal{UserID: uuid.New(), OrgID: orgID, Role: model.RoleViewer})

	res := perform(router, http.MethodPost, "/contracts/"+uuid.NewString()+"/activate", nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	managerRouter := newTestRouter(handler, model.Principal{UserID: uuid.New(), OrgID: orgID, Role: model.RoleManager})

	res = perform(managerRouter, http.MethodPost, "/contracts/"+uuid.NewString()+"/activate", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = perform(managerRouter, http.MethodPost, "/contracts/not-a-uuid/activate", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestLifecycleViolationMapsTo422(t *testing.T) {
	handler, db := newTestHandler(t)
	orgID := uuid.New()
	router := newTestRouter(handler, model.Principal{UserID: uuid.New(), OrgID: orgID, Role: model.RoleManager})

	contract := &model.Contract{
		ID:         uuid.New(),
		OrgID:      orgID,
		PropertyID: uuid.New(),
		TenantID:   uuid.New(),
		Type:       model.ContractTypeUnfurnished,
		Status:     model.ContractStatusTerminated,
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		RentAmount: 700,
	}
	require.NoError(t, db.Create(contract).Error)

	res := perform(router, http.MethodPost, "/contracts/"+contract.ID.String()+"/activate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

func TestPaymentWebhookAuthAndEnqueue(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := gin.New()
	handler.Register(router, func(c *gin.Context) { c.Next() })

	payload, _ := json.Marshal(gin.H{
		"org_id":      uuid.NewString(),
		"contract_id": uuid.NewString(),
		"amount":      700,
		"paid_at":     "2025-04-05",
	})

	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code, "missing secret")

	req = httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", "hook-secre")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code, "wrong secret")

	req = httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", "hook-secret")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusAccepted, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, true, body["accepted"])
}
