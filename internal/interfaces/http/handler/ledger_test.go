package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ledgerapp "github.com/advoga/backend/internal/application/ledger"
	matterapp "github.com/advoga/backend/internal/application/matter"
	"github.com/advoga/backend/internal/domain/shared"
	"github.com/advoga/backend/internal/infrastructure/persistence"
	"github.com/advoga/backend/internal/infrastructure/persistence/models"
	"github.com/advoga/backend/internal/interfaces/http/dto"
	"github.com/advoga/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testServer wires handlers against a throwaway sqlite database, with the
// auth middleware replaced by a stub that injects the given tenant.
type testServer struct {
	engine   *gin.Engine
	tenantID uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.TransactionModel{},
		&models.ReportSnapshotModel{},
		&models.LegalCaseModel{},
		&models.CaseMovementModel{},
		&models.ClientModel{},
	))
	// Mirrors the unique keys the schema migration creates in postgres.
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX idx_report_tenant_period ON report_snapshots(tenant_id, month, year)").Error)
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX idx_case_tenant_number ON legal_cases(tenant_id, case_number)").Error)

	txRepo := persistence.NewGormTransactionRepository(db)
	snapshotRepo := persistence.NewGormReportSnapshotRepository(db)
	caseRepo := persistence.NewGormCaseRepository(db)
	clientRepo := persistence.NewGormClientRepository(db)

	ledgerHandler := NewLedgerHandler(
		ledgerapp.NewTransactionService(txRepo, caseRepo, clientRepo),
		ledgerapp.NewSettlementService(txRepo, caseRepo),
	)
	reportHandler := NewReportHandler(ledgerapp.NewPeriodService(txRepo, snapshotRepo))
	matterHandler := NewMatterHandler(matterapp.NewMatterService(caseRepo, clientRepo), nil)

	tenantID := uuid.New()
	engine := gin.New()
	api := engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set(middleware.TenantIDKey, tenantID.String())
		c.Next()
	})
	ledgerHandler.RegisterRoutes(api)
	reportHandler.RegisterRoutes(api)
	matterHandler.RegisterRoutes(api)

	return &testServer{engine: engine, tenantID: tenantID}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var resp dto.Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func (s *testServer) createCase(t *testing.T, caseNumber string) uuid.UUID {
	t.Helper()
	w, resp := s.do(t, http.MethodPost, "/api/v1/cases", gin.H{
		"case_number": caseNumber,
		"title":       "Silva v. Acme",
		"area":        "Civil",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := resp.Data.(map[string]any)
	return uuid.MustParse(data["id"].(string))
}

func TestLedgerHandlerRecordAndList(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(t, http.MethodPost, "/api/v1/ledger/transactions", gin.H{
		"type":        "EXPENSE",
		"category":    "COURT_COST",
		"amount":      "150.00",
		"description": "Filing fee",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.True(t, resp.Success)

	entry := resp.Data.(map[string]any)
	assert.Equal(t, "PENDING", entry["status"])
	assert.Equal(t, "BRL", entry["currency"])

	w, resp = s.do(t, http.MethodGet, "/api/v1/ledger/transactions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := resp.Data.([]any)
	require.Len(t, entries, 1)

	t.Run("summary groups active entries", func(t *testing.T) {
		w, resp := s.do(t, http.MethodGet, "/api/v1/ledger/summary", nil)
		require.Equal(t, http.StatusOK, w.Code)
		groups := resp.Data.([]any)
		require.Len(t, groups, 1)
		group := groups[0].(map[string]any)
		assert.Equal(t, "EXPENSE", group["type"])
		assert.Equal(t, "COURT_COST", group["category"])
		assert.Equal(t, "PENDING", group["status"])
		assert.Equal(t, "150", group["total"])
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		w, resp := s.do(t, http.MethodPost, "/api/v1/ledger/transactions", gin.H{
			"type":        "EXPENSE",
			"category":    "LUNCH",
			"amount":      "10.00",
			"description": "nope",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, shared.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "category", resp.Error.Field)
	})
}

func TestLedgerHandlerMarkPaid(t *testing.T) {
	s := newTestServer(t)

	_, resp := s.do(t, http.MethodPost, "/api/v1/ledger/transactions", gin.H{
		"type":        "INCOME",
		"category":    "FEE",
		"amount":      "500.00",
		"description": "Retainer",
	})
	id := resp.Data.(map[string]any)["id"].(string)

	w, resp := s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/ledger/transactions/%s/pay", id), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	paid := resp.Data.(map[string]any)
	assert.Equal(t, "PAID", paid["status"])
	assert.NotNil(t, paid["paid_date"])

	t.Run("paying twice is rejected", func(t *testing.T) {
		w, resp := s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/ledger/transactions/%s/pay", id), nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, shared.ErrCodeInvalidState, resp.Error.Code)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/ledger/transactions/%s/pay", uuid.New()), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLedgerHandlerSplitSettlement(t *testing.T) {
	s := newTestServer(t)
	caseID := s.createCase(t, "0001234-56.2024.8.26.0100")

	w, resp := s.do(t, http.MethodPost, "/api/v1/ledger/settlements", gin.H{
		"case_id":      caseID,
		"gross_amount": "1000.01",
		"fee_percent":  "30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := resp.Data.(map[string]any)
	fee := data["fee"].(map[string]any)
	repayment := data["repayment"].(map[string]any)
	assert.Equal(t, "300", fee["amount"])
	assert.Equal(t, "700.01", repayment["amount"])
	assert.Equal(t, "INCOME", fee["type"])
	assert.Equal(t, "EXPENSE", repayment["type"])
	assert.Equal(t, caseID.String(), fee["case_id"])

	t.Run("foreign case yields 404", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/api/v1/ledger/settlements", gin.H{
			"case_id":      uuid.New(),
			"gross_amount": "1000.00",
			"fee_percent":  "30",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("fee percent above 100 is rejected", func(t *testing.T) {
		w, resp := s.do(t, http.MethodPost, "/api/v1/ledger/settlements", gin.H{
			"case_id":      caseID,
			"gross_amount": "1000.00",
			"fee_percent":  "101",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, shared.ErrCodeValidation, resp.Error.Code)
	})
}

type currentPeriod struct {
	month int
	year  int
}

func timeNowPeriod() currentPeriod {
	now := time.Now().UTC()
	return currentPeriod{month: int(now.Month()), year: now.Year()}
}

func TestReportHandlerClosePeriod(t *testing.T) {
	s := newTestServer(t)

	_, _ = s.do(t, http.MethodPost, "/api/v1/ledger/transactions", gin.H{
		"type":        "INCOME",
		"category":    "FEE",
		"amount":      "900.00",
		"description": "Retainer",
	})
	_, _ = s.do(t, http.MethodPost, "/api/v1/ledger/transactions", gin.H{
		"type":        "EXPENSE",
		"category":    "OPERATIONAL",
		"amount":      "200.00",
		"description": "Office supplies",
	})

	now := timeNowPeriod()
	w, resp := s.do(t, http.MethodPost, "/api/v1/ledger/periods/close", gin.H{
		"month": now.month,
		"year":  now.year,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	snapshot := resp.Data.(map[string]any)
	assert.Equal(t, "900", snapshot["total_income"])
	assert.Equal(t, "200", snapshot["total_expense"])
	assert.Equal(t, "700", snapshot["net_balance"])
	assert.Equal(t, float64(2), snapshot["transaction_count"])

	// Archived entries disappear from the active ledger.
	w, resp = s.do(t, http.MethodGet, "/api/v1/ledger/transactions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data)

	t.Run("closing again yields 409", func(t *testing.T) {
		w, resp := s.do(t, http.MethodPost, "/api/v1/ledger/periods/close", gin.H{
			"month": now.month,
			"year":  now.year,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, shared.ErrCodePeriodAlreadyClosed, resp.Error.Code)
	})

	t.Run("empty period yields 422", func(t *testing.T) {
		w, resp := s.do(t, http.MethodPost, "/api/v1/ledger/periods/close", gin.H{
			"month": 1,
			"year":  2019,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, shared.ErrCodeNothingToClose, resp.Error.Code)
	})

	t.Run("closed periods are listed", func(t *testing.T) {
		w, resp := s.do(t, http.MethodGet, "/api/v1/ledger/periods", nil)
		require.Equal(t, http.StatusOK, w.Code)
		reports := resp.Data.([]any)
		require.Len(t, reports, 1)
	})
}
