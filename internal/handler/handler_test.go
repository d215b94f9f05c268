package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/ledger"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/models"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/repository"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/service"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", "text", "stderr"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newLedgerHandler(t *testing.T) *LedgerHandler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SaleRecord{}))

	chain := ledger.NewChain(1)
	svc := service.NewLedgerService(chain, repository.NewSalesRepository(db))
	return NewLedgerHandler(svc)
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handlerFunc(w, req)
	return w
}

func TestRecordSaleEndpoint(t *testing.T) {
	h := newLedgerHandler(t)

	w := postJSON(t, h.RecordSale, "/api/blockchain/sale", map[string]interface{}{
		"storeId": "store-1",
		"products": []map[string]interface{}{
			{"name": "Rice 5kg", "price": 850, "category": "Grocery"},
			{"name": "Tea", "price": 150, "category": "Beverage", "barcode": "999999999999"},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		BlockIndex    int     `json:"blockIndex"`
		TransactionID string  `json:"transactionId"`
		Total         float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.BlockIndex)
	assert.Len(t, resp.TransactionID, 16)
	assert.InDelta(t, 1000, resp.Total, 1e-9)
}

func TestRecordSaleValidation(t *testing.T) {
	h := newLedgerHandler(t)

	w := postJSON(t, h.RecordSale, "/api/blockchain/sale", map[string]interface{}{
		"products": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, h.RecordSale, "/api/blockchain/sale", map[string]interface{}{
		"storeId": "store-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "products must be an array")

	w = postJSON(t, h.RecordSale, "/api/blockchain/sale", map[string]interface{}{
		"storeId": "store-1",
		"products": []map[string]interface{}{
			{"name": "Bad", "price": -10},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/blockchain/sale", nil)
	w2 := httptest.NewRecorder()
	h.RecordSale(w2, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w2.Code)
}

func TestStatusEndpoint(t *testing.T) {
	h := newLedgerHandler(t)

	w := postJSON(t, h.RecordSale, "/api/blockchain/sale", map[string]interface{}{
		"storeId":  "store-1",
		"products": []map[string]interface{}{{"name": "Rice", "price": 850}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/blockchain/status", nil)
	w = httptest.NewRecorder()
	h.GetStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var snapshot ledger.SnapshotData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.True(t, snapshot.IsValid)
	assert.Equal(t, 2, snapshot.TotalBlocks)
	assert.Equal(t, 1, snapshot.Difficulty)
	assert.Equal(t, "Genesis", snapshot.Chain[0].PreviousHash)
}

func TestSummaryEndpoint(t *testing.T) {
	h := newLedgerHandler(t)

	for _, store := range []string{"store-a", "store-a", "store-b"} {
		w := postJSON(t, h.RecordSale, "/api/blockchain/sale", map[string]interface{}{
			"storeId":  store,
			"products": []map[string]interface{}{{"name": "Rice", "price": 100}},
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/blockchain/summary?storeId=store-a", nil)
	w := httptest.NewRecorder()
	h.GetSummary(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary ledger.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Transactions)
	assert.InDelta(t, 200, summary.TotalRevenue, 1e-9)
}

func TestRecentSalesEndpoint(t *testing.T) {
	h := newLedgerHandler(t)

	w := postJSON(t, h.RecordSale, "/api/blockchain/sale", map[string]interface{}{
		"storeId":  "store-1",
		"products": []map[string]interface{}{{"name": "Rice", "price": 850}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/sales/recent", nil)
	w = httptest.NewRecorder()
	h.GetRecentSales(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var records []models.SaleRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "store-1", records[0].StoreID)
	assert.Equal(t, 1, records[0].ItemCount)
}

func TestCreditScoreEndpoint(t *testing.T) {
	h := NewScoreHandler(service.NewScoringService())

	w := postJSON(t, h.Calculate, "/api/credit-score", map[string]interface{}{
		"transactions":     25,
		"on_time_payments": 20,
		"missed_payments":  0,
		"profit":           3000,
		"revenue":          10000,
		"days_active":      10,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		CreditScore  int    `json:"credit_score"`
		RiskCategory string `json:"risk_category"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 100, result.CreditScore)
	assert.Equal(t, "Excellent", result.RiskCategory)
}

func TestCreditScoreBreakdownEndpoint(t *testing.T) {
	h := NewScoreHandler(service.NewScoringService())

	body := map[string]interface{}{
		"transactions":     10,
		"on_time_payments": 8,
		"missed_payments":  2,
		"profit":           500,
		"revenue":          10000,
		"days_active":      20,
	}

	w := postJSON(t, h.Breakdown, "/api/credit-score/breakdown", body)
	require.Equal(t, http.StatusOK, w.Code)

	var breakdown struct {
		TotalScore int `json:"total_score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &breakdown))

	w = postJSON(t, h.Calculate, "/api/credit-score", body)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		CreditScore int `json:"credit_score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, result.CreditScore, breakdown.TotalScore)
}

func TestCreditScoreReportEndpoint(t *testing.T) {
	h := NewScoreHandler(service.NewScoringService())

	w := postJSON(t, h.Report, "/api/credit-score/report", map[string]interface{}{
		"transactions": 2, "days_active": 30,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		Recommendations []string `json:"recommendations"`
		Strengths       []string `json:"strengths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.NotEmpty(t, report.Recommendations)
	assert.NotEmpty(t, report.Strengths)
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	HandleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
