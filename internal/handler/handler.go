package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/ledger"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/models"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/repository"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/scoring"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/service"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/pkg/errors"
)

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps input-validation failures to 400 and everything
// else to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Code(err) == errors.ErrInvalidInput {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

type LedgerHandler struct {
	ledgerSvc *service.LedgerService
}

func NewLedgerHandler(ledgerSvc *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

type productPayload struct {
	Barcode  string  `json:"barcode"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

func (h *LedgerHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		StoreID  string            `json:"storeId"`
		Products *[]productPayload `json:"products"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.StoreID == "" {
		writeError(w, http.StatusBadRequest, "storeId is required")
		return
	}
	if req.Products == nil {
		writeError(w, http.StatusBadRequest, "products must be an array")
		return
	}

	products := make([]ledger.Product, 0, len(*req.Products))
	for _, p := range *req.Products {
		products = append(products, ledger.Product{
			Barcode:  p.Barcode,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
		})
	}

	ctx := r.Context()
	block, err := h.ledgerSvc.RecordSale(ctx, req.StoreID, products)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"blockIndex":    block.Index,
		"transactionId": block.Transaction.TxID,
		"total":         block.Transaction.Total,
	})
}

func (h *LedgerHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, h.ledgerSvc.Status())
}

func (h *LedgerHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	storeID := r.URL.Query().Get("storeId")
	writeJSON(w, http.StatusOK, h.ledgerSvc.Summary(storeID))
}

func (h *LedgerHandler) GetRecentSales(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	ctx := r.Context()
	var records []models.SaleRecord
	var err error
	if storeID := r.URL.Query().Get("storeId"); storeID != "" {
		records, err = h.ledgerSvc.StoreSales(ctx, storeID, limit)
	} else {
		records, err = h.ledgerSvc.RecentSales(ctx, limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get sales: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, records)
}

type ScoreHandler struct {
	scoringSvc *service.ScoringService
}

func NewScoreHandler(scoringSvc *service.ScoringService) *ScoreHandler {
	return &ScoreHandler{scoringSvc: scoringSvc}
}

func decodeScoreData(r *http.Request) (scoring.CreditScoreData, error) {
	var data scoring.CreditScoreData
	err := json.NewDecoder(r.Body).Decode(&data)
	return data, err
}

func (h *ScoreHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	data, err := decodeScoreData(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.scoringSvc.Calculate(data)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Breakdown accepts POST; GET with a body is tolerated for older clients.
func (h *ScoreHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	data, err := decodeScoreData(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	breakdown, err := h.scoringSvc.Breakdown(data)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, breakdown)
}

func (h *ScoreHandler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	data, err := decodeScoreData(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	report, err := h.scoringSvc.Report(data)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Test scores randomly generated sample data, for quick manual checks.
func (h *ScoreHandler) Test(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	data, result, err := h.scoringSvc.Sample()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to score sample data: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sample_data": data,
		"result":      result,
	})
}

type AuditHandler struct {
	auditRepo *repository.AuditRepository
}

func NewAuditHandler(auditRepo *repository.AuditRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

func (h *AuditHandler) GetAudits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx := r.Context()
	audits, err := h.auditRepo.GetRecent(ctx, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get audits: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, audits)
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
