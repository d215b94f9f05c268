package service

import (
	"context"
	"time"

	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/ledger"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/models"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/repository"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/pkg/logger"
)

// LedgerService owns the chain and mirrors every mined block into the
// durable sale archive. The chain is the source of truth; archive writes
// are best effort and never fail a sale.
type LedgerService struct {
	chain     *ledger.Chain
	salesRepo *repository.SalesRepository
}

func NewLedgerService(chain *ledger.Chain, salesRepo *repository.SalesRepository) *LedgerService {
	return &LedgerService{
		chain:     chain,
		salesRepo: salesRepo,
	}
}

// RecordSale validates the request, mines a new block onto the chain and
// archives the resulting sale record.
func (s *LedgerService) RecordSale(ctx context.Context, storeID string, products []ledger.Product) (*ledger.Block, error) {
	block, err := s.chain.AddSale(storeID, products)
	if err != nil {
		return nil, err
	}

	record := &models.SaleRecord{
		BlockIndex: block.Index,
		TxID:       block.Transaction.TxID,
		StoreID:    block.Transaction.StoreID,
		Total:      block.Transaction.Total,
		ItemCount:  len(block.Transaction.Products),
		Nonce:      block.Nonce,
		BlockHash:  block.Hash,
		SoldAt:     time.UnixMilli(block.Transaction.Timestamp),
	}
	if err := s.salesRepo.Create(ctx, record); err != nil {
		logger.Error("Failed to archive sale record:", err)
	}

	logger.WithFields(map[string]interface{}{
		"store_id":    storeID,
		"block_index": block.Index,
		"txid":        block.Transaction.TxID,
		"total":       block.Transaction.Total,
		"nonce":       block.Nonce,
	}).Info("Sale recorded on chain")

	return block, nil
}

func (s *LedgerService) Status() ledger.SnapshotData {
	return s.chain.Snapshot()
}

func (s *LedgerService) Summary(storeID string) ledger.Summary {
	return s.chain.SalesSummary(storeID)
}

func (s *LedgerService) Validate() ledger.ValidationResult {
	return s.chain.Validate()
}

func (s *LedgerService) RecentSales(ctx context.Context, limit int) ([]models.SaleRecord, error) {
	return s.salesRepo.GetRecent(ctx, limit)
}

func (s *LedgerService) StoreSales(ctx context.Context, storeID string, limit int) ([]models.SaleRecord, error) {
	return s.salesRepo.GetByStore(ctx, storeID, limit)
}
