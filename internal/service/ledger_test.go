package service

import (
	"context"
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
	"github.com/Aayush-D-C/Syntax-HackForBusiness/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", "text", "stderr"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newLedgerService(t *testing.T) *LedgerService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SaleRecord{}))

	return NewLedgerService(ledger.NewChain(1), repository.NewSalesRepository(db))
}

func TestRecordSaleArchivesEveryBlock(t *testing.T) {
	svc := newLedgerService(t)
	ctx := context.Background()

	products := []ledger.Product{
		{Barcode: "111111111111", Name: "Rice 5kg", Price: 850, Category: "Grocery"},
	}

	const sales = 5
	for i := 0; i < sales; i++ {
		block, err := svc.RecordSale(ctx, "store-1", products)
		require.NoError(t, err)
		assert.Equal(t, i+1, block.Index)
	}

	records, err := svc.RecentSales(ctx, sales+1)
	require.NoError(t, err)
	require.Len(t, records, sales)

	assert.Equal(t, sales, records[0].BlockIndex)
	assert.Equal(t, "store-1", records[0].StoreID)
	assert.InDelta(t, 850, records[0].Total, 1e-9)
	assert.Equal(t, 1, records[0].ItemCount)

	assert.True(t, svc.Validate().Valid)
	assert.Equal(t, sales+1, svc.Status().TotalBlocks)
}

func TestRecordSaleRejectsBadInputWithoutArchiving(t *testing.T) {
	svc := newLedgerService(t)
	ctx := context.Background()

	_, err := svc.RecordSale(ctx, "", nil)
	require.Error(t, err)

	records, err := svc.RecentSales(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSummaryMatchesRecordedSales(t *testing.T) {
	svc := newLedgerService(t)
	ctx := context.Background()

	_, err := svc.RecordSale(ctx, "store-a", []ledger.Product{{Name: "Tea", Price: 150}})
	require.NoError(t, err)
	_, err = svc.RecordSale(ctx, "store-b", []ledger.Product{
		{Name: "Rice", Price: 850},
		{Name: "Oil", Price: 420},
	})
	require.NoError(t, err)

	summary := svc.Summary("")
	assert.Equal(t, 3, summary.TotalSales)
	assert.Equal(t, 2, summary.Transactions)
	assert.InDelta(t, 1420, summary.TotalRevenue, 1e-9)
}
