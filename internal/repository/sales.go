package repository

import (
	"context"

	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/models"

	"gorm.io/gorm"
)

type SalesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

func (r *SalesRepository) Create(ctx context.Context, record *models.SaleRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetRecent returns the newest archived sales, newest first.
func (r *SalesRepository) GetRecent(ctx context.Context, limit int) ([]models.SaleRecord, error) {
	var records []models.SaleRecord
	err := r.db.WithContext(ctx).
		Order("block_index DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *SalesRepository) GetByStore(ctx context.Context, storeID string, limit int) ([]models.SaleRecord, error) {
	var records []models.SaleRecord
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("block_index DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *SalesRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SaleRecord{}).
		Count(&count).Error
	return count, err
}

// RevenueByStore sums archived revenue per store.
func (r *SalesRepository) RevenueByStore(ctx context.Context) (map[string]float64, error) {
	var rows []struct {
		StoreID string
		Revenue float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.SaleRecord{}).
		Select("store_id, SUM(total) AS revenue").
		Group("store_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	revenue := make(map[string]float64, len(rows))
	for _, row := range rows {
		revenue[row.StoreID] = row.Revenue
	}
	return revenue, nil
}
