package repository

import (
	"context"
	"errors"

	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, audit *models.ChainAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

func (r *AuditRepository) GetRecent(ctx context.Context, limit int) ([]models.ChainAudit, error) {
	var audits []models.ChainAudit
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&audits).Error
	return audits, err
}

// GetLast returns the most recent audit, or nil when none exist yet.
func (r *AuditRepository) GetLast(ctx context.Context) (*models.ChainAudit, error) {
	var audit models.ChainAudit
	err := r.db.WithContext(ctx).
		Order("id DESC").
		First(&audit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &audit, nil
}
