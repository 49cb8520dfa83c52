package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AuditRepository struct {
	DB *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Create(entry *model.AuditLog) error {
	return r.DB.Create(entry).Error
}

func (r *AuditRepository) List(orgID *uint, page, limit int) ([]model.AuditLog, int64, error) {
	query := r.DB.Model(&model.AuditLog{})
	if orgID != nil {
		query = query.Where("organization_id = ?", *orgID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.AuditLog
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&entries).Error
	return entries, total, err
}
