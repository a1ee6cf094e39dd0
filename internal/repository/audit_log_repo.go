package repository

import (
	"exchange-office-backend/internal/models"

	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) ListByTransaction(txID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.Where("transaction_id = ?", txID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
