package repository

import (
	"exchange-office-backend/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// List returns transactions newest first, optionally filtered by status.
func (r *TransactionRepository) List(status string) ([]models.Transaction, error) {
	var txs []models.Transaction
	query := r.db.Order("created_at DESC")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&txs).Error
	return txs, err
}

func (r *TransactionRepository) GetByID(id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}
