package repository

import (
	"exchange-office-backend/internal/models"

	"gorm.io/gorm"
)

type RateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) *RateRepository {
	return &RateRepository{db: db}
}

// Current returns the newest rate row. gorm.ErrRecordNotFound when the
// history is empty.
func (r *RateRepository) Current() (*models.ExchangeRate, error) {
	var rate models.ExchangeRate
	if err := r.db.Order("updated_at DESC").First(&rate).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *RateRepository) History() ([]models.ExchangeRate, error) {
	var rates []models.ExchangeRate
	err := r.db.Order("updated_at DESC").Find(&rates).Error
	return rates, err
}

// Create appends a new rate row. History rows are never edited or deleted.
func (r *RateRepository) Create(rate *models.ExchangeRate) error {
	return r.db.Create(rate).Error
}
