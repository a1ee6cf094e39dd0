// Package seed creates the records the system cannot run without: an
// admin user, a main vault and an initial rate quote. Each is only created
// when its table is empty, so Run doubles as the "reset defaults" action.
package seed

import (
	"time"

	"exchange-office-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	DefaultBuyRate  = decimal.NewFromInt(200)
	DefaultSellRate = decimal.NewFromInt(202)
)

func Run(db *gorm.DB) error {
	admin, err := defaultAdmin(db)
	if err != nil {
		return err
	}

	var vaultCount int64
	if err := db.Model(&models.Vault{}).Count(&vaultCount).Error; err != nil {
		return err
	}
	if vaultCount == 0 {
		vault := &models.Vault{
			ID:          uuid.New(),
			Name:        "Main Vault",
			Description: "Primary cash vault of the exchange office",
			IsMainVault: true,
			CreatedAt:   time.Now(),
		}
		if err := db.Create(vault).Error; err != nil {
			return err
		}
	}

	var rateCount int64
	if err := db.Model(&models.ExchangeRate{}).Count(&rateCount).Error; err != nil {
		return err
	}
	if rateCount == 0 {
		rate := &models.ExchangeRate{
			ID:        uuid.New(),
			BuyRate:   DefaultBuyRate,
			SellRate:  DefaultSellRate,
			UpdatedAt: time.Now(),
			UpdatedBy: admin.ID,
		}
		if err := db.Create(rate).Error; err != nil {
			return err
		}
	}
	return nil
}

// Wipe deletes every collection and reseeds the defaults. There is no way
// back from this.
func Wipe(db *gorm.DB) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.AuditLog{},
			&models.Transaction{},
			&models.ExchangeRate{},
			&models.Customer{},
			&models.Vault{},
			&models.Session{},
			&models.User{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return Run(db)
}

func defaultAdmin(db *gorm.DB) (*models.User, error) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		var admin models.User
		if err := db.Order("created_at ASC").First(&admin).Error; err != nil {
			return nil, err
		}
		return &admin, nil
	}

	admin := &models.User{
		ID:        uuid.New(),
		Username:  "admin",
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := db.Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}
