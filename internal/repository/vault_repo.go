package repository

import (
	"exchange-office-backend/internal/models"

	"gorm.io/gorm"
)

type VaultRepository struct {
	db *gorm.DB
}

func NewVaultRepository(db *gorm.DB) *VaultRepository {
	return &VaultRepository{db: db}
}

func (r *VaultRepository) GetAll() ([]models.Vault, error) {
	var vaults []models.Vault
	err := r.db.Order("created_at ASC").Find(&vaults).Error
	return vaults, err
}

func (r *VaultRepository) GetByID(id string) (*models.Vault, error) {
	var vault models.Vault
	if err := r.db.First(&vault, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vault, nil
}

// GetMain returns the vault flagged as the main vault.
func (r *VaultRepository) GetMain() (*models.Vault, error) {
	var vault models.Vault
	if err := r.db.First(&vault, "is_main_vault = ?", true).Error; err != nil {
		return nil, err
	}
	return &vault, nil
}

// Create inserts a vault. When the new vault is flagged as main, the
// previous main vault is demoted in the same transaction so the flag stays
// unique.
func (r *VaultRepository) Create(vault *models.Vault) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if vault.IsMainVault {
			if err := tx.Model(&models.Vault{}).
				Where("is_main_vault = ?", true).
				Update("is_main_vault", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(vault).Error
	})
}
