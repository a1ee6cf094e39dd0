package repository

import (
	"strings"

	"exchange-office-backend/internal/models"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Order("created_at ASC").Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) GetByID(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// Search filters customers by a case-insensitive name fragment.
func (r *CustomerRepository) Search(query string) ([]models.Customer, error) {
	var customers []models.Customer
	likeName := "%" + strings.ToLower(query) + "%"
	err := r.db.Where("LOWER(name) LIKE ?", likeName).Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}
