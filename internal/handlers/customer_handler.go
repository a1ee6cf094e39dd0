package handler

import (
	"net/http"
	"strings"
	"time"

	"exchange-office-backend/internal/models"
	"exchange-office-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerHandler struct {
	repo *repository.CustomerRepository
}

func NewCustomerHandler(repo *repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{repo: repo}
}

func (h *CustomerHandler) List(c *gin.Context) {
	var (
		customers []models.Customer
		err       error
	)
	if query := c.Query("q"); query != "" {
		customers, err = h.repo.Search(query)
	} else {
		customers, err = h.repo.GetAll()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var payload struct {
		Name            string          `json:"name"`
		AccountNumber   string          `json:"account_number"`
		Phone           string          `json:"phone"`
		Email           string          `json:"email"`
		BalanceSDG      decimal.Decimal `json:"balance_sdg"`
		BalanceAED      decimal.Decimal `json:"balance_aed"`
		IsRecurring     bool            `json:"is_recurring"`
		HasBanakAccount bool            `json:"has_banak_account"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer name is required"})
		return
	}

	customer := &models.Customer{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(payload.Name),
		AccountNumber:   strings.TrimSpace(payload.AccountNumber),
		Phone:           strings.TrimSpace(payload.Phone),
		Email:           strings.TrimSpace(payload.Email),
		BalanceSDG:      payload.BalanceSDG,
		BalanceAED:      payload.BalanceAED,
		IsRecurring:     payload.IsRecurring,
		HasBanakAccount: payload.HasBanakAccount,
		CreatedAt:       time.Now(),
	}
	if err := h.repo.Create(customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}
