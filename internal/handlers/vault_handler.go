package handler

import (
	"net/http"
	"strings"
	"time"

	"exchange-office-backend/internal/models"
	"exchange-office-backend/internal/repository"
	"exchange-office-backend/internal/services/rates"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VaultHandler struct {
	repo  *repository.VaultRepository
	rates *rates.Service
}

func NewVaultHandler(repo *repository.VaultRepository, rateService *rates.Service) *VaultHandler {
	return &VaultHandler{repo: repo, rates: rateService}
}

func (h *VaultHandler) List(c *gin.Context) {
	vaults, err := h.repo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rate, err := h.rates.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type vaultView struct {
		models.Vault
		TotalInAED decimal.Decimal `json:"total_in_aed"`
	}
	views := make([]vaultView, 0, len(vaults))
	for _, v := range vaults {
		total := v.BalanceAED
		if rate.BuyRate.IsPositive() {
			total = total.Add(v.BalanceSDG.Div(rate.BuyRate))
		}
		views = append(views, vaultView{Vault: v, TotalInAED: total})
	}
	c.JSON(http.StatusOK, gin.H{"vaults": views})
}

func (h *VaultHandler) Create(c *gin.Context) {
	var payload struct {
		Name              string          `json:"name"`
		Description       string          `json:"description"`
		InitialBalanceSDG decimal.Decimal `json:"initial_balance_sdg"`
		InitialBalanceAED decimal.Decimal `json:"initial_balance_aed"`
		IsMainVault       bool            `json:"is_main_vault"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vault name is required"})
		return
	}

	vault := &models.Vault{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(payload.Name),
		Description:       strings.TrimSpace(payload.Description),
		BalanceSDG:        payload.InitialBalanceSDG,
		BalanceAED:        payload.InitialBalanceAED,
		InitialBalanceSDG: payload.InitialBalanceSDG,
		InitialBalanceAED: payload.InitialBalanceAED,
		IsMainVault:       payload.IsMainVault,
		CreatedAt:         time.Now(),
	}
	if err := h.repo.Create(vault); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vault": vault})
}
