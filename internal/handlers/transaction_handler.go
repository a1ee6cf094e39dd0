package handler

import (
	"net/http"

	"exchange-office-backend/internal/models"
	"exchange-office-backend/internal/repository"
	"exchange-office-backend/internal/services/settlement"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	service *settlement.Service
	repo    *repository.TransactionRepository
	audits  *repository.AuditLogRepository
}

func NewTransactionHandler(service *settlement.Service, repo *repository.TransactionRepository, audits *repository.AuditLogRepository) *TransactionHandler {
	return &TransactionHandler{service: service, repo: repo, audits: audits}
}

func (h *TransactionHandler) List(c *gin.Context) {
	txs, err := h.repo.List(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

func (h *TransactionHandler) Get(c *gin.Context) {
	tx, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}
	logs, err := h.audits.ListByTransaction(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx, "audit_log": logs})
}

// Create accepts a payload tagged by type; the fields that apply depend on
// it. Deposits and withdrawals name a vault and a currency, transfers name
// a source, a destination vault and a direction.
func (h *TransactionHandler) Create(c *gin.Context) {
	var payload struct {
		Type              models.TransactionType   `json:"type"`
		TransactionNumber string                   `json:"transaction_number"`
		Amount            decimal.Decimal          `json:"amount"`
		Currency          models.Currency          `json:"currency"`
		VaultID           *uuid.UUID               `json:"vault_id"`
		ToVaultID         *uuid.UUID               `json:"to_vault_id"`
		FromCustomerID    *uuid.UUID               `json:"from_customer_id"`
		CashCustomer      string                   `json:"cash_customer"`
		Direction         models.ExchangeDirection `json:"exchange_direction"`
		Notes             string                   `json:"notes"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	ctx := c.Request.Context()
	actor := actorID(c)

	var (
		tx  *models.Transaction
		err error
	)
	switch payload.Type {
	case models.TypeDeposit:
		tx, err = h.service.CreateDeposit(ctx, settlement.DepositInput{
			TransactionNumber: payload.TransactionNumber,
			Amount:            payload.Amount,
			Currency:          payload.Currency,
			VaultID:           derefVault(payload.VaultID),
			Notes:             payload.Notes,
		}, actor)
	case models.TypeWithdrawal:
		tx, err = h.service.CreateWithdrawal(ctx, settlement.WithdrawalInput{
			TransactionNumber: payload.TransactionNumber,
			Amount:            payload.Amount,
			Currency:          payload.Currency,
			VaultID:           derefVault(payload.VaultID),
			Notes:             payload.Notes,
		}, actor)
	case models.TypeTransfer:
		tx, err = h.service.CreateTransfer(ctx, settlement.TransferInput{
			TransactionNumber: payload.TransactionNumber,
			Amount:            payload.Amount,
			Direction:         payload.Direction,
			FromCustomerID:    payload.FromCustomerID,
			CashCustomer:      payload.CashCustomer,
			ToVaultID:         derefVault(payload.ToVaultID),
			Notes:             payload.Notes,
		}, actor)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown transaction type"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

func (h *TransactionHandler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}
	tx, err := h.service.Confirm(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction confirmed", "transaction": tx})
}

func (h *TransactionHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}
	tx, err := h.service.Approve(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction approved", "transaction": tx})
}

func (h *TransactionHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}
	tx, err := h.service.Cancel(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction cancelled", "transaction": tx})
}

func derefVault(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
