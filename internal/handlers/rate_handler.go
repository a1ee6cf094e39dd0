package handler

import (
	"net/http"

	"exchange-office-backend/internal/services/rates"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RateHandler struct {
	service *rates.Service
}

func NewRateHandler(service *rates.Service) *RateHandler {
	return &RateHandler{service: service}
}

func (h *RateHandler) Current(c *gin.Context) {
	rate, err := h.service.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rate": rate})
}

func (h *RateHandler) History(c *gin.Context) {
	history, err := h.service.History(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": history})
}

func (h *RateHandler) Update(c *gin.Context) {
	var payload struct {
		BuyRate  decimal.Decimal `json:"buy_rate"`
		SellRate decimal.Decimal `json:"sell_rate"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	rate, err := h.service.Update(c.Request.Context(), payload.BuyRate, payload.SellRate, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rate": rate})
}
