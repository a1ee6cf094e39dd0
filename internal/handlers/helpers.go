package handler

import (
	"errors"
	"net/http"

	"exchange-office-backend/internal/models"
	"exchange-office-backend/internal/services/auth"
	"exchange-office-backend/internal/services/rates"
	"exchange-office-backend/internal/services/settlement"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextUserKey = "currentUser"

// respondError maps service errors onto HTTP statuses. Validation problems
// are the caller's fault, workflow refusals are conflicts, shortfalls are
// unprocessable.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, settlement.ErrInvalidAmount),
		errors.Is(err, settlement.ErrInvalidCurrency),
		errors.Is(err, settlement.ErrMissingNumber),
		errors.Is(err, settlement.ErrMissingSource),
		errors.Is(err, settlement.ErrMissingDestination),
		errors.Is(err, rates.ErrInvalidRate),
		errors.Is(err, rates.ErrInvalidSpread):
		status = http.StatusBadRequest
	case errors.Is(err, settlement.ErrDuplicateTransactionNumber),
		errors.Is(err, settlement.ErrInvalidStatus):
		status = http.StatusConflict
	case errors.Is(err, settlement.ErrInsufficientFunds),
		errors.Is(err, settlement.ErrNoMainVault):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, settlement.ErrNotFound),
		errors.Is(err, settlement.ErrRecipientAccountNotFound):
		status = http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrSessionNotFound):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func actorID(c *gin.Context) uuid.UUID {
	if user := currentUser(c); user != nil {
		return user.ID
	}
	return uuid.Nil
}
