package handler

import (
	"net/http"

	"exchange-office-backend/internal/events"
	"exchange-office-backend/internal/seed"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SettingsHandler struct {
	db  *gorm.DB
	bus *events.Bus
}

func NewSettingsHandler(db *gorm.DB, bus *events.Bus) *SettingsHandler {
	return &SettingsHandler{db: db, bus: bus}
}

// Reset recreates any missing defaults (admin user, main vault, initial
// rate) without touching existing records.
func (h *SettingsHandler) Reset(c *gin.Context) {
	if err := seed.Run(h.db); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.bus.Publish(events.Event{Type: events.DataReset})
	c.JSON(http.StatusOK, gin.H{"message": "defaults restored"})
}

// Wipe deletes everything and reseeds. The confirm flag guards against an
// accidental call.
func (h *SettingsHandler) Wipe(c *gin.Context) {
	var payload struct {
		Confirm bool `json:"confirm"`
	}
	if err := c.BindJSON(&payload); err != nil || !payload.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wipe requires confirm=true"})
		return
	}

	if err := seed.Wipe(h.db); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.bus.Publish(events.Event{Type: events.DataReset})
	c.JSON(http.StatusOK, gin.H{"message": "all data wiped, defaults restored"})
}
