package handler

import (
	"net/http"
	"time"

	"exchange-office-backend/internal/services/reporting"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *reporting.Service
}

func NewReportHandler(service *reporting.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (h *ReportHandler) Report(c *gin.Context) {
	start, err := parseDateParam(c.Query("start"), false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
		return
	}
	end, err := parseDateParam(c.Query("end"), true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected YYYY-MM-DD"})
		return
	}

	report, err := h.service.Report(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// parseDateParam reads an optional YYYY-MM-DD query value. End dates are
// pushed to the last instant of the day so the range is inclusive.
func parseDateParam(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
