package handlers

import (
	"net/http"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
	"github.com/gin-gonic/gin"
)

// RecordRun tracks one saved allocation in the daily run statistics.
// Failures are logged and never fail the request.
func (h *Handler) RecordRun(c *gin.Context, allotment models.Allotment, shortfalls []models.Shortfall) {
	filled := 0
	for _, assignments := range allotment {
		for _, a := range assignments {
			filled += len(a.Staff)
		}
	}
	short := 0
	for _, s := range shortfalls {
		short += s.Required - s.Assigned
	}

	if err := h.Repo.RecordRun(c.Request.Context(), len(allotment), filled, short); err != nil {
		h.logger().Warn("could not record run", "error", err)
	}
}

// GetRuns returns allocation statistics for the last 30 days
func (h *Handler) GetRuns(c *gin.Context) {
	stats, err := h.Repo.RecentRuns(c.Request.Context(), 30)
	if err != nil {
		h.fail(c, err)
		return
	}

	var totalRuns, totalFilled, totalShort int64
	for _, s := range stats {
		totalRuns += int64(s.Runs)
		totalFilled += int64(s.SeatsFilled)
		totalShort += int64(s.SeatsShort)
	}

	c.JSON(http.StatusOK, gin.H{
		"run_history": stats,
		"totals": gin.H{
			"runs":         totalRuns,
			"seats_filled": totalFilled,
			"seats_short":  totalShort,
		},
	})
}
