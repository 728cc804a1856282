package handlers

import (
	"io"
	"net/http"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/scheduler"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/store"
	"github.com/gin-gonic/gin"
)

// ValidateInput checks a raw date configuration without storing it
func (h *Handler) ValidateInput(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}

	date := c.Query("date")
	cfg, err := store.DecodeConfig(date, body)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":        true,
		"requirements": scheduler.Aggregate(cfg.Rooms),
	})
}

// Requirements totals the staff a room selection needs and checks it
// against the current pool
func (h *Handler) Requirements(c *gin.Context) {
	var req struct {
		Rooms []models.RoomRequirement `json:"rooms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staff, err := h.Repo.LoadStaff(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	need := scheduler.Aggregate(req.Rooms)
	stats := scheduler.CountStaff(staff, h.Exclusions.Snapshot())

	c.JSON(http.StatusOK, gin.H{
		"requirements": need,
		"stats":        stats,
		"feasible":     stats.Feasible(need),
	})
}
