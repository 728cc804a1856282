package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListHalls returns the hall catalog
func (h *Handler) ListHalls(c *gin.Context) {
	halls, err := h.Repo.ListHalls(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"halls": halls})
}

// AddHall creates an empty hall
func (h *Handler) AddHall(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Repo.AddHall(c.Request.Context(), req.Name); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Hall added", "name": req.Name})
}

// DeleteHall removes a hall and its rooms
func (h *Handler) DeleteHall(c *gin.Context) {
	if err := h.Repo.DeleteHall(c.Request.Context(), c.Param("hall")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hall deleted"})
}

// AddRoom adds a room to a hall, creating the hall when missing
func (h *Handler) AddRoom(c *gin.Context) {
	var req struct {
		RoomNo string `json:"room_no"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Repo.AddRoom(c.Request.Context(), c.Param("hall"), req.RoomNo); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Room added", "room_no": req.RoomNo})
}

// DeleteRoom removes one room from a hall
func (h *Handler) DeleteRoom(c *gin.Context) {
	if err := h.Repo.DeleteRoom(c.Request.Context(), c.Param("hall"), c.Param("room")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}
