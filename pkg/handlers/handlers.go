package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/database"
	allocerrors "github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/errors"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/importer"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/scheduler"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/store"
	"github.com/gin-gonic/gin"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	Repo           *database.Repository
	Configs        *store.ConfigStore
	Exclusions     *store.ExclusionSet
	Scheduler      *scheduler.Scheduler
	Logger         *slog.Logger
	ExcludeSundays bool
	DefaultDept    string

	allotMu sync.Mutex
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return h.Logger
}

// fail maps core errors onto HTTP status codes.
func (h *Handler) fail(c *gin.Context, err error) {
	var validationErr *allocerrors.ValidationError
	var schemaErr *allocerrors.InputSchemaError
	var storageErr *allocerrors.StorageError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &schemaErr):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, allocerrors.ErrHallNotFound), errors.Is(err, allocerrors.ErrRoomNotFound):
		status = http.StatusNotFound
	case errors.Is(err, allocerrors.ErrHallExists), errors.Is(err, allocerrors.ErrRoomExists):
		status = http.StatusConflict
	case errors.Is(err, allocerrors.ErrEmptyName), errors.Is(err, allocerrors.ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.As(err, &storageErr):
		h.logger().Error("storage failure", "path", c.FullPath(), "op", storageErr.Op, "key", storageErr.Key, "error", storageErr.Err)
	default:
		h.logger().Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// ListStaff returns the staff directory with live availability counts
func (h *Handler) ListStaff(c *gin.Context) {
	staff, err := h.Repo.LoadStaff(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	excluded := h.Exclusions.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"staff":    staff,
		"stats":    scheduler.CountStaff(staff, excluded),
		"excluded": h.Exclusions.Names(),
	})
}

// UploadStaffCSV replaces the staff directory with an uploaded sheet
func (h *Handler) UploadStaffCSV(c *gin.Context) {
	fileHeader, _ := c.FormFile("staff_file")
	if fileHeader == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "staff_file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open staff file"})
		return
	}
	defer f.Close()

	dept := strings.TrimSpace(c.PostForm("department"))
	if dept == "" {
		dept = h.DefaultDept
	}

	staff, skipped, err := importer.ParseStaffCSV(f, dept)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "skipped": rowErrors(skipped)})
		return
	}
	if err := h.Repo.ReplaceStaff(c.Request.Context(), staff); err != nil {
		h.fail(c, err)
		return
	}

	h.logger().Info("staff directory replaced", "imported", len(staff), "skipped", len(skipped))
	c.JSON(http.StatusOK, gin.H{
		"imported": len(staff),
		"skipped":  rowErrors(skipped),
	})
}

func rowErrors(rows []importer.RowError) []gin.H {
	out := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		out = append(out, gin.H{"line": r.Line, "name": r.Name, "error": r.Err.Error()})
	}
	return out
}

// ListExclusions returns the staff names withheld from allocation
func (h *Handler) ListExclusions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"excluded": h.Exclusions.Names()})
}

// ToggleExclusion removes a staff member from allocation or restores them
func (h *Handler) ToggleExclusion(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	excluded, err := h.Exclusions.Toggle(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": strings.TrimSpace(req.Name), "excluded": excluded})
}

// ListDates returns every configured exam date
func (h *Handler) ListDates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dates": h.Configs.ListDates()})
}

// ClearDates drops every date configuration
func (h *Handler) ClearDates(c *gin.Context) {
	if err := h.Configs.Clear(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Configurations cleared"})
}

// CreateDateRange replaces the configured dates with every exam day between start and end
func (h *Handler) CreateDateRange(c *gin.Context) {
	var req struct {
		Start string `json:"start" binding:"required"`
		End   string `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dates, err := models.ExamDates(req.Start, req.End, h.ExcludeSundays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(dates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no exam dates in range"})
		return
	}
	if err := h.Configs.Reset(c.Request.Context(), dates); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// ConfigureDates applies one room selection to several dates
func (h *Handler) ConfigureDates(c *gin.Context) {
	var req struct {
		Dates []string                 `json:"dates"`
		Rooms []models.RoomRequirement `json:"rooms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Dates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one date is required"})
		return
	}
	if len(req.Rooms) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No classes configured"})
		return
	}
	for _, date := range req.Dates {
		if _, err := models.ParseDate(date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := store.Validate(date, models.DateConfig{Rooms: req.Rooms}); err != nil {
			h.fail(c, err)
			return
		}
	}

	if err := h.Configs.Configure(c.Request.Context(), req.Dates, req.Rooms); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"dates":        req.Dates,
		"requirements": scheduler.Aggregate(req.Rooms),
	})
}

// GetDateConfig returns one date's configuration, or the default shape
func (h *Handler) GetDateConfig(c *gin.Context) {
	date := c.Param("date")
	if _, err := models.ParseDate(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := h.Configs.Get(date)
	c.JSON(http.StatusOK, gin.H{
		"date":         date,
		"config":       cfg,
		"requirements": scheduler.Aggregate(cfg.Rooms),
	})
}

// SetDateConfig overwrites one date's configuration with the request body
func (h *Handler) SetDateConfig(c *gin.Context) {
	date := c.Param("date")
	if _, err := models.ParseDate(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg, err := store.DecodeConfig(date, body)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.Configs.Set(c.Request.Context(), date, cfg); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "config": h.Configs.Get(date)})
}

// Allot runs the allocation engine for every configured date and stores the result
func (h *Handler) Allot(c *gin.Context) {
	h.allotMu.Lock()
	defer h.allotMu.Unlock()

	ctx := c.Request.Context()
	configs := h.Configs.Snapshot()
	if len(configs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No dates selected"})
		return
	}

	staff, err := h.Repo.LoadStaff(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	pool := scheduler.FilterExcluded(staff, h.Exclusions.Snapshot())

	allotment, shortfalls, err := h.Scheduler.AllocateAll(pool, configs)
	if err != nil {
		h.fail(c, err)
		return
	}
	if shortfalls == nil {
		shortfalls = []models.Shortfall{}
	}

	dryRun := c.Query("dry_run") == "true"
	if !dryRun {
		if err := h.Repo.SaveAllotment(ctx, allotment); err != nil {
			h.fail(c, err)
			return
		}
		h.RecordRun(c, allotment, shortfalls)
	}

	h.logger().Info("allotment generated", "dates", len(allotment), "pool", len(pool), "short_rooms", len(shortfalls), "dry_run", dryRun)
	c.JSON(http.StatusOK, gin.H{
		"allotment":  allotment,
		"shortfalls": shortfalls,
		"saved":      !dryRun,
	})
}

// GetAllotment returns the last saved allotment
func (h *Handler) GetAllotment(c *gin.Context) {
	allotment, err := h.Repo.LoadAllotment(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"allotment": allotment})
}
