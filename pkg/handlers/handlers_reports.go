package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/report"
	"github.com/gin-gonic/gin"
)

// RosterReport renders the duty list for one allotted date
func (h *Handler) RosterReport(c *gin.Context) {
	date := c.Param("date")
	allotment, err := h.Repo.LoadAllotment(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	assignments, ok := allotment[date]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no allotment for " + date})
		return
	}

	roster := report.BuildRoster(date, h.Configs.Get(date).Settings, assignments)
	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, roster)
	case "text":
		c.String(http.StatusOK, roster.Text())
	case "csv":
		var buf bytes.Buffer
		if err := roster.WriteCSV(&buf); err != nil {
			h.fail(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=duty_list_%s.csv", date))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json, text or csv"})
	}
}

// DepartmentReport renders every department's duty grid across the allotted dates
func (h *Handler) DepartmentReport(c *gin.Context) {
	ctx := c.Request.Context()
	allotment, err := h.Repo.LoadAllotment(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	staff, err := h.Repo.LoadStaff(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	grids := report.BuildDepartmentGrids(staff, allotment)
	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, gin.H{"departments": grids})
	case "text":
		var buf bytes.Buffer
		for _, g := range grids {
			buf.WriteString(g.Text())
			buf.WriteByte('\n')
		}
		c.String(http.StatusOK, buf.String())
	case "csv":
		var buf bytes.Buffer
		for i, g := range grids {
			if err := g.WriteCSV(&buf, i == 0); err != nil {
				h.fail(c, err)
				return
			}
		}
		c.Header("Content-Disposition", "attachment; filename=staff_duty_report.csv")
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json, text or csv"})
	}
}
