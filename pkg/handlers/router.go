package handlers

import (
	"net/http"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is reported on the root route.
const Version = "1.0.0"

// NewRouter mounts every route on a fresh gin engine.
func NewRouter(h *Handler, metricsEnabled bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Exam Staff Allotment API",
			"version": Version,
		})
	})
	if metricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	{
		api.GET("/staff", h.ListStaff)
		api.POST("/staff/csv", h.UploadStaffCSV)

		api.GET("/exclusions", h.ListExclusions)
		api.POST("/exclusions/toggle", h.ToggleExclusion)

		api.GET("/dates", h.ListDates)
		api.DELETE("/dates", h.ClearDates)
		api.GET("/dates/:date", h.GetDateConfig)
		api.PUT("/dates/:date", h.SetDateConfig)
		api.POST("/date-range", h.CreateDateRange)
		api.PUT("/configure", h.ConfigureDates)

		api.POST("/validate", h.ValidateInput)
		api.POST("/requirements", h.Requirements)

		api.POST("/allot", h.Allot)
		api.GET("/allotment", h.GetAllotment)
		api.GET("/runs", h.GetRuns)

		api.GET("/reports/roster/:date", h.RosterReport)
		api.GET("/reports/departments", h.DepartmentReport)

		api.GET("/halls", h.ListHalls)
		api.POST("/halls", h.AddHall)
		api.DELETE("/halls/:hall", h.DeleteHall)
		api.POST("/halls/:hall/rooms", h.AddRoom)
		api.DELETE("/halls/:hall/rooms/:room", h.DeleteRoom)
	}

	return r
}
