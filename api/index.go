package handler

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/internal/app"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/internal/config"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/handlers"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/scheduler"
	"github.com/gin-gonic/gin"
)

var r *gin.Engine

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	// Load .env if it exists (for local testing with vercel dev)
	config.LoadDotEnv()
	cfg, err := config.Load("")
	if err != nil {
		logger.Error("could not load config", "error", err)
		def := config.Default()
		cfg = &def
	}

	gin.SetMode(gin.ReleaseMode)
	a, err := app.Open(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("could not open storage", "error", err)
		r = gin.New()
		r.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		})
		return
	}

	r = handlers.NewRouter(a.Handler(scheduler.NewScheduler(nil)), cfg.MetricsEnabled)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, r_req *http.Request) {
	r.ServeHTTP(w, r_req)
}
