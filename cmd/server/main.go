package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/internal/app"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/internal/config"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/handlers"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/scheduler"
	"github.com/gin-gonic/gin"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	config.LoadDotEnv()
	cfg, err := config.Load("")
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.Open(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("could not open storage", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	r := handlers.NewRouter(a.Handler(scheduler.NewScheduler(nil)), cfg.MetricsEnabled)

	logger.Info("server starting", "port", cfg.Port, "config", cfg.Path, "metrics", cfg.MetricsEnabled)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("could not run server", "error", err)
		os.Exit(1)
	}
}
