// Package app wires configuration, storage and the stores together for the
// server, the serverless entry point and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/internal/config"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/database"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/handlers"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/scheduler"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/store"
	"gorm.io/gorm"
)

// App holds the loaded stores backed by one database.
type App struct {
	Config     *config.Config
	DB         *gorm.DB
	Repo       *database.Repository
	Configs    *store.ConfigStore
	Exclusions *store.ExclusionSet
	Logger     *slog.Logger
}

// Open connects to the database, seeds the hall catalog and loads the
// date configurations and exclusions.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := database.InitDB(database.Options{
		DatabaseURL: cfg.DatabaseURL,
		DataPath:    cfg.DataPath,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repo := database.NewRepository(db)
	if len(cfg.Halls) > 0 {
		if err := repo.SeedHalls(ctx, cfg.Halls); err != nil {
			logger.Warn("could not seed halls", "error", err)
		}
	}

	// Both stores log their own load failures and start empty.
	configs := store.NewConfigStore(repo, logger)
	_ = configs.Load(ctx)
	exclusions := store.NewExclusionSet(repo, logger)
	_ = exclusions.Load(ctx)

	return &App{
		Config:     cfg,
		DB:         db,
		Repo:       repo,
		Configs:    configs,
		Exclusions: exclusions,
		Logger:     logger,
	}, nil
}

// Handler builds the HTTP handler set around the app's stores.
func (a *App) Handler(sched *scheduler.Scheduler) *handlers.Handler {
	return &handlers.Handler{
		Repo:           a.Repo,
		Configs:        a.Configs,
		Exclusions:     a.Exclusions,
		Scheduler:      sched,
		Logger:         a.Logger,
		ExcludeSundays: a.Config.ExcludeSundays,
		DefaultDept:    a.Config.DefaultDept,
	}
}

// Close releases the database connection.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
