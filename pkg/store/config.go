package store

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	allocerrors "github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/errors"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/metrics"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
)

// ConfigBackend persists the whole date → config map at once.
type ConfigBackend interface {
	LoadConfigs(ctx context.Context) (map[string]models.DateConfig, error)
	SaveConfigs(ctx context.Context, configs map[string]models.DateConfig) error
}

// ConfigStore keeps one DateConfig per exam date in memory and writes the
// full set through to its backend on every change.
type ConfigStore struct {
	mu      sync.Mutex
	backend ConfigBackend
	configs map[string]models.DateConfig
	logger  *slog.Logger
}

// NewConfigStore creates an empty store. Call Load to read persisted state.
func NewConfigStore(backend ConfigBackend, logger *slog.Logger) *ConfigStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ConfigStore{
		backend: backend,
		configs: make(map[string]models.DateConfig),
		logger:  logger,
	}
}

// Load replaces the in-memory state with the backend's. On failure the
// store is left empty and the error is returned for reporting.
func (s *ConfigStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	configs, err := s.backend.LoadConfigs(ctx)
	if err != nil {
		s.configs = make(map[string]models.DateConfig)
		metrics.StoreErrorsTotal.WithLabelValues("load_configs").Inc()
		s.logger.Error("loading date configurations", "error", err)
		return &allocerrors.StorageError{Op: "load", Key: "configurations", Err: err}
	}
	s.configs = make(map[string]models.DateConfig, len(configs))
	for date, cfg := range configs {
		s.configs[date] = cfg.Clone()
	}
	return nil
}

// Get returns the config for date, or the default shape when the date has
// never been set. It never modifies the store.
func (s *ConfigStore) Get(date string) models.DateConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg, ok := s.configs[date]; ok {
		return cfg.Clone()
	}
	return models.DefaultDateConfig()
}

// Set overwrites the entry for date and persists every entry. When the
// write fails the new value stays in memory and a StorageError naming the
// date is returned.
func (s *ConfigStore) Set(ctx context.Context, date string, cfg models.DateConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.Rooms == nil {
		cfg.Rooms = []models.RoomRequirement{}
	}
	s.configs[date] = cfg.Clone()
	return s.persist(ctx, "save", date)
}

// ListDates returns every configured date in chronological order.
func (s *ConfigStore) ListDates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	dates := make([]string, 0, len(s.configs))
	for date := range s.configs {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Clear drops every entry and persists the empty state.
func (s *ConfigStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.configs = make(map[string]models.DateConfig)
	return s.persist(ctx, "clear", "")
}

// Reset clears the store and creates a default entry for each date.
func (s *ConfigStore) Reset(ctx context.Context, dates []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.configs = make(map[string]models.DateConfig, len(dates))
	for _, date := range dates {
		s.configs[date] = models.DefaultDateConfig()
	}
	return s.persist(ctx, "reset", "")
}

// Configure applies the same room list to several dates. Their settings
// are reset to empty, matching what a fresh room selection does.
func (s *ConfigStore) Configure(ctx context.Context, dates []string, rooms []models.RoomRequirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, date := range dates {
		cfg := models.DateConfig{Rooms: rooms}
		if cfg.Rooms == nil {
			cfg.Rooms = []models.RoomRequirement{}
		}
		s.configs[date] = cfg.Clone()
	}
	return s.persist(ctx, "configure", "")
}

// Snapshot copies every entry for an allocation run.
func (s *ConfigStore) Snapshot() map[string]models.DateConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]models.DateConfig, len(s.configs))
	for date, cfg := range s.configs {
		out[date] = cfg.Clone()
	}
	return out
}

func (s *ConfigStore) persist(ctx context.Context, op, key string) error {
	if err := s.backend.SaveConfigs(ctx, s.configs); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(op + "_configs").Inc()
		s.logger.Error("saving date configurations", "op", op, "date", key, "error", err)
		return &allocerrors.StorageError{Op: op, Key: key, Err: err}
	}
	return nil
}
