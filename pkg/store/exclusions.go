package store

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	allocerrors "github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/errors"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/metrics"
)

// ExclusionBackend persists the excluded staff names as a flat list.
type ExclusionBackend interface {
	LoadExclusions(ctx context.Context) ([]string, error)
	SaveExclusions(ctx context.Context, names []string) error
}

// ExclusionSet holds the staff names withheld from allocation. It is
// independent of any exam date.
type ExclusionSet struct {
	mu      sync.Mutex
	backend ExclusionBackend
	names   map[string]bool
	logger  *slog.Logger
}

func NewExclusionSet(backend ExclusionBackend, logger *slog.Logger) *ExclusionSet {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ExclusionSet{backend: backend, names: make(map[string]bool), logger: logger}
}

// Load reads the persisted list. An unreadable list leaves the set empty.
func (e *ExclusionSet) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.names = make(map[string]bool)
	names, err := e.backend.LoadExclusions(ctx)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("load_exclusions").Inc()
		e.logger.Error("loading excluded staff", "error", err)
		return &allocerrors.StorageError{Op: "load", Key: "exclusions", Err: err}
	}
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			e.names[n] = true
		}
	}
	return nil
}

// Toggle flips name between excluded and available and persists the
// result. It returns whether name is excluded afterwards.
func (e *ExclusionSet) Toggle(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, &allocerrors.ValidationError{Reason: "staff name is required", Err: allocerrors.ErrEmptyName}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	excluded := !e.names[name]
	if excluded {
		e.names[name] = true
	} else {
		delete(e.names, name)
	}

	if err := e.backend.SaveExclusions(ctx, e.sorted()); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("save_exclusions").Inc()
		e.logger.Error("saving excluded staff", "name", name, "error", err)
		return excluded, &allocerrors.StorageError{Op: "save", Key: name, Err: err}
	}
	return excluded, nil
}

// Contains reports whether the trimmed name is excluded.
func (e *ExclusionSet) Contains(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.names[strings.TrimSpace(name)]
}

// Names returns the excluded names sorted.
func (e *ExclusionSet) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sorted()
}

// Snapshot copies the set for filtering an allocation pool.
func (e *ExclusionSet) Snapshot() map[string]bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]bool, len(e.names))
	for n := range e.names {
		out[n] = true
	}
	return out
}

func (e *ExclusionSet) sorted() []string {
	out := make([]string, 0, len(e.names))
	for n := range e.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
