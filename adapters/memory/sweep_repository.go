package memory

import (
	"context"
	"sort"
	"sync"

	"gopower/domain/core"
	"gopower/domain/power"
	"gopower/ports"
)

// SweepRepository is an in-memory sweep store. It backs tests and the
// database-less server mode.
type SweepRepository struct {
	mu     sync.RWMutex
	sweeps map[core.SweepID]*power.SweepResult
}

// NewSweepRepository creates an empty in-memory sweep repository
func NewSweepRepository() *SweepRepository {
	return &SweepRepository{
		sweeps: make(map[core.SweepID]*power.SweepResult),
	}
}

// SaveSweep stores a copy of the result keyed by its sweep ID
func (r *SweepRepository) SaveSweep(ctx context.Context, result *power.SweepResult) error {
	if result.SweepID == "" {
		return core.NewInvalidArgumentError("sweep_id", "cannot persist a sweep without an ID")
	}

	stored := *result
	stored.Estimates = make([]power.PowerEstimate, len(result.Estimates))
	copy(stored.Estimates, result.Estimates)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweeps[result.SweepID] = &stored
	return nil
}

// GetSweep retrieves a stored sweep by ID
func (r *SweepRepository) GetSweep(ctx context.Context, id core.SweepID) (*power.SweepResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result, ok := r.sweeps[id]
	if !ok {
		return nil, core.ErrSweepNotFound
	}
	return result, nil
}

// ListSweeps returns all stored sweeps, newest first
func (r *SweepRepository) ListSweeps(ctx context.Context) ([]*power.SweepResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]*power.SweepResult, 0, len(r.sweeps))
	for _, result := range r.sweeps {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[j].CreatedAt.Before(results[i].CreatedAt)
	})
	return results, nil
}

var _ ports.SweepRepository = (*SweepRepository)(nil)
