package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"gopower/domain/core"
	"gopower/domain/power"
	apperrors "gopower/internal/errors"
	"gopower/ports"
)

// SweepRepositoryImpl implements SweepRepository for PostgreSQL
type SweepRepositoryImpl struct {
	db *sqlx.DB
}

// NewSweepRepository creates a new PostgreSQL sweep repository
func NewSweepRepository(db *sqlx.DB) ports.SweepRepository {
	return &SweepRepositoryImpl{db: db}
}

type sweepRow struct {
	ID          string    `db:"id"`
	SamplerName string    `db:"sampler_name"`
	RuleName    string    `db:"rule_name"`
	NumTrials   int       `db:"num_trials"`
	Seed        int64     `db:"seed"`
	Estimates   []byte    `db:"estimates"`
	RuntimeMs   int64     `db:"runtime_ms"`
	CreatedAt   time.Time `db:"created_at"`
}

// SaveSweep upserts one sweep result; estimates are stored as JSONB in their
// original order
func (r *SweepRepositoryImpl) SaveSweep(ctx context.Context, result *power.SweepResult) error {
	if result.SweepID == "" {
		return core.NewInvalidArgumentError("sweep_id", "cannot persist a sweep without an ID")
	}

	estimatesJSON, err := json.Marshal(result.Estimates)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode sweep estimates")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sweeps (id, sampler_name, rule_name, num_trials, seed, estimates, runtime_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			sampler_name = EXCLUDED.sampler_name,
			rule_name = EXCLUDED.rule_name,
			num_trials = EXCLUDED.num_trials,
			seed = EXCLUDED.seed,
			estimates = EXCLUDED.estimates,
			runtime_ms = EXCLUDED.runtime_ms`,
		result.SweepID.String(), result.SamplerName, result.RuleName,
		result.NumTrials, result.Seed, estimatesJSON, result.RuntimeMs,
		result.CreatedAt.Time())
	if err != nil {
		return apperrors.Wrap(err, "failed to save sweep")
	}
	return nil
}

// GetSweep retrieves a stored sweep by ID
func (r *SweepRepositoryImpl) GetSweep(ctx context.Context, id core.SweepID) (*power.SweepResult, error) {
	var row sweepRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, sampler_name, rule_name, num_trials, seed, estimates, runtime_ms, created_at
		FROM sweeps WHERE id = $1`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrSweepNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load sweep")
	}
	return rowToResult(&row)
}

// ListSweeps returns all stored sweeps, newest first
func (r *SweepRepositoryImpl) ListSweeps(ctx context.Context) ([]*power.SweepResult, error) {
	var rows []sweepRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, sampler_name, rule_name, num_trials, seed, estimates, runtime_ms, created_at
		FROM sweeps ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list sweeps")
	}

	results := make([]*power.SweepResult, 0, len(rows))
	for i := range rows {
		result, err := rowToResult(&rows[i])
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func rowToResult(row *sweepRow) (*power.SweepResult, error) {
	var estimates []power.PowerEstimate
	if err := json.Unmarshal(row.Estimates, &estimates); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode sweep estimates")
	}
	return &power.SweepResult{
		SweepID:     core.SweepID(row.ID),
		SamplerName: row.SamplerName,
		RuleName:    row.RuleName,
		NumTrials:   row.NumTrials,
		Seed:        row.Seed,
		Estimates:   estimates,
		RuntimeMs:   row.RuntimeMs,
		CreatedAt:   core.NewTimestamp(row.CreatedAt),
	}, nil
}
