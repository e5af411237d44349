package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"gopower/internal/errors"
)

// Runner applies the database schema. Statements are idempotent so the runner
// is safe to execute on every boot.
type Runner struct{}

// NewRunner creates a migration runner
func NewRunner() *Runner {
	return &Runner{}
}

var statements = []string{
	`CREATE TABLE IF NOT EXISTS sweeps (
		id UUID PRIMARY KEY,
		sampler_name TEXT NOT NULL,
		rule_name TEXT NOT NULL,
		num_trials INT NOT NULL,
		seed BIGINT NOT NULL,
		estimates JSONB NOT NULL,
		runtime_ms BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sweeps_created_at ON sweeps (created_at DESC)`,
}

// Run executes all schema statements in order
func (r *Runner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "schema migration failed")
		}
	}
	return nil
}
