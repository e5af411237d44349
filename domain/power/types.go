package power

import (
	"math/rand"

	"gopower/domain/core"
)

// Sample is one synthetic dataset drawn for a single trial. For two-group
// scenarios X and Y hold the two groups; for regression scenarios X holds the
// predictor and Y the response.
type Sample struct {
	X []float64
	Y []float64
}

// Sampler produces one synthetic dataset per trial from a scenario's
// data-generating parameters. Draw must be a pure function of the scenario and
// the supplied generator so trials are independent and reproducible.
type Sampler interface {
	Name() string
	Draw(scenario Scenario, rng *rand.Rand) (Sample, error)
}

// Decision is the typed outcome of applying a decision rule to one sample.
// Rejected reflects the rule's fixed-threshold convention; the raw statistic
// and p-value are kept for diagnostics.
type Decision struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	Rejected  bool    `json:"rejected"`
}

// DecisionRule applies a fixed significance threshold to one sample and
// reports whether the null hypothesis is rejected. Each implementation
// documents its tie convention; ties at the threshold never reject.
type DecisionRule interface {
	Name() string
	Decide(sample Sample) (Decision, error)
}

// Trial is one synthetic draw plus the decision computed from it. Trials are
// ephemeral: the estimator consumes them within a single aggregation pass and
// retains only the aggregate.
type Trial struct {
	Index    int
	Decision Decision
}

// PowerEstimate aggregates trials for a fixed scenario: the fraction of
// trials in which the decision rule rejected the null hypothesis.
// INVARIANTS:
// - Power always in [0.0, 1.0]
// - NumTrials always present and >= 1
// - Rejections == round(Power * NumTrials)
type PowerEstimate struct {
	ScenarioKey core.ScenarioKey `json:"scenario_key"`
	Param       float64          `json:"param"`
	NumTrials   int              `json:"num_trials"`
	Rejections  int              `json:"rejections"`
	Power       float64          `json:"power"`

	// AnalyticPower carries the closed-form approximation for scenarios that
	// have one. Nil when no closed form applies.
	AnalyticPower *float64 `json:"analytic_power,omitempty"`

	Diagnostics TrialDiagnostics `json:"diagnostics"`
}

// TrialDiagnostics summarizes the trial-level statistics that are otherwise
// discarded after aggregation.
type TrialDiagnostics struct {
	MeanStatistic float64 `json:"mean_statistic"`
	MeanPValue    float64 `json:"mean_p_value"`
	StatisticP05  float64 `json:"statistic_p05"`
	StatisticP95  float64 `json:"statistic_p95"`
}

// SweepResult is the complete, ordered output of one sweep call. Estimate
// order matches scenario input order regardless of internal parallelism.
type SweepResult struct {
	SweepID     core.SweepID    `json:"sweep_id"`
	SamplerName string          `json:"sampler_name"`
	RuleName    string          `json:"rule_name"`
	NumTrials   int             `json:"num_trials"`
	Seed        int64           `json:"seed"`
	Estimates   []PowerEstimate `json:"estimates"`
	RuntimeMs   int64           `json:"runtime_ms"`
	CreatedAt   core.Timestamp  `json:"created_at"`
}
