package app

import (
	"context"
	"time"

	"gopower/domain/core"
	"gopower/domain/power"
	"gopower/internal"
	"gopower/internal/analytic"
	"gopower/internal/estimator"
	"gopower/ports"
)

// SweepService runs power sweeps and attaches the closed-form cross-check and
// persistence the raw estimator deliberately stays ignorant of.
type SweepService struct {
	estimator *estimator.Estimator
	repo      ports.SweepRepository
	logger    *internal.Logger
}

// SweepRequest defines the inputs for one deterministic power sweep
type SweepRequest struct {
	Sampler   power.Sampler
	Rule      power.DecisionRule
	Scenarios []power.Scenario
	NumTrials int
	Seed      int64
	Alpha     float64      // used only for the analytic overlay
	SweepID   core.SweepID // optional, generated when empty
}

// NewSweepService creates a sweep service. The repository may be nil, in
// which case results are returned but not persisted.
func NewSweepService(est *estimator.Estimator, repo ports.SweepRepository, logger *internal.Logger) *SweepService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SweepService{
		estimator: est,
		repo:      repo,
		logger:    logger,
	}
}

// RunSweep executes the sweep, overlays closed-form power where a scenario
// has one, and persists the result
func (s *SweepService) RunSweep(ctx context.Context, req SweepRequest) (*power.SweepResult, error) {
	startTime := time.Now()

	sweepID := req.SweepID
	if sweepID == "" {
		sweepID = core.SweepID(core.NewID())
	}
	alpha := req.Alpha
	if alpha <= 0 || alpha >= 1 {
		alpha = 0.05
	}

	s.logger.Info("sweep %s: %d scenarios x %d trials (sampler=%s rule=%s seed=%d)",
		sweepID, len(req.Scenarios), req.NumTrials, req.Sampler.Name(), req.Rule.Name(), req.Seed)

	estimates, err := s.estimator.Sweep(ctx, req.Sampler, req.Rule, req.Scenarios, req.NumTrials, req.Seed)
	if err != nil {
		s.logger.Error("sweep %s failed: %v", sweepID, err)
		return nil, err
	}

	for i, scenario := range req.Scenarios {
		if approx, ok := analyticPower(scenario, alpha); ok {
			estimates[i].AnalyticPower = &approx
		}
	}

	result := &power.SweepResult{
		SweepID:     sweepID,
		SamplerName: req.Sampler.Name(),
		RuleName:    req.Rule.Name(),
		NumTrials:   req.NumTrials,
		Seed:        req.Seed,
		Estimates:   estimates,
		RuntimeMs:   time.Since(startTime).Milliseconds(),
		CreatedAt:   core.Now(),
	}

	if s.repo != nil {
		if err := s.repo.SaveSweep(ctx, result); err != nil {
			s.logger.Error("sweep %s: persistence failed: %v", sweepID, err)
			return nil, err
		}
	}

	s.logger.Info("sweep %s finished in %dms", sweepID, result.RuntimeMs)
	return result, nil
}

// analyticPower returns the closed-form approximation for scenario kinds that
// have one
func analyticPower(scenario power.Scenario, alpha float64) (float64, bool) {
	switch sc := scenario.(type) {
	case power.TwoSampleScenario:
		return analytic.TwoSampleMeanPower(sc.MeanA, sc.MeanB, sc.StdDevA, sc.StdDevB, sc.SampleSize, alpha), true
	case power.TwoProportionScenario:
		return analytic.TwoProportionPower(sc.ProbA, sc.ProbB, sc.SampleSize, alpha), true
	default:
		return 0, false
	}
}
