package estimator

import (
	"context"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"gopower/domain/core"
	"gopower/domain/power"
	"gopower/ports"
)

// Estimator runs the Monte-Carlo power estimation procedure: repeated
// independent draws from a data-generating process, each fed through a fixed
// decision rule, aggregated into an empirical rejection rate.
//
// Determinism: every trial gets its own generator stream derived from
// (scenario key, trial index, base seed), so two runs with identical inputs
// produce bit-identical estimates regardless of scheduling.
type Estimator struct {
	rngPort     ports.RNGPort
	maxParallel int64 // concurrent scenarios during a sweep
}

// New creates an estimator backed by the given RNG port
func New(rngPort ports.RNGPort) *Estimator {
	return &Estimator{
		rngPort:     rngPort,
		maxParallel: 4,
	}
}

// SetMaxParallel configures how many scenarios a sweep runs concurrently
func (e *Estimator) SetMaxParallel(n int) {
	if n < 1 {
		n = 1
	}
	e.maxParallel = int64(n)
}

// Estimate runs numTrials independent {draw sample -> apply rule} repetitions
// for one scenario and returns the empirical rejection rate. There is no
// early stopping and no adaptive trial count. Any sampler or rule failure
// aborts immediately with the scenario key and trial index attached; silently
// dropping trials would bias the estimate.
func (e *Estimator) Estimate(ctx context.Context, sampler power.Sampler, rule power.DecisionRule, scenario power.Scenario, numTrials int, seed int64) (power.PowerEstimate, error) {
	if numTrials < 1 {
		return power.PowerEstimate{}, core.NewInvalidArgumentError("num_trials", "must be at least 1")
	}
	if err := scenario.Validate(); err != nil {
		return power.PowerEstimate{}, err
	}

	key := scenario.Key()
	rejections := 0
	statistics := make([]float64, 0, numTrials)
	pValues := make([]float64, 0, numTrials)

	for i := 0; i < numTrials; i++ {
		select {
		case <-ctx.Done():
			return power.PowerEstimate{}, ctx.Err()
		default:
		}

		trialRNG, err := e.rngPort.TrialStream(ctx, key.String(), i, seed)
		if err != nil {
			return power.PowerEstimate{}, core.NewTrialError(key, i, err)
		}

		sample, err := sampler.Draw(scenario, trialRNG)
		if err != nil {
			return power.PowerEstimate{}, core.NewTrialError(key, i, err)
		}

		decision, err := rule.Decide(sample)
		if err != nil {
			return power.PowerEstimate{}, core.NewTrialError(key, i, err)
		}

		if decision.Rejected {
			rejections++
		}
		statistics = append(statistics, decision.Statistic)
		pValues = append(pValues, decision.PValue)
	}

	return power.PowerEstimate{
		ScenarioKey: key,
		Param:       scenario.Param(),
		NumTrials:   numTrials,
		Rejections:  rejections,
		Power:       float64(rejections) / float64(numTrials),
		Diagnostics: summarizeTrials(statistics, pValues),
	}, nil
}

// Sweep applies Estimate to each scenario in input order. Scenarios may run
// concurrently up to the configured limit; output order always matches input
// order. The first failure cancels the remaining scenarios and no partial
// results are returned.
func (e *Estimator) Sweep(ctx context.Context, sampler power.Sampler, rule power.DecisionRule, scenarios []power.Scenario, numTrials int, seed int64) ([]power.PowerEstimate, error) {
	if numTrials < 1 {
		return nil, core.NewInvalidArgumentError("num_trials", "must be at least 1")
	}
	if len(scenarios) == 0 {
		return nil, core.NewInvalidArgumentError("scenarios", "sweep needs at least one scenario")
	}

	// Duplicate keys would alias trial RNG streams between scenarios.
	seen := make(map[core.ScenarioKey]bool, len(scenarios))
	for _, sc := range scenarios {
		if seen[sc.Key()] {
			return nil, core.NewInvalidArgumentError("scenarios", "duplicate scenario key "+sc.Key().String())
		}
		seen[sc.Key()] = true
	}

	estimates := make([]power.PowerEstimate, len(scenarios))
	sem := semaphore.NewWeighted(e.maxParallel)

	g, gctx := errgroup.WithContext(ctx)
	for i, scenario := range scenarios {
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			estimate, err := e.Estimate(gctx, sampler, rule, scenario, numTrials, seed)
			if err != nil {
				return err
			}
			estimates[i] = estimate
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return estimates, nil
}

// summarizeTrials condenses the trial-level statistics into the diagnostics
// kept on the estimate. Trial data itself is discarded after this pass.
func summarizeTrials(statistics, pValues []float64) power.TrialDiagnostics {
	meanStat, _ := stats.Mean(statistics)
	meanP, _ := stats.Mean(pValues)
	p05, _ := stats.Percentile(statistics, 5)
	p95, _ := stats.Percentile(statistics, 95)

	return power.TrialDiagnostics{
		MeanStatistic: meanStat,
		MeanPValue:    meanP,
		StatisticP05:  p05,
		StatisticP95:  p95,
	}
}
