package estimator_test

import (
	"context"
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"gopower/adapters/decision"
	"gopower/adapters/sampling"
	"gopower/domain/core"
	"gopower/domain/power"
	"gopower/internal/analytic"
	"gopower/internal/testkit"
)

func TestEstimate_PowerWithinBounds(t *testing.T) {
	est := testkit.NewEstimator()
	sampler := sampling.NewTwoSampleNormalSampler()
	rule := decision.NewWelchTTestRule()
	ctx := context.Background()

	for _, scenario := range testkit.TwoSampleScenarios(5, 10, 20, 50) {
		result, err := est.Estimate(ctx, sampler, rule, scenario, 200, 42)
		if err != nil {
			t.Fatalf("Estimate failed for %s: %v", scenario.Key(), err)
		}
		if result.Power < 0 || result.Power > 1 {
			t.Errorf("%s: power out of [0,1]: %v", scenario.Key(), result.Power)
		}
		if result.NumTrials != 200 {
			t.Errorf("%s: expected 200 trials, got %d", scenario.Key(), result.NumTrials)
		}
		if result.Rejections < 0 || result.Rejections > 200 {
			t.Errorf("%s: rejection count out of range: %d", scenario.Key(), result.Rejections)
		}
		if got := float64(result.Rejections) / 200; got != result.Power {
			t.Errorf("%s: power %v does not match rejection fraction %v", scenario.Key(), result.Power, got)
		}
	}
}

func TestEstimate_SingleTrialIsZeroOrOne(t *testing.T) {
	est := testkit.NewEstimator()
	sampler := sampling.NewTwoSampleNormalSampler()
	rule := decision.NewWelchTTestRule()
	scenario := testkit.TwoSampleScenarios(20)[0]

	for seed := int64(0); seed < 20; seed++ {
		result, err := est.Estimate(context.Background(), sampler, rule, scenario, 1, seed)
		if err != nil {
			t.Fatalf("Estimate failed at seed %d: %v", seed, err)
		}
		if result.Power != 0 && result.Power != 1 {
			t.Errorf("seed %d: single-trial power must be exactly 0 or 1, got %v", seed, result.Power)
		}
	}
}

func TestEstimate_RejectsNonPositiveTrialCount(t *testing.T) {
	est := testkit.NewEstimator()
	sampler := sampling.NewTwoSampleNormalSampler()
	rule := decision.NewWelchTTestRule()
	scenario := testkit.TwoSampleScenarios(20)[0]

	for _, trials := range []int{0, -1} {
		_, err := est.Estimate(context.Background(), sampler, rule, scenario, trials, 42)
		if !core.IsInvalidArgument(err) {
			t.Errorf("num_trials=%d: expected ErrInvalidArgument, got %v", trials, err)
		}
	}

	estimates, err := est.Sweep(context.Background(), sampler, rule, testkit.TwoSampleScenarios(20, 40), 0, 42)
	if !core.IsInvalidArgument(err) {
		t.Errorf("sweep with zero trials: expected ErrInvalidArgument, got %v", err)
	}
	if estimates != nil {
		t.Error("sweep with zero trials must not return partial estimates")
	}
}

func TestEstimate_InvalidScenarioRejectedBeforeTrials(t *testing.T) {
	est := testkit.NewEstimator()
	sampler := sampling.NewTwoSampleNormalSampler()
	rule := decision.NewWelchTTestRule()

	broken := power.TwoSampleScenario{MeanA: 8, MeanB: 7, StdDevA: 0, StdDevB: 2, SampleSize: 20}
	_, err := est.Estimate(context.Background(), sampler, rule, broken, 100, 42)
	if !core.IsInvalidArgument(err) {
		t.Errorf("expected ErrInvalidArgument for zero variance, got %v", err)
	}
}

func TestSweep_Deterministic(t *testing.T) {
	est := testkit.NewEstimator()
	sampler := sampling.NewTwoSampleNormalSampler()
	rule := decision.NewWelchTTestRule()
	scenarios := testkit.TwoSampleScenarios(10, 20, 40)
	ctx := context.Background()

	first, err := est.Sweep(ctx, sampler, rule, scenarios, 300, 42)
	if err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
	second, err := est.Sweep(ctx, sampler, rule, scenarios, 300, 42)
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical scenarios, trial count, and seed must produce bit-identical estimates")
	}

	shifted, err := est.Sweep(ctx, sampler, rule, scenarios, 300, 43)
	if err != nil {
		t.Fatalf("shifted sweep failed: %v", err)
	}
	if reflect.DeepEqual(first, shifted) {
		t.Error("a different seed should perturb the estimates")
	}
}

func TestSweep_PreservesScenarioOrder(t *testing.T) {
	est := testkit.NewEstimator()
	sampler := sampling.NewTwoSampleNormalSampler()
	rule := decision.NewWelchTTestRule()

	// Deliberately unsorted so order preservation is observable.
	sizes := []int{50, 10, 30, 20, 40}
	estimates, err := est.Sweep(context.Background(), sampler, rule, testkit.TwoSampleScenarios(sizes...), 100, 42)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(estimates) != len(sizes) {
		t.Fatalf("expected %d estimates, got %d", len(sizes), len(estimates))
	}
	for i, n := range sizes {
		if estimates[i].Param != float64(n) {
			t.Errorf("position %d: expected param %d, got %v", i, n, estimates[i].Param)
		}
	}
}

func TestSweep_RejectsDuplicateScenarioKeys(t *testing.T) {
	est := testkit.NewEstimator()
	sampler := sampling.NewTwoSampleNormalSampler()
	rule := decision.NewWelchTTestRule()

	_, err := est.Sweep(context.Background(), sampler, rule, testkit.TwoSampleScenarios(20, 20), 100, 42)
	if !core.IsInvalidArgument(err) {
		t.Errorf("duplicate scenario keys should be invalid, got %v", err)
	}
}

// failingSampler fails every draw for one scenario key and delegates the rest.
type failingSampler struct {
	inner   power.Sampler
	failKey core.ScenarioKey
}

func (s *failingSampler) Name() string { return s.inner.Name() }

func (s *failingSampler) Draw(scenario power.Scenario, rng *rand.Rand) (power.Sample, error) {
	if scenario.Key() == s.failKey {
		return power.Sample{}, core.NewSamplingError("synthetic degenerate draw")
	}
	return s.inner.Draw(scenario, rng)
}

func TestSweep_FailsFastWithScenarioAndTrialContext(t *testing.T) {
	est := testkit.NewEstimator()
	rule := decision.NewWelchTTestRule()
	scenarios := testkit.TwoSampleScenarios(10, 30, 50)
	sampler := &failingSampler{
		inner:   sampling.NewTwoSampleNormalSampler(),
		failKey: scenarios[1].Key(),
	}

	estimates, err := est.Sweep(context.Background(), sampler, rule, scenarios, 500, 42)
	if err == nil {
		t.Fatal("expected sweep to fail")
	}
	if estimates != nil {
		t.Error("failed sweep must not return partial estimates")
	}
	if !core.IsSamplingFailure(err) {
		t.Errorf("expected ErrSamplingFailure, got %v", err)
	}
	if !strings.Contains(err.Error(), "two_sample/n=30") {
		t.Errorf("error should name the offending scenario: %v", err)
	}
	if !strings.Contains(err.Error(), "trial 0") {
		t.Errorf("error should name the offending trial index: %v", err)
	}
}

func TestSweep_HonorsCancelledContext(t *testing.T) {
	est := testkit.NewEstimator()
	sampler := sampling.NewTwoSampleNormalSampler()
	rule := decision.NewWelchTTestRule()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := est.Sweep(ctx, sampler, rule, testkit.TwoSampleScenarios(20, 40), 1000, 42)
	if err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestEstimate_TutorialPowerCurve(t *testing.T) {
	est := testkit.NewEstimator()
	sampler := sampling.NewTwoSampleNormalSampler()
	rule := decision.NewWelchTTestRule()
	ctx := context.Background()

	// Means 8 vs 7, sd 2, per-group n of 20 then 100, 1000 trials each.
	// The normal approximation puts power near 0.35 and 0.94; the Monte-Carlo
	// estimate should land within sampling error of those.
	atN20, err := est.Estimate(ctx, sampler, rule, testkit.TwoSampleScenarios(20)[0], 1000, 42)
	if err != nil {
		t.Fatalf("Estimate at n=20 failed: %v", err)
	}
	atN100, err := est.Estimate(ctx, sampler, rule, testkit.TwoSampleScenarios(100)[0], 1000, 42)
	if err != nil {
		t.Fatalf("Estimate at n=100 failed: %v", err)
	}

	analytic20 := analytic.TwoSampleMeanPower(8, 7, 2, 2, 20, decision.DefaultAlpha)
	analytic100 := analytic.TwoSampleMeanPower(8, 7, 2, 2, 100, decision.DefaultAlpha)

	if diff := math.Abs(atN20.Power - analytic20); diff > 0.06 {
		t.Errorf("n=20: MC power %.3f vs closed form %.3f, diff %.3f", atN20.Power, analytic20, diff)
	}
	if atN20.Power < 0.25 || atN20.Power > 0.45 {
		t.Errorf("n=20: power %.3f outside plausible band", atN20.Power)
	}

	if diff := math.Abs(atN100.Power - analytic100); diff > 0.05 {
		t.Errorf("n=100: MC power %.3f vs closed form %.3f, diff %.3f", atN100.Power, analytic100, diff)
	}
	if atN100.Power < 0.85 {
		t.Errorf("n=100: power %.3f implausibly low", atN100.Power)
	}

	// Holding effect size and variance fixed, more data means more power.
	if atN100.Power <= atN20.Power {
		t.Errorf("power should increase with sample size: %.3f at n=20 vs %.3f at n=100", atN20.Power, atN100.Power)
	}
}

func TestEstimate_DiagnosticsSummarizeTrials(t *testing.T) {
	est := testkit.NewEstimator()
	sampler := sampling.NewTwoSampleNormalSampler()
	rule := decision.NewWelchTTestRule()

	result, err := est.Estimate(context.Background(), sampler, rule, testkit.TwoSampleScenarios(20)[0], 500, 42)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	d := result.Diagnostics
	if d.MeanPValue < 0 || d.MeanPValue > 1 {
		t.Errorf("mean p-value out of [0,1]: %v", d.MeanPValue)
	}
	if d.StatisticP05 > d.StatisticP95 {
		t.Errorf("5th percentile %v above 95th percentile %v", d.StatisticP05, d.StatisticP95)
	}
	// Means 8 > 7 puts mass of the t-statistic above zero.
	if d.MeanStatistic <= 0 {
		t.Errorf("mean statistic should be positive for this effect, got %v", d.MeanStatistic)
	}
}
