package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopower/adapters/decision"
	"gopower/adapters/memory"
	"gopower/adapters/sampling"
	"gopower/internal/testkit"
)

func TestRunSweep_PersistsAndOverlaysAnalytic(t *testing.T) {
	repo := memory.NewSweepRepository()
	service := NewSweepService(testkit.NewEstimator(), repo, nil)

	result, err := service.RunSweep(context.Background(), SweepRequest{
		Sampler:   sampling.NewTwoSampleNormalSampler(),
		Rule:      decision.NewWelchTTestRule(),
		Scenarios: testkit.TwoSampleScenarios(20, 100),
		NumTrials: 200,
		Seed:      42,
	})
	require.NoError(t, err)
	require.Len(t, result.Estimates, 2)
	assert.False(t, result.SweepID.String() == "")

	for _, estimate := range result.Estimates {
		require.NotNil(t, estimate.AnalyticPower, "two-sample scenarios have a closed form")
		assert.GreaterOrEqual(t, *estimate.AnalyticPower, 0.0)
		assert.LessOrEqual(t, *estimate.AnalyticPower, 1.0)
	}

	// The n=100 closed form sits near 0.94; the overlay should agree.
	assert.InDelta(t, 0.942, *result.Estimates[1].AnalyticPower, 0.005)

	stored, err := repo.GetSweep(context.Background(), result.SweepID)
	require.NoError(t, err)
	assert.Equal(t, result.Estimates[0].Power, stored.Estimates[0].Power)
	assert.Equal(t, "two_sample_normal", stored.SamplerName)
}

func TestRunSweep_NoRepositoryStillReturnsResult(t *testing.T) {
	service := NewSweepService(testkit.NewEstimator(), nil, nil)

	result, err := service.RunSweep(context.Background(), SweepRequest{
		Sampler:   sampling.NewTwoProportionSampler(),
		Rule:      decision.NewTwoProportionZRule(),
		Scenarios: testkit.TwoProportionScenarios(50, 100),
		NumTrials: 100,
		Seed:      7,
	})
	require.NoError(t, err)
	require.Len(t, result.Estimates, 2)
	assert.Equal(t, "two_proportion_z", result.RuleName)
}

func TestRunSweep_PropagatesEstimatorFailure(t *testing.T) {
	repo := memory.NewSweepRepository()
	service := NewSweepService(testkit.NewEstimator(), repo, nil)

	_, err := service.RunSweep(context.Background(), SweepRequest{
		Sampler:   sampling.NewTwoSampleNormalSampler(),
		Rule:      decision.NewWelchTTestRule(),
		Scenarios: testkit.TwoSampleScenarios(20),
		NumTrials: 0,
		Seed:      42,
	})
	require.Error(t, err)

	sweeps, listErr := repo.ListSweeps(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, sweeps, "failed sweeps must not be persisted")
}
