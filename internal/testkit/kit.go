package testkit

import (
	"gopower/adapters/rng"
	"gopower/domain/power"
	"gopower/internal/estimator"
)

// Deterministic fixtures shared by package tests. The scenario parameters
// mirror the lab tutorial setup: group means 8 and 7, standard deviation 2.

// NewEstimator creates an estimator wired with the deterministic RNG adapter
func NewEstimator() *estimator.Estimator {
	return estimator.New(rng.New())
}

// TwoSampleScenarios builds the tutorial two-group scenario at each per-group
// sample size, in the given order
func TwoSampleScenarios(sizes ...int) []power.Scenario {
	scenarios := make([]power.Scenario, len(sizes))
	for i, n := range sizes {
		scenarios[i] = power.TwoSampleScenario{
			MeanA:      8,
			MeanB:      7,
			StdDevA:    2,
			StdDevB:    2,
			SampleSize: n,
		}
	}
	return scenarios
}

// TwoProportionScenarios builds a 0.5-vs-0.3 proportion scenario at each
// per-group sample size, in the given order
func TwoProportionScenarios(sizes ...int) []power.Scenario {
	scenarios := make([]power.Scenario, len(sizes))
	for i, n := range sizes {
		scenarios[i] = power.TwoProportionScenario{
			ProbA:      0.5,
			ProbB:      0.3,
			SampleSize: n,
		}
	}
	return scenarios
}
