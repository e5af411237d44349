package power

import (
	"fmt"

	"gopower/domain/core"
)

// Scenario is a fixed, named configuration of data-generating parameters.
// One scenario maps to one row of sweep output. Scenarios are immutable once
// constructed; samplers and decision rules never mutate them.
type Scenario interface {
	// Key uniquely identifies the scenario within a sweep. It also keys the
	// per-trial RNG streams, so duplicate keys inside one sweep are rejected.
	Key() core.ScenarioKey

	// Param returns the varying axis value (typically sample size) used to
	// tabulate the resulting power estimate.
	Param() float64

	// Validate rejects malformed parameter sets before any trial runs.
	Validate() error
}

// TwoSampleScenario describes two normal populations compared on their means.
// SampleSize is the per-group size.
type TwoSampleScenario struct {
	MeanA      float64 `json:"mean_a"`
	MeanB      float64 `json:"mean_b"`
	StdDevA    float64 `json:"std_dev_a"`
	StdDevB    float64 `json:"std_dev_b"`
	SampleSize int     `json:"sample_size"`
}

func (s TwoSampleScenario) Key() core.ScenarioKey {
	return core.ScenarioKey(fmt.Sprintf("two_sample/n=%d", s.SampleSize))
}

func (s TwoSampleScenario) Param() float64 {
	return float64(s.SampleSize)
}

func (s TwoSampleScenario) Validate() error {
	if s.SampleSize < 2 {
		return core.NewInvalidArgumentError("sample_size", "need at least 2 observations per group")
	}
	if s.StdDevA <= 0 || s.StdDevB <= 0 {
		return core.NewInvalidArgumentError("std_dev", "standard deviations must be positive")
	}
	return nil
}

// RegressionScenario describes a linear model y = Intercept + Slope*x + noise
// with a binary treatment predictor x drawn with probability TreatFraction.
type RegressionScenario struct {
	Intercept     float64 `json:"intercept"`
	Slope         float64 `json:"slope"`
	NoiseStdDev   float64 `json:"noise_std_dev"`
	TreatFraction float64 `json:"treat_fraction"`
	SampleSize    int     `json:"sample_size"`
}

func (s RegressionScenario) Key() core.ScenarioKey {
	return core.ScenarioKey(fmt.Sprintf("regression/n=%d", s.SampleSize))
}

func (s RegressionScenario) Param() float64 {
	return float64(s.SampleSize)
}

func (s RegressionScenario) Validate() error {
	if s.SampleSize < 3 {
		return core.NewInvalidArgumentError("sample_size", "need at least 3 observations to fit a slope")
	}
	if s.NoiseStdDev <= 0 {
		return core.NewInvalidArgumentError("noise_std_dev", "noise standard deviation must be positive")
	}
	if s.TreatFraction <= 0 || s.TreatFraction >= 1 {
		return core.NewInvalidArgumentError("treat_fraction", "treatment fraction must be in (0,1)")
	}
	return nil
}

// TwoProportionScenario describes two Bernoulli populations compared on their
// success probabilities. SampleSize is the per-group size.
type TwoProportionScenario struct {
	ProbA      float64 `json:"prob_a"`
	ProbB      float64 `json:"prob_b"`
	SampleSize int     `json:"sample_size"`
}

func (s TwoProportionScenario) Key() core.ScenarioKey {
	return core.ScenarioKey(fmt.Sprintf("two_proportion/n=%d", s.SampleSize))
}

func (s TwoProportionScenario) Param() float64 {
	return float64(s.SampleSize)
}

func (s TwoProportionScenario) Validate() error {
	if s.SampleSize < 2 {
		return core.NewInvalidArgumentError("sample_size", "need at least 2 observations per group")
	}
	if s.ProbA <= 0 || s.ProbA >= 1 || s.ProbB <= 0 || s.ProbB >= 1 {
		return core.NewInvalidArgumentError("prob", "success probabilities must be in (0,1)")
	}
	return nil
}
