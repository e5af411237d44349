package sampling

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"gopower/domain/core"
	"gopower/domain/power"
)

// TwoProportionSampler draws two independent Bernoulli groups per trial as
// 0/1 outcomes in Sample.X and Sample.Y.
type TwoProportionSampler struct{}

// NewTwoProportionSampler creates a two-group Bernoulli sampler
func NewTwoProportionSampler() *TwoProportionSampler {
	return &TwoProportionSampler{}
}

// Name returns the sampler name
func (s *TwoProportionSampler) Name() string {
	return "two_proportion_bernoulli"
}

// Draw produces one synthetic dataset for a TwoProportionScenario
func (s *TwoProportionSampler) Draw(scenario power.Scenario, rng *rand.Rand) (power.Sample, error) {
	tp, ok := scenario.(power.TwoProportionScenario)
	if !ok {
		return power.Sample{}, core.NewSamplingError(fmt.Sprintf("%s cannot draw from scenario %s", s.Name(), scenario.Key()))
	}
	if tp.SampleSize < 2 {
		return power.Sample{}, core.NewSamplingError("proportion tests need at least 2 observations per group")
	}

	distA := distuv.Bernoulli{P: tp.ProbA, Src: rng}
	distB := distuv.Bernoulli{P: tp.ProbB, Src: rng}

	groupA := make([]float64, tp.SampleSize)
	groupB := make([]float64, tp.SampleSize)
	for i := 0; i < tp.SampleSize; i++ {
		groupA[i] = distA.Rand()
	}
	for i := 0; i < tp.SampleSize; i++ {
		groupB[i] = distB.Rand()
	}

	return power.Sample{X: groupA, Y: groupB}, nil
}

var _ power.Sampler = (*TwoProportionSampler)(nil)
