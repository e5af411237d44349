package sampling

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"gopower/domain/core"
	"gopower/domain/power"
)

// BinaryPredictorSampler draws one linear-model dataset per trial: a binary
// treatment indicator in Sample.X and the noisy response in Sample.Y.
type BinaryPredictorSampler struct{}

// NewBinaryPredictorSampler creates a binary-predictor regression sampler
func NewBinaryPredictorSampler() *BinaryPredictorSampler {
	return &BinaryPredictorSampler{}
}

// Name returns the sampler name
func (s *BinaryPredictorSampler) Name() string {
	return "binary_predictor_regression"
}

// Draw produces one synthetic dataset for a RegressionScenario
func (s *BinaryPredictorSampler) Draw(scenario power.Scenario, rng *rand.Rand) (power.Sample, error) {
	rs, ok := scenario.(power.RegressionScenario)
	if !ok {
		return power.Sample{}, core.NewSamplingError(fmt.Sprintf("%s cannot draw from scenario %s", s.Name(), scenario.Key()))
	}
	if rs.SampleSize < 3 {
		return power.Sample{}, core.NewSamplingError("slope fits need at least 3 observations")
	}

	treat := distuv.Bernoulli{P: rs.TreatFraction, Src: rng}
	noise := distuv.Normal{Mu: 0, Sigma: rs.NoiseStdDev, Src: rng}

	x := make([]float64, rs.SampleSize)
	y := make([]float64, rs.SampleSize)
	for i := 0; i < rs.SampleSize; i++ {
		x[i] = treat.Rand()
		y[i] = rs.Intercept + rs.Slope*x[i] + noise.Rand()
	}

	return power.Sample{X: x, Y: y}, nil
}

var _ power.Sampler = (*BinaryPredictorSampler)(nil)
