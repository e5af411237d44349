package decision

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"gopower/domain/core"
	"gopower/domain/power"
)

// TwoProportionZRule compares two Bernoulli groups with the pooled z-test and
// rejects when the two-sided p-value is strictly below Alpha. Samples are 0/1
// outcomes; a pooled proportion of exactly 0 or 1 is a fit failure because the
// z-statistic degenerates.
type TwoProportionZRule struct {
	Alpha float64
}

// NewTwoProportionZRule creates a pooled two-proportion z rule at the default alpha
func NewTwoProportionZRule() *TwoProportionZRule {
	return &TwoProportionZRule{Alpha: DefaultAlpha}
}

// Name returns the rule name
func (r *TwoProportionZRule) Name() string {
	return "two_proportion_z"
}

// Decide applies the pooled two-proportion z-test to one sample
func (r *TwoProportionZRule) Decide(sample power.Sample) (power.Decision, error) {
	if len(sample.X) < 2 || len(sample.Y) < 2 {
		return power.Decision{}, core.NewFitError("proportion tests need at least 2 observations per group")
	}

	n1 := float64(len(sample.X))
	n2 := float64(len(sample.Y))
	p1 := stat.Mean(sample.X, nil)
	p2 := stat.Mean(sample.Y, nil)

	pooled := (p1*n1 + p2*n2) / (n1 + n2)
	if pooled == 0 || pooled == 1 {
		return power.Decision{}, core.NewFitError("degenerate pooled proportion: all outcomes identical")
	}

	se := math.Sqrt(pooled * (1 - pooled) * (1/n1 + 1/n2))
	z := (p1 - p2) / se
	pValue := 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))

	return power.Decision{
		Statistic: z,
		PValue:    pValue,
		Rejected:  pValue < r.Alpha,
	}, nil
}

var _ power.DecisionRule = (*TwoProportionZRule)(nil)
