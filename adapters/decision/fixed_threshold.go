package decision

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gopower/domain/power"
)

// DefaultThreshold is the two-sided 5% critical value on the normal scale.
const DefaultThreshold = 1.96

// FixedThresholdRule rejects when the absolute Welch t-statistic strictly
// exceeds Threshold. This is the raw-statistic convention some of the
// tutorials use (|t| > 1.96) instead of a p-value cut; a statistic exactly at
// the threshold does not reject.
type FixedThresholdRule struct {
	Threshold float64
}

// NewFixedThresholdRule creates a fixed-threshold rule at |t| > 1.96
func NewFixedThresholdRule() *FixedThresholdRule {
	return &FixedThresholdRule{Threshold: DefaultThreshold}
}

// Name returns the rule name
func (r *FixedThresholdRule) Name() string {
	return "fixed_threshold"
}

// Decide thresholds the Welch t-statistic for one sample
func (r *FixedThresholdRule) Decide(sample power.Sample) (power.Decision, error) {
	t, _, err := WelchStatistic(sample.X, sample.Y)
	if err != nil {
		return power.Decision{}, err
	}

	// Normal-scale p-value for diagnostics; the decision itself is on |t|.
	pValue := 2 * (1 - distuv.UnitNormal.CDF(math.Abs(t)))

	return power.Decision{
		Statistic: t,
		PValue:    pValue,
		Rejected:  math.Abs(t) > r.Threshold,
	}, nil
}

var _ power.DecisionRule = (*FixedThresholdRule)(nil)
