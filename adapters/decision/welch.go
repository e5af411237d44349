package decision

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"gopower/domain/core"
	"gopower/domain/power"
)

// DefaultAlpha is the significance level the tutorials use throughout.
const DefaultAlpha = 0.05

// WelchTTestRule rejects when the two-sided Welch t-test p-value is strictly
// below Alpha. A p-value exactly at the threshold does not reject.
type WelchTTestRule struct {
	Alpha float64
}

// NewWelchTTestRule creates a Welch t-test rule at the default alpha
func NewWelchTTestRule() *WelchTTestRule {
	return &WelchTTestRule{Alpha: DefaultAlpha}
}

// Name returns the rule name
func (r *WelchTTestRule) Name() string {
	return "welch_ttest"
}

// Decide applies the Welch two-sample t-test to one sample
func (r *WelchTTestRule) Decide(sample power.Sample) (power.Decision, error) {
	t, df, err := WelchStatistic(sample.X, sample.Y)
	if err != nil {
		return power.Decision{}, err
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := 2 * (1 - tDist.CDF(math.Abs(t)))

	return power.Decision{
		Statistic: t,
		PValue:    pValue,
		Rejected:  pValue < r.Alpha,
	}, nil
}

// WelchStatistic computes the Welch t-statistic and its Welch-Satterthwaite
// degrees of freedom for two independent groups.
func WelchStatistic(groupA, groupB []float64) (t, df float64, err error) {
	if len(groupA) < 2 || len(groupB) < 2 {
		return 0, 0, core.NewFitError("t-test needs at least 2 observations per group")
	}

	n1 := float64(len(groupA))
	n2 := float64(len(groupB))

	mean1 := stat.Mean(groupA, nil)
	mean2 := stat.Mean(groupB, nil)
	var1 := stat.Variance(groupA, nil)
	var2 := stat.Variance(groupB, nil)

	se2 := var1/n1 + var2/n2
	if se2 == 0 {
		return 0, 0, core.NewFitError("zero variance in both groups")
	}

	t = (mean1 - mean2) / math.Sqrt(se2)
	df = se2 * se2 / (math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))
	return t, df, nil
}

var _ power.DecisionRule = (*WelchTTestRule)(nil)
