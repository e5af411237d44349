package decision

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"gopower/domain/core"
	"gopower/domain/power"
)

// OLSSlopeRule fits y = a + b*x by least squares and rejects when the
// two-sided p-value for b is strictly below Alpha. A constant predictor or a
// perfectly collinear fit is a fit failure, not a non-rejection.
type OLSSlopeRule struct {
	Alpha float64
}

// NewOLSSlopeRule creates an OLS slope-significance rule at the default alpha
func NewOLSSlopeRule() *OLSSlopeRule {
	return &OLSSlopeRule{Alpha: DefaultAlpha}
}

// Name returns the rule name
func (r *OLSSlopeRule) Name() string {
	return "ols_slope"
}

// Decide tests the fitted slope of one sample against zero
func (r *OLSSlopeRule) Decide(sample power.Sample) (power.Decision, error) {
	x, y := sample.X, sample.Y
	if len(x) != len(y) {
		return power.Decision{}, core.NewFitError("predictor and response lengths differ")
	}
	n := len(x)
	if n < 3 {
		return power.Decision{}, core.NewFitError("slope fits need at least 3 observations")
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)

	meanX := stat.Mean(x, nil)
	sxx := 0.0
	for _, xi := range x {
		d := xi - meanX
		sxx += d * d
	}
	if sxx == 0 {
		return power.Decision{}, core.NewFitError("constant predictor: slope is not identifiable")
	}

	rss := 0.0
	for i := range x {
		resid := y[i] - intercept - slope*x[i]
		rss += resid * resid
	}

	df := float64(n - 2)
	residVar := rss / df
	if residVar == 0 {
		return power.Decision{}, core.NewFitError("zero residual variance: slope standard error degenerates")
	}

	se := math.Sqrt(residVar / sxx)
	t := slope / se

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := 2 * (1 - tDist.CDF(math.Abs(t)))

	return power.Decision{
		Statistic: t,
		PValue:    pValue,
		Rejected:  pValue < r.Alpha,
	}, nil
}

var _ power.DecisionRule = (*OLSSlopeRule)(nil)
