package analytic

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gopower/domain/core"
)

// Closed-form power approximations used to cross-check the Monte-Carlo
// estimates. All use the large-sample normal approximation
// power = Phi(delta/se - z_{1-alpha/2}); the far tail's contribution is
// negligible at the effect sizes the tutorials sweep over.

// TwoSampleMeanPower approximates the power of a two-sided two-sample mean
// comparison with n observations per group. Returns 0 for unusable inputs.
func TwoSampleMeanPower(meanA, meanB, stdDevA, stdDevB float64, n int, alpha float64) float64 {
	if n <= 0 || stdDevA <= 0 || stdDevB <= 0 || alpha <= 0 || alpha >= 1 {
		return 0
	}

	se := math.Sqrt(stdDevA*stdDevA/float64(n) + stdDevB*stdDevB/float64(n))
	noncentrality := math.Abs(meanA-meanB) / se
	zCritical := distuv.UnitNormal.Quantile(1 - alpha/2)

	return distuv.UnitNormal.CDF(noncentrality - zCritical)
}

// TwoProportionPower approximates the power of a two-sided two-proportion
// comparison with n observations per group. Returns 0 for unusable inputs.
func TwoProportionPower(probA, probB float64, n int, alpha float64) float64 {
	if n <= 0 || probA <= 0 || probA >= 1 || probB <= 0 || probB >= 1 || alpha <= 0 || alpha >= 1 {
		return 0
	}

	se := math.Sqrt(probA*(1-probA)/float64(n) + probB*(1-probB)/float64(n))
	noncentrality := math.Abs(probA-probB) / se
	zCritical := distuv.UnitNormal.Quantile(1 - alpha/2)

	return distuv.UnitNormal.CDF(noncentrality - zCritical)
}

// RequiredSampleSize inverts the two-sample approximation: the per-group n
// needed to reach targetPower at the given standardized effect size.
func RequiredSampleSize(effectSize, targetPower, alpha float64) (int, error) {
	if effectSize == 0 {
		return 0, core.NewInvalidArgumentError("effect_size", "cannot size a study for a zero effect")
	}
	if targetPower <= 0 || targetPower >= 1 {
		return 0, core.NewInvalidArgumentError("target_power", "must be in (0,1)")
	}
	if alpha <= 0 || alpha >= 1 {
		return 0, core.NewInvalidArgumentError("alpha", "must be in (0,1)")
	}

	zAlpha := distuv.UnitNormal.Quantile(1 - alpha/2)
	zBeta := distuv.UnitNormal.Quantile(targetPower)

	ratio := (zAlpha + zBeta) / math.Abs(effectSize)
	n := int(math.Ceil(2 * ratio * ratio))
	if n < 2 {
		n = 2
	}
	return n, nil
}
