package power

import (
	"testing"

	"gopower/domain/core"
)

func TestTwoSampleScenario_Validate(t *testing.T) {
	valid := TwoSampleScenario{MeanA: 8, MeanB: 7, StdDevA: 2, StdDevB: 2, SampleSize: 20}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid scenario rejected: %v", err)
	}

	cases := []struct {
		name     string
		scenario TwoSampleScenario
	}{
		{"zero sample size", TwoSampleScenario{MeanA: 8, MeanB: 7, StdDevA: 2, StdDevB: 2}},
		{"one per group", TwoSampleScenario{MeanA: 8, MeanB: 7, StdDevA: 2, StdDevB: 2, SampleSize: 1}},
		{"zero std dev", TwoSampleScenario{MeanA: 8, MeanB: 7, StdDevA: 0, StdDevB: 2, SampleSize: 20}},
		{"negative std dev", TwoSampleScenario{MeanA: 8, MeanB: 7, StdDevA: 2, StdDevB: -1, SampleSize: 20}},
	}

	for _, tc := range cases {
		err := tc.scenario.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		if !core.IsInvalidArgument(err) {
			t.Errorf("%s: expected ErrInvalidArgument, got %v", tc.name, err)
		}
	}
}

func TestRegressionScenario_Validate(t *testing.T) {
	valid := RegressionScenario{Intercept: 1, Slope: 0.5, NoiseStdDev: 1, TreatFraction: 0.5, SampleSize: 50}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid scenario rejected: %v", err)
	}

	degenerate := RegressionScenario{Intercept: 1, Slope: 0.5, NoiseStdDev: 1, TreatFraction: 1.0, SampleSize: 50}
	if err := degenerate.Validate(); !core.IsInvalidArgument(err) {
		t.Errorf("degenerate treat fraction should be invalid, got %v", err)
	}

	tiny := RegressionScenario{Intercept: 1, Slope: 0.5, NoiseStdDev: 1, TreatFraction: 0.5, SampleSize: 2}
	if err := tiny.Validate(); !core.IsInvalidArgument(err) {
		t.Errorf("sample size 2 should be invalid for a slope fit, got %v", err)
	}
}

func TestTwoProportionScenario_Validate(t *testing.T) {
	valid := TwoProportionScenario{ProbA: 0.3, ProbB: 0.5, SampleSize: 40}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid scenario rejected: %v", err)
	}

	boundary := TwoProportionScenario{ProbA: 0.0, ProbB: 0.5, SampleSize: 40}
	if err := boundary.Validate(); !core.IsInvalidArgument(err) {
		t.Errorf("probability at 0 should be invalid, got %v", err)
	}
}

func TestScenario_KeysEncodeSampleSize(t *testing.T) {
	a := TwoSampleScenario{MeanA: 8, MeanB: 7, StdDevA: 2, StdDevB: 2, SampleSize: 20}
	b := TwoSampleScenario{MeanA: 8, MeanB: 7, StdDevA: 2, StdDevB: 2, SampleSize: 40}

	if a.Key() == b.Key() {
		t.Error("scenarios with different sample sizes must have different keys")
	}
	if a.Param() != 20 || b.Param() != 40 {
		t.Errorf("Param should expose the sweep axis, got %v and %v", a.Param(), b.Param())
	}
}
