package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gopower/adapters/decision"
	"gopower/adapters/report"
	"gopower/adapters/sampling"
	"gopower/app"
	"gopower/domain/core"
	"gopower/domain/power"
)

// SweepRequestBody is the JSON shape for POST /api/sweeps. Exactly one test
// family is selected by Test; the scenario fields that family needs must be
// set and the rest are ignored.
type SweepRequestBody struct {
	Test        string  `json:"test"` // welch_ttest | fixed_threshold | two_proportion_z | ols_slope
	SampleSizes []int   `json:"sample_sizes"`
	NumTrials   int     `json:"num_trials"`
	Seed        int64   `json:"seed"`
	Alpha       float64 `json:"alpha,omitempty"`

	// Two-sample mean comparison.
	MeanA   float64 `json:"mean_a,omitempty"`
	MeanB   float64 `json:"mean_b,omitempty"`
	StdDevA float64 `json:"std_dev_a,omitempty"`
	StdDevB float64 `json:"std_dev_b,omitempty"`

	// Two-proportion comparison.
	ProbA float64 `json:"prob_a,omitempty"`
	ProbB float64 `json:"prob_b,omitempty"`

	// Regression slope.
	Intercept     float64 `json:"intercept,omitempty"`
	Slope         float64 `json:"slope,omitempty"`
	NoiseStdDev   float64 `json:"noise_std_dev,omitempty"`
	TreatFraction float64 `json:"treat_fraction,omitempty"`
}

func (s *Server) handleRunSweep(w http.ResponseWriter, r *http.Request) {
	var body SweepRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, core.NewInvalidArgumentError("body", "malformed JSON"))
		return
	}
	if len(body.SampleSizes) == 0 {
		s.respondError(w, core.NewInvalidArgumentError("sample_sizes", "at least one sample size is required"))
		return
	}

	sampler, rule, scenarios, err := buildSweepPlan(&body)
	if err != nil {
		s.respondError(w, err)
		return
	}

	result, err := s.service.RunSweep(r.Context(), app.SweepRequest{
		Sampler:   sampler,
		Rule:      rule,
		Scenarios: scenarios,
		NumTrials: body.NumTrials,
		Seed:      body.Seed,
		Alpha:     body.Alpha,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleListSweeps(w http.ResponseWriter, r *http.Request) {
	sweeps, err := s.repo.ListSweeps(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, sweeps)
}

func (s *Server) handleGetSweep(w http.ResponseWriter, r *http.Request) {
	id := core.SweepID(chi.URLParam(r, "sweepID"))
	result, err := s.repo.GetSweep(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSweepReport(w http.ResponseWriter, r *http.Request) {
	id := core.SweepID(chi.URLParam(r, "sweepID"))
	result, err := s.repo.GetSweep(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.RenderHTML(report.BuildMarkdown(result)))
}

// buildSweepPlan maps a request body onto a sampler, rule, and scenario list
func buildSweepPlan(body *SweepRequestBody) (power.Sampler, power.DecisionRule, []power.Scenario, error) {
	alpha := body.Alpha
	if alpha == 0 {
		alpha = decision.DefaultAlpha
	}

	scenarios := make([]power.Scenario, 0, len(body.SampleSizes))
	switch body.Test {
	case "welch_ttest", "fixed_threshold":
		for _, n := range body.SampleSizes {
			scenarios = append(scenarios, power.TwoSampleScenario{
				MeanA: body.MeanA, MeanB: body.MeanB,
				StdDevA: body.StdDevA, StdDevB: body.StdDevB,
				SampleSize: n,
			})
		}
		if body.Test == "fixed_threshold" {
			return sampling.NewTwoSampleNormalSampler(), decision.NewFixedThresholdRule(), scenarios, nil
		}
		return sampling.NewTwoSampleNormalSampler(), &decision.WelchTTestRule{Alpha: alpha}, scenarios, nil

	case "two_proportion_z":
		for _, n := range body.SampleSizes {
			scenarios = append(scenarios, power.TwoProportionScenario{
				ProbA: body.ProbA, ProbB: body.ProbB, SampleSize: n,
			})
		}
		return sampling.NewTwoProportionSampler(), &decision.TwoProportionZRule{Alpha: alpha}, scenarios, nil

	case "ols_slope":
		for _, n := range body.SampleSizes {
			scenarios = append(scenarios, power.RegressionScenario{
				Intercept: body.Intercept, Slope: body.Slope,
				NoiseStdDev: body.NoiseStdDev, TreatFraction: body.TreatFraction,
				SampleSize: n,
			})
		}
		return sampling.NewBinaryPredictorSampler(), &decision.OLSSlopeRule{Alpha: alpha}, scenarios, nil

	default:
		return nil, nil, nil, core.NewInvalidArgumentError("test", "unknown test "+body.Test)
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsInvalidArgument(err):
		status = http.StatusBadRequest
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case core.IsSamplingFailure(err), core.IsFitFailure(err):
		// The sweep itself failed, not the request shape.
		status = http.StatusUnprocessableEntity
	}

	s.logger.Warn("request failed (%d): %v", status, err)
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}
