package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopower/adapters/decision"
	"gopower/adapters/excel"
	"gopower/adapters/postgres"
	"gopower/adapters/report"
	"gopower/adapters/rng"
	"gopower/adapters/sampling"
	"gopower/app"
	"gopower/domain/core"
	"gopower/domain/power"
	"gopower/internal/analytic"
	"gopower/internal/estimator"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gopower-cli",
		Short: "GoPower CLI for Monte-Carlo power sweeps and closed-form checks",
	}

	rootCmd.AddCommand(
		newSweepCmd(),
		newAnalyticCmd(),
		newSampleSizeCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type sweepFlags struct {
	test   string
	sizes  []int
	trials int
	seed   int64
	alpha  float64

	meanA, meanB     float64
	stdDevA, stdDevB float64

	probA, probB float64

	intercept, slope float64
	noiseStdDev      float64
	treatFraction    float64

	xlsxPath string
	markdown bool
}

func newSweepCmd() *cobra.Command {
	var flags sweepFlags

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a Monte-Carlo power sweep across sample sizes",
		Long: `Run a simulation-based power sweep: for each sample size, draw repeated
samples under the alternative, apply the decision rule, and report the
rejection rate alongside the closed-form approximation where one exists.

Example: gopower-cli sweep --test welch_ttest --mean-a 8 --mean-b 7 --sd-a 2 --sd-b 2 --sizes 20,50,100 --trials 1000 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd.Context(), &flags)
		},
	}

	cmd.Flags().StringVar(&flags.test, "test", "welch_ttest", "Test family: welch_ttest|fixed_threshold|two_proportion_z|ols_slope")
	cmd.Flags().IntSliceVar(&flags.sizes, "sizes", []int{20, 50, 100}, "Per-group sample sizes to sweep")
	cmd.Flags().IntVar(&flags.trials, "trials", 1000, "Simulated trials per sample size")
	cmd.Flags().Int64Var(&flags.seed, "seed", 42, "Random seed for deterministic operations")
	cmd.Flags().Float64Var(&flags.alpha, "alpha", decision.DefaultAlpha, "Significance level")
	cmd.Flags().Float64Var(&flags.meanA, "mean-a", 8, "Group A mean (two-sample tests)")
	cmd.Flags().Float64Var(&flags.meanB, "mean-b", 7, "Group B mean (two-sample tests)")
	cmd.Flags().Float64Var(&flags.stdDevA, "sd-a", 2, "Group A standard deviation")
	cmd.Flags().Float64Var(&flags.stdDevB, "sd-b", 2, "Group B standard deviation")
	cmd.Flags().Float64Var(&flags.probA, "prob-a", 0.5, "Group A success probability (proportion test)")
	cmd.Flags().Float64Var(&flags.probB, "prob-b", 0.3, "Group B success probability (proportion test)")
	cmd.Flags().Float64Var(&flags.intercept, "intercept", 0, "Regression intercept (slope test)")
	cmd.Flags().Float64Var(&flags.slope, "slope", 1, "Regression slope under the alternative (slope test)")
	cmd.Flags().Float64Var(&flags.noiseStdDev, "noise-sd", 1, "Regression noise standard deviation (slope test)")
	cmd.Flags().Float64Var(&flags.treatFraction, "treat-fraction", 0.5, "Fraction of treated units (slope test)")
	cmd.Flags().StringVar(&flags.xlsxPath, "xlsx", "", "Write the power curve to this .xlsx file")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "Print the sweep report as markdown")

	return cmd
}

func runSweep(ctx context.Context, flags *sweepFlags) error {
	sampler, rule, scenarios, err := buildPlan(flags)
	if err != nil {
		return err
	}

	est := estimator.New(rng.New())
	svc := app.NewSweepService(est, nil, nil)

	fmt.Printf("Running %s power sweep over %d sample sizes (%d trials each, seed %d)...\n",
		flags.test, len(scenarios), flags.trials, flags.seed)

	start := time.Now()
	result, err := svc.RunSweep(ctx, app.SweepRequest{
		Sampler:   sampler,
		Rule:      rule,
		Scenarios: scenarios,
		NumTrials: flags.trials,
		Seed:      flags.seed,
		Alpha:     flags.alpha,
	})
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	if flags.markdown {
		fmt.Println(report.BuildMarkdown(result))
	} else {
		printSweep(result, time.Since(start))
	}

	if flags.xlsxPath != "" {
		if err := excel.NewCurveWriter().WriteSweep(result, flags.xlsxPath); err != nil {
			return fmt.Errorf("xlsx export failed: %w", err)
		}
		fmt.Printf("\n💾 Power curve saved to: %s\n", flags.xlsxPath)
	}

	return nil
}

func buildPlan(flags *sweepFlags) (power.Sampler, power.DecisionRule, []power.Scenario, error) {
	scenarios := make([]power.Scenario, 0, len(flags.sizes))
	switch flags.test {
	case "welch_ttest", "fixed_threshold":
		for _, n := range flags.sizes {
			scenarios = append(scenarios, power.TwoSampleScenario{
				MeanA: flags.meanA, MeanB: flags.meanB,
				StdDevA: flags.stdDevA, StdDevB: flags.stdDevB,
				SampleSize: n,
			})
		}
		if flags.test == "fixed_threshold" {
			return sampling.NewTwoSampleNormalSampler(), decision.NewFixedThresholdRule(), scenarios, nil
		}
		return sampling.NewTwoSampleNormalSampler(), &decision.WelchTTestRule{Alpha: flags.alpha}, scenarios, nil
	case "two_proportion_z":
		for _, n := range flags.sizes {
			scenarios = append(scenarios, power.TwoProportionScenario{
				ProbA: flags.probA, ProbB: flags.probB, SampleSize: n,
			})
		}
		return sampling.NewTwoProportionSampler(), &decision.TwoProportionZRule{Alpha: flags.alpha}, scenarios, nil
	case "ols_slope":
		for _, n := range flags.sizes {
			scenarios = append(scenarios, power.RegressionScenario{
				Intercept: flags.intercept, Slope: flags.slope,
				NoiseStdDev: flags.noiseStdDev, TreatFraction: flags.treatFraction,
				SampleSize: n,
			})
		}
		return sampling.NewBinaryPredictorSampler(), &decision.OLSSlopeRule{Alpha: flags.alpha}, scenarios, nil
	default:
		return nil, nil, nil, fmt.Errorf("invalid test: %s (expected welch_ttest|fixed_threshold|two_proportion_z|ols_slope)", flags.test)
	}
}

func printSweep(result *power.SweepResult, elapsed time.Duration) {
	fmt.Printf("\n=== POWER SWEEP RESULTS ===\n")
	fmt.Printf("Sweep ID: %s\n", result.SweepID)
	fmt.Printf("Sampler: %s | Rule: %s\n", result.SamplerName, result.RuleName)
	fmt.Printf("Trials per scenario: %d | Seed: %d\n", result.NumTrials, result.Seed)
	fmt.Printf("Runtime: %v\n", elapsed)

	fmt.Printf("\n=== POWER CURVE ===\n")
	for i, est := range result.Estimates {
		fmt.Printf("%d. %s\n", i+1, est.ScenarioKey)
		fmt.Printf("   Rejections: %d/%d | Power: %.3f", est.Rejections, est.NumTrials, est.Power)
		if est.AnalyticPower != nil {
			fmt.Printf(" | Closed form: %.3f", *est.AnalyticPower)
		}
		fmt.Println()
		fmt.Printf("   Mean |stat|: %.3f | Mean p: %.4f\n",
			est.Diagnostics.MeanStatistic, est.Diagnostics.MeanPValue)
	}

	fmt.Printf("\n✅ SWEEP COMPLETED\n")
	fmt.Printf("Re-running with the same seed reproduces these estimates exactly.\n")
}

func newAnalyticCmd() *cobra.Command {
	var meanA, meanB, stdDev, probA, probB, alpha float64
	var sizes []int
	var proportions bool

	cmd := &cobra.Command{
		Use:   "analytic",
		Short: "Print closed-form power approximations without simulating",
		Long: `Print the normal-approximation power for each sample size. Useful as a
sanity check against a Monte-Carlo sweep of the same scenarios.

Example: gopower-cli analytic --mean-a 8 --mean-b 7 --sd 2 --sizes 20,50,100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("=== CLOSED-FORM POWER ===\n")
			for _, n := range sizes {
				var p float64
				if proportions {
					p = analytic.TwoProportionPower(probA, probB, n, alpha)
				} else {
					p = analytic.TwoSampleMeanPower(meanA, meanB, stdDev, stdDev, n, alpha)
				}
				fmt.Printf("n=%-5d power=%.3f\n", n, p)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&meanA, "mean-a", 8, "Group A mean")
	cmd.Flags().Float64Var(&meanB, "mean-b", 7, "Group B mean")
	cmd.Flags().Float64Var(&stdDev, "sd", 2, "Common standard deviation")
	cmd.Flags().BoolVar(&proportions, "proportions", false, "Compare proportions instead of means")
	cmd.Flags().Float64Var(&probA, "prob-a", 0.5, "Group A success probability")
	cmd.Flags().Float64Var(&probB, "prob-b", 0.3, "Group B success probability")
	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{20, 50, 100}, "Per-group sample sizes")
	cmd.Flags().Float64Var(&alpha, "alpha", decision.DefaultAlpha, "Significance level")

	return cmd
}

func newSampleSizeCmd() *cobra.Command {
	var effect, targetPower, alpha float64

	cmd := &cobra.Command{
		Use:   "samplesize",
		Short: "Solve for the per-group sample size that reaches a target power",
		Long: `Invert the closed-form power approximation to find the smallest per-group
sample size reaching the target power for a standardized effect size.

Example: gopower-cli samplesize --effect 0.5 --power 0.9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := analytic.RequiredSampleSize(effect, targetPower, alpha)
			if err != nil {
				return err
			}
			fmt.Printf("Effect size: %.3f | Target power: %.2f | Alpha: %.3f\n", effect, targetPower, alpha)
			fmt.Printf("Required per-group sample size: %d\n", n)
			return nil
		},
	}

	cmd.Flags().Float64Var(&effect, "effect", 0.5, "Standardized effect size (Cohen's d)")
	cmd.Flags().Float64Var(&targetPower, "power", 0.9, "Target power")
	cmd.Flags().Float64Var(&alpha, "alpha", decision.DefaultAlpha, "Significance level")

	return cmd
}

func newExportCmd() *cobra.Command {
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "export [sweep-id]",
		Short: "Export a stored sweep to an .xlsx power curve",
		Long: `Load a persisted sweep from the database configured by DATABASE_URL and
write its power curve to an Excel workbook.

Example: DATABASE_URL=postgres://... gopower-cli export 0192f3a0-... --xlsx curve.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), core.SweepID(args[0]), xlsxPath)
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "power_curve.xlsx", "Output .xlsx path")

	return cmd
}

func runExport(ctx context.Context, id core.SweepID, xlsxPath string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repo := postgres.NewSweepRepository(db)
	result, err := repo.GetSweep(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load sweep %s: %w", id, err)
	}

	if err := excel.NewCurveWriter().WriteSweep(result, xlsxPath); err != nil {
		return fmt.Errorf("xlsx export failed: %w", err)
	}

	fmt.Printf("💾 Sweep %s exported to: %s\n", id, xlsxPath)
	return nil
}
