package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gopower/domain/power"
)

// BuildMarkdown renders one sweep as a markdown summary: a header with the
// run configuration and a power-curve table in estimate order.
func BuildMarkdown(result *power.SweepResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Power sweep %s\n\n", result.SweepID)
	fmt.Fprintf(&b, "Sampler `%s`, decision rule `%s`, %d trials per scenario, seed %d.\n",
		result.SamplerName, result.RuleName, result.NumTrials, result.Seed)
	fmt.Fprintf(&b, "Completed %s in %dms.\n\n", result.CreatedAt, result.RuntimeMs)

	b.WriteString("| Sample size | Rejections | Power | Closed form | Mean p-value |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, e := range result.Estimates {
		closedForm := "-"
		if e.AnalyticPower != nil {
			closedForm = fmt.Sprintf("%.3f", *e.AnalyticPower)
		}
		fmt.Fprintf(&b, "| %.0f | %d/%d | %.3f | %s | %.3f |\n",
			e.Param, e.Rejections, e.NumTrials, e.Power, closedForm, e.Diagnostics.MeanPValue)
	}

	return b.String()
}

// RenderHTML converts a markdown report to HTML for the API's report endpoint
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	return markdown.ToHTML([]byte(md), p, renderer)
}
