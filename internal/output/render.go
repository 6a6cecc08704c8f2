package output

import (
	"fmt"

	"github.com/crossvet/crossvet/internal/models"
)

// RenderResult prints a validated review result: summary, findings table,
// metric ratings, and the proposed alternative.
func (u *UI) RenderResult(result *models.ReviewResult, scale int) {
	fmt.Fprintf(u.Out, "\nReview by %s (%s strategy)\n\n", Cyan(result.ReviewModel), result.Strategy)
	fmt.Fprintf(u.Out, "%s\n\n", result.Summary)

	if len(result.Issues) > 0 {
		table := u.Table([]string{"SEVERITY", "DESCRIPTION", "SUGGESTION"})
		for _, issue := range result.Issues {
			_ = table.Append([]string{
				SeverityColor(string(issue.Severity)),
				issue.Description,
				issue.Suggestion,
			})
		}
		_ = table.Render()
		fmt.Fprintln(u.Out)
	}

	metrics := u.Table([]string{"METRIC", "RATING"})
	_ = metrics.Append([]string{"Error handling", MetricColor(result.Metrics.ErrorHandling, scale)})
	_ = metrics.Append([]string{"Performance", MetricColor(result.Metrics.Performance, scale)})
	_ = metrics.Append([]string{"Security", MetricColor(result.Metrics.Security, scale)})
	_ = metrics.Append([]string{"Maintainability", MetricColor(result.Metrics.Maintainability, scale)})
	_ = metrics.Render()

	if result.Alternative != "" {
		fmt.Fprintf(u.Out, "\nAlternative approach: %s\n", result.Alternative)
	}
	if len(result.BiasTriggersFound) > 0 {
		fmt.Fprintf(u.Out, "\nBias triggers found:\n")
		for _, t := range result.BiasTriggersFound {
			fmt.Fprintf(u.Out, "  - %s\n", t)
		}
	}
}

// RenderFallback prints the manual fallback: why automation failed, which
// model families to use, and the prompt to paste.
func (u *UI) RenderFallback(fb *models.ManualFallback) {
	u.Warning("%s", fb.Reason)
	if len(fb.RecommendedModels) > 0 {
		fmt.Fprintf(u.Out, "\nRecommended reviewer families: %s\n", Green(fmt.Sprint(fb.RecommendedModels)))
	}
	fmt.Fprintf(u.Out, "\n%s\n", fb.ManualPrompt)
}
