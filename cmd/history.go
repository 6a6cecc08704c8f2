package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crossvet/crossvet/internal/models"
	"github.com/crossvet/crossvet/internal/output"
	"github.com/crossvet/crossvet/internal/store"
)

var (
	historyStrategy string
	historyModel    string
	historyLimit    int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyRun(cmd)
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyStrategy, "strategy", "", "Filter by strategy")
	historyCmd.Flags().StringVar(&historyModel, "model", "", "Filter by generation model")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of reviews to show")
	rootCmd.AddCommand(historyCmd)
}

func historyRun(cmd *cobra.Command) error {
	s, err := getStore()
	if err != nil {
		return err
	}

	records, err := s.ListReviews(cmd.Context(), store.ReviewListFilter{
		Strategy:        models.Strategy(historyStrategy),
		GenerationModel: historyModel,
		Limit:           historyLimit,
	})
	if err != nil {
		return err
	}

	if len(records) == 0 {
		ui.Info("No recorded reviews")
		return nil
	}

	table := ui.Table([]string{"WHEN", "GENERATED BY", "REVIEWED BY", "STRATEGY", "ISSUES", "SUMMARY"})
	for _, r := range records {
		_ = table.Append([]string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.GenerationModel,
			r.ReviewModel,
			string(r.Strategy),
			issueCounts(r.Issues),
			truncate(r.Summary, 60),
		})
	}
	_ = table.Render()
	return nil
}

// issueCounts summarizes findings as "2 critical, 1 major, 3 minor",
// omitting empty severities.
func issueCounts(issues []models.Issue) string {
	counts := map[models.Severity]int{}
	for _, issue := range issues {
		counts[issue.Severity]++
	}

	var parts []string
	if n := counts[models.SeverityCritical]; n > 0 {
		parts = append(parts, output.Red(fmt.Sprintf("%d critical", n)))
	}
	if n := counts[models.SeverityMajor]; n > 0 {
		parts = append(parts, output.Yellow(fmt.Sprintf("%d major", n)))
	}
	if n := counts[models.SeverityMinor]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d minor", n))
	}
	if len(parts) == 0 {
		return "none"
	}

	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
