package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crossvet/crossvet/internal/git"
	"github.com/crossvet/crossvet/internal/llm"
	"github.com/crossvet/crossvet/internal/models"
	"github.com/crossvet/crossvet/internal/review"
)

var (
	reviewModel    string
	reviewCommit   string
	reviewPR       int
	reviewRepo     string
	reviewPath     string
	reviewStrategy string
	reviewType     string
	reviewLanguage string
	reviewContext  string
	reviewNoStore  bool
)

var reviewCmd = &cobra.Command{
	Use:   "review <file>",
	Short: "Review a file with a model from a different family",
	Long: `Review a file using the Anthropic API as the reviewer.

The generation model is taken from --model, or detected from the authorship
metadata of --commit or --pr. The review fails over to a manual prompt when
the configured reviewer model shares a family with the generation model.

Pass '-' as the file to read the artifact from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reviewRun(cmd, args[0])
	},
}

func init() {
	reviewCmd.Flags().StringVar(&reviewModel, "model", "", "Model that generated the code")
	reviewCmd.Flags().StringVar(&reviewCommit, "commit", "", "Commit ref to detect the generation model from")
	reviewCmd.Flags().IntVar(&reviewPR, "pr", 0, "Pull request number to detect the generation model from")
	reviewCmd.Flags().StringVar(&reviewRepo, "repo", "", "owner/repo for PR lookups")
	reviewCmd.Flags().StringVar(&reviewPath, "path", ".", "Repository path for commit lookups")
	reviewCmd.Flags().StringVar(&reviewStrategy, "strategy", "", "Review strategy: adversarial, bias_aware, hybrid, general")
	reviewCmd.Flags().StringVarP(&reviewType, "type", "t", "", "Focus: security, performance, maintainability, general")
	reviewCmd.Flags().StringVar(&reviewLanguage, "language", "", "Language tag (default: inferred from file extension)")
	reviewCmd.Flags().StringVar(&reviewContext, "context", "", "Free-text context shown to the reviewer")
	reviewCmd.Flags().BoolVar(&reviewNoStore, "no-history", false, "Do not record this review in history")
	rootCmd.AddCommand(reviewCmd)
}

func reviewRun(cmd *cobra.Command, file string) error {
	artifact, err := readArtifact(file)
	if err != nil {
		return err
	}

	language := reviewLanguage
	if language == "" && file != "-" {
		language = languageFromExt(file)
	}

	strategyName := reviewStrategy
	if strategyName == "" {
		strategyName = viper.GetString("review.strategy")
	}

	req := models.ReviewRequest{
		Artifact:        artifact,
		GenerationModel: reviewModel,
		Strategy:        models.Strategy(strategyName),
		ReviewType:      models.ReviewType(reviewType),
		Language:        language,
		Context:         reviewContext,
	}

	if req.GenerationModel == "" {
		authors, err := resolveAuthors()
		if err != nil {
			// Detection is best-effort; the review can still proceed if the
			// model was given some other way (it wasn't, so Build will say so).
			ui.Warning("authorship lookup failed: %v", err)
		}
		req.Authors = authors
	}

	invoker := llm.NewClient(
		viper.GetString("anthropic.api_key"),
		viper.GetString("anthropic.model"),
	)

	builder := review.NewBuilder(catalog)
	interpreter := review.NewInterpreter(catalog)
	orchestrator := review.NewOrchestrator(builder, interpreter)

	ui.VerboseLog("reviewing %s with strategy %s", file, strategyName)
	outcome, err := orchestrator.Run(cmd.Context(), invoker, req)
	if err != nil {
		return err
	}

	if outcome.Fallback != nil {
		ui.RenderFallback(outcome.Fallback)
		return nil
	}

	payload, err := catalog.Instructions(outcome.Result.Strategy)
	if err != nil {
		return err
	}
	ui.RenderResult(outcome.Result, payload.MetricScale)

	if !reviewNoStore && viper.GetBool("review.history") {
		recordReview(cmd, req, outcome)
	}
	return nil
}

// recordReview persists the outcome; history failures never fail the review.
func recordReview(cmd *cobra.Command, req models.ReviewRequest, outcome *review.Outcome) {
	s, err := getStore()
	if err != nil {
		ui.Warning("review history unavailable: %v", err)
		return
	}

	rt := req.ReviewType
	if rt == "" {
		rt = models.ReviewTypeGeneral
	}
	record := &models.ReviewRecord{
		GenerationModel: outcome.GenerationModel,
		ReviewModel:     outcome.Result.ReviewModel,
		Strategy:        outcome.Result.Strategy,
		ReviewType:      rt,
		Language:        req.Language,
		Summary:         outcome.Result.Summary,
		Issues:          outcome.Result.Issues,
		Metrics:         outcome.Result.Metrics,
		Alternative:     outcome.Result.Alternative,
		BiasTriggers:    outcome.Result.BiasTriggersFound,
	}
	if err := s.CreateReview(cmd.Context(), record); err != nil {
		ui.Warning("failed to record review: %v", err)
	}
}

func readArtifact(file string) (string, error) {
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file, err)
	}
	return string(data), nil
}

// resolveAuthors fetches authorship metadata for --commit or --pr.
func resolveAuthors() ([]models.AuthorRecord, error) {
	if reviewCommit != "" {
		return git.NewClient().CommitAuthors(reviewPath, reviewCommit)
	}
	if reviewPR > 0 {
		return git.NewGitHubClient().PRAuthors(reviewRepo, reviewPR)
	}
	return nil, nil
}

var extLanguages = map[string]string{
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".tsx":  "tsx",
	".rs":   "rust",
	".java": "java",
	".rb":   "ruby",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".sh":   "bash",
	".sql":  "sql",
	".yaml": "yaml",
	".yml":  "yaml",
}

func languageFromExt(file string) string {
	return extLanguages[strings.ToLower(filepath.Ext(file))]
}
