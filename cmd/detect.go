package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crossvet/crossvet/internal/detect"
	"github.com/crossvet/crossvet/internal/git"
	"github.com/crossvet/crossvet/internal/models"
)

var (
	detectCommit string
	detectPR     int
	detectRepo   string
	detectPath   string
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect which AI model authored a commit or pull request",
	Long: `Detect the generation model from authorship metadata.

Looks at author names, emails, and logins (including Co-Authored-By
trailers) for the signatures AI coding tools leave behind.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return detectRun()
	},
}

func init() {
	detectCmd.Flags().StringVar(&detectCommit, "commit", "", "Commit ref to inspect")
	detectCmd.Flags().IntVar(&detectPR, "pr", 0, "Pull request number to inspect")
	detectCmd.Flags().StringVar(&detectRepo, "repo", "", "owner/repo for PR lookups")
	detectCmd.Flags().StringVar(&detectPath, "path", ".", "Repository path for commit lookups")
	rootCmd.AddCommand(detectCmd)
}

func detectRun() error {
	var (
		authors []models.AuthorRecord
		err     error
	)
	switch {
	case detectCommit != "":
		authors, err = git.NewClient().CommitAuthors(detectPath, detectCommit)
	case detectPR > 0:
		authors, err = git.NewGitHubClient().PRAuthors(detectRepo, detectPR)
	default:
		return fmt.Errorf("either --commit or --pr is required")
	}
	if err != nil {
		return err
	}

	ui.VerboseLog("inspecting %d author record(s)", len(authors))
	for _, a := range authors {
		ui.VerboseLog("author: name=%q email=%q login=%q", a.Name, a.Email, a.Login)
	}

	model := detect.Detect(authors)
	if model == "" {
		ui.Info("No AI model signature found in authorship metadata")
		return nil
	}

	ui.Success("Detected generation model: %s", model)
	return nil
}
