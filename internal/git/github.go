package git

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/crossvet/crossvet/internal/models"
)

// GitHubClient wraps the gh CLI for pull request authorship metadata.
type GitHubClient interface {
	PRAuthors(repo string, number int) ([]models.AuthorRecord, error)
}

// RealGitHubClient implements GitHubClient using the gh CLI.
type RealGitHubClient struct{}

// NewGitHubClient returns a new RealGitHubClient.
func NewGitHubClient() *RealGitHubClient {
	return &RealGitHubClient{}
}

func ghCmd(args ...string) (string, error) {
	out, err := exec.Command("gh", args...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("gh %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("gh %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

type prView struct {
	Author struct {
		Login string `json:"login"`
		Name  string `json:"name"`
	} `json:"author"`
	Commits []struct {
		Authors []struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Login string `json:"login"`
			ID    string `json:"id"`
		} `json:"authors"`
		MessageBody string `json:"messageBody"`
	} `json:"commits"`
}

// PRAuthors returns the PR author followed by every distinct commit author
// and co-author, in PR order. Co-authors recorded only as commit trailers
// are parsed from the message bodies.
func (c *RealGitHubClient) PRAuthors(repo string, number int) ([]models.AuthorRecord, error) {
	args := []string{"pr", "view", fmt.Sprintf("%d", number), "--json", "author,commits"}
	if repo != "" {
		args = append(args, "--repo", repo)
	}
	out, err := ghCmd(args...)
	if err != nil {
		return nil, err
	}

	var view prView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		return nil, fmt.Errorf("parse pr view: %w", err)
	}

	seen := make(map[string]bool)
	var authors []models.AuthorRecord
	add := func(a models.AuthorRecord) {
		if a.IsEmpty() {
			return
		}
		key := strings.ToLower(a.Name + "|" + a.Email + "|" + a.Login)
		if seen[key] {
			return
		}
		seen[key] = true
		authors = append(authors, a)
	}

	add(models.AuthorRecord{Name: view.Author.Name, Login: view.Author.Login})
	for _, commit := range view.Commits {
		for _, a := range commit.Authors {
			add(models.AuthorRecord{Name: a.Name, Email: a.Email, Login: a.Login, ID: a.ID})
		}
		for _, a := range ParseCoAuthors(commit.MessageBody) {
			add(a)
		}
	}
	return authors, nil
}
