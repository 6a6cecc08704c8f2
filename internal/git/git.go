// Package git shells out to the git and gh CLIs to fetch authorship
// metadata for commits and pull requests. Failures here never abort a
// review; they only disable automatic generation-model detection.
package git

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/crossvet/crossvet/internal/models"
)

// Client defines the git operations crossvet needs. All methods take a repo
// path since reviews can target arbitrary checkouts.
type Client interface {
	CommitAuthors(path, ref string) ([]models.AuthorRecord, error)
	ShowFile(path, ref, file string) (string, error)
}

// RealClient implements Client using real git commands.
type RealClient struct{}

// NewClient returns a new RealClient.
func NewClient() *RealClient {
	return &RealClient{}
}

func gitCmd(path string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", path}, args...)
	out, err := exec.Command("git", fullArgs...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CommitAuthors returns the commit's author followed by any co-authors
// declared in Co-Authored-By trailers, in commit-message order.
func (c *RealClient) CommitAuthors(path, ref string) ([]models.AuthorRecord, error) {
	out, err := gitCmd(path, "show", "--no-patch", "--format=%an%n%ae%n%B", ref)
	if err != nil {
		return nil, err
	}

	lines := strings.SplitN(out, "\n", 3)
	if len(lines) < 2 {
		return nil, fmt.Errorf("unexpected git show output for %s", ref)
	}

	authors := []models.AuthorRecord{{Name: lines[0], Email: lines[1]}}
	if len(lines) == 3 {
		authors = append(authors, ParseCoAuthors(lines[2])...)
	}
	return authors, nil
}

// ShowFile returns the contents of a file at the given ref.
func (c *RealClient) ShowFile(path, ref, file string) (string, error) {
	return gitCmd(path, "show", fmt.Sprintf("%s:%s", ref, file))
}

// coAuthorRe matches commit trailers of the form
// "Co-Authored-By: Name <email>" (case-insensitive, per git convention).
var coAuthorRe = regexp.MustCompile(`(?im)^co-authored-by:\s*([^<]*?)\s*<([^>]*)>\s*$`)

// ParseCoAuthors extracts co-author records from a commit message body.
func ParseCoAuthors(message string) []models.AuthorRecord {
	var authors []models.AuthorRecord
	for _, m := range coAuthorRe.FindAllStringSubmatch(message, -1) {
		authors = append(authors, models.AuthorRecord{Name: m[1], Email: m[2]})
	}
	return authors
}
