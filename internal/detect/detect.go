// Package detect resolves which model family authored an artifact from
// commit authorship metadata.
package detect

import (
	"strings"

	"github.com/crossvet/crossvet/internal/models"
)

// signature maps textual signals found in author metadata to a canonical
// model identifier.
type signature struct {
	signals []string
	model   string
}

// signatures is checked in order; more distinctive signals come first.
// Signals are matched by containment against the lowercased name, email,
// and login of each author.
var signatures = []signature{
	{signals: []string{"claude", "anthropic"}, model: "claude"},
	{signals: []string{"chatgpt", "openai", "gpt-", "codex"}, model: "gpt"},
	{signals: []string{"gemini", "bard", "google-labs-jules"}, model: "gemini"},
	{signals: []string{"copilot"}, model: "copilot"},
	{signals: []string{"cursor"}, model: "cursor"},
	{signals: []string{"devin"}, model: "devin"},
	{signals: []string{"aider"}, model: "aider"},
}

// Detect scans authors in order and returns the canonical model identifier
// of the first author that matches a known AI signature, or "" when none
// match. Signals are never aggregated across authors: the first confident
// match wins. Detection never fails; absent fields simply contribute
// nothing.
func Detect(authors []models.AuthorRecord) string {
	for _, author := range authors {
		haystack := strings.ToLower(author.Name) + "\x00" +
			strings.ToLower(author.Email) + "\x00" +
			strings.ToLower(author.Login)
		for _, sig := range signatures {
			for _, signal := range sig.signals {
				if strings.Contains(haystack, signal) {
					return sig.model
				}
			}
		}
	}
	return ""
}
