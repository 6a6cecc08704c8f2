package review

import (
	"fmt"
	"strings"

	"github.com/crossvet/crossvet/internal/family"
	"github.com/crossvet/crossvet/internal/models"
)

// Advisor assembles the manual fallback handed to a human when automated
// cross-model invocation cannot be completed. It performs no network or
// process calls; everything here is string assembly.
type Advisor struct{}

// NewAdvisor returns an Advisor.
func NewAdvisor() *Advisor {
	return &Advisor{}
}

// Advise renders the invocation as a copy-pasteable prompt plus a list of
// reviewer models that do not overlap the generation model's family.
func (a *Advisor) Advise(inv *models.Invocation, cause error) *models.ManualFallback {
	recommended := make([]string, 0, len(inv.Preferences.FallbackHints))
	for _, hint := range inv.Preferences.FallbackHints {
		if !family.Overlap(hint, inv.GenerationModel) {
			recommended = append(recommended, hint)
		}
	}

	var b strings.Builder
	b.WriteString("Paste the following into a model from one of the recommended families ")
	fmt.Fprintf(&b, "(avoid anything in the %s family, which generated this code):\n\n", inv.GenerationModel)
	b.WriteString("--- SYSTEM PROMPT ---\n")
	b.WriteString(inv.SystemPrompt)
	b.WriteString("\n\n--- USER MESSAGE ---\n")
	b.WriteString(inv.UserMessage)
	b.WriteString("\n")

	reason := "automated cross-model review could not be completed"
	if cause != nil {
		reason = fmt.Sprintf("%s: %v", reason, cause)
	}

	return &models.ManualFallback{
		RecommendedModels: recommended,
		ManualPrompt:      b.String(),
		Reason:            reason,
	}
}
