// Package strategy holds the review strategy catalog: the persona framing,
// focus guidance, and output schema each strategy imposes on the reviewer.
// The catalog is pure configuration; it is constructed once at startup and
// passed to the components that need it.
package strategy

import (
	"fmt"
	"strings"

	"github.com/crossvet/crossvet/internal/models"
)

// DefaultStrategy is used when the caller omits one. bias_aware is the
// deliberate default: it trades some scrutiny for fewer false positives.
const DefaultStrategy = models.StrategyBiasAware

// Payload bundles everything a strategy contributes to the reviewer prompt.
type Payload struct {
	Strategy models.Strategy

	// Persona is the framing paragraph that opens the system prompt.
	Persona string

	// Focus holds the per-review-type guidance section. Every strategy
	// supports all four review types.
	Focus map[models.ReviewType]string

	// Schema describes the exact JSON output contract.
	Schema string

	// MetricScale is the inclusive upper bound of the metric ratings this
	// template declares (lower bound is always 1).
	MetricScale int

	// RequiresBiasTriggers is true when the output schema includes the
	// biasTriggersFound field.
	RequiresBiasTriggers bool
}

// Catalog is the injected, read-only strategy configuration.
type Catalog struct {
	payloads map[models.Strategy]Payload
}

// NewCatalog builds the catalog with the built-in strategy templates.
func NewCatalog() *Catalog {
	c := &Catalog{payloads: make(map[models.Strategy]Payload)}
	for _, p := range builtinPayloads() {
		c.payloads[p.Strategy] = p
	}
	return c
}

// Instructions returns the payload for the given strategy. An empty strategy
// resolves to DefaultStrategy.
func (c *Catalog) Instructions(s models.Strategy) (Payload, error) {
	if s == "" {
		s = DefaultStrategy
	}
	p, ok := c.payloads[s]
	if !ok {
		return Payload{}, fmt.Errorf("unknown strategy: %s", s)
	}
	return p, nil
}

// SystemPrompt renders the full system prompt for a strategy and review
// type: persona, focus section, then the output schema.
func (p Payload) SystemPrompt(reviewType models.ReviewType) string {
	if reviewType == "" {
		reviewType = models.ReviewTypeGeneral
	}
	focus, ok := p.Focus[reviewType]
	if !ok {
		focus = p.Focus[models.ReviewTypeGeneral]
	}

	var b strings.Builder
	b.WriteString(p.Persona)
	b.WriteString("\n\n## Review Focus\n\n")
	b.WriteString(focus)
	b.WriteString("\n\n## Output Format\n\n")
	b.WriteString(p.Schema)
	return b.String()
}
