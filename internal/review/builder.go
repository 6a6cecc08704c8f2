// Package review implements the cross-model review core: building reviewer
// invocations, interpreting reviewer responses, and assembling the manual
// fallback when automated invocation is unavailable.
package review

import (
	"fmt"
	"strings"

	"github.com/crossvet/crossvet/internal/detect"
	"github.com/crossvet/crossvet/internal/family"
	"github.com/crossvet/crossvet/internal/models"
	"github.com/crossvet/crossvet/internal/strategy"
)

// Sampling priorities attached to every reviewer invocation. Review quality
// dominates; speed and cost barely matter for a one-shot evaluation.
const (
	intelligencePriority = 0.9
	speedPriority        = 0.2
	costPriority         = 0.3
)

// Builder turns review requests into reviewer invocations.
type Builder struct {
	catalog *strategy.Catalog
}

// NewBuilder creates a Builder over the given strategy catalog.
func NewBuilder(catalog *strategy.Catalog) *Builder {
	return &Builder{catalog: catalog}
}

// Build resolves the generation model, computes exclusion preferences and
// fallback hints, and renders the system and user prompts. It is
// deterministic for identical inputs and mutates no shared state.
func (b *Builder) Build(req models.ReviewRequest) (*models.Invocation, error) {
	generationModel := strings.TrimSpace(req.GenerationModel)
	if generationModel == "" {
		generationModel = detect.Detect(req.Authors)
	}
	if generationModel == "" {
		return nil, ErrMissingGenerationModel
	}

	if req.Strategy != "" && !models.IsValidStrategy(req.Strategy) {
		return nil, fmt.Errorf("unknown strategy: %s", req.Strategy)
	}
	if req.ReviewType != "" && !models.IsValidReviewType(req.ReviewType) {
		return nil, fmt.Errorf("unknown review type: %s", req.ReviewType)
	}

	payload, err := b.catalog.Instructions(req.Strategy)
	if err != nil {
		return nil, err
	}

	prefs := models.ModelPreferences{
		IntelligencePriority: intelligencePriority,
		SpeedPriority:        speedPriority,
		CostPriority:         costPriority,
		ExcludeModel:         generationModel,
		ExcludeFamily:        strings.ToLower(generationModel),
		FallbackHints:        family.FallbackHints(generationModel),
	}

	return &models.Invocation{
		SystemPrompt:    payload.SystemPrompt(req.ReviewType),
		UserMessage:     userMessage(req, generationModel),
		Preferences:     prefs,
		Strategy:        payload.Strategy,
		GenerationModel: generationModel,
	}, nil
}

// userMessage composes the user-facing turn: optional context, then the
// artifact in a language-tagged code fence.
func userMessage(req models.ReviewRequest, generationModel string) string {
	var b strings.Builder
	if req.Context != "" {
		b.WriteString(req.Context)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Review the following code. It was generated by %s; you must judge it on behavior alone.\n\n", generationModel)
	fmt.Fprintf(&b, "```%s\n%s\n```", req.Language, req.Artifact)
	return b.String()
}
