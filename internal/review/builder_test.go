package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossvet/crossvet/internal/family"
	"github.com/crossvet/crossvet/internal/models"
	"github.com/crossvet/crossvet/internal/strategy"
)

func newTestBuilder() *Builder {
	return NewBuilder(strategy.NewCatalog())
}

func TestBuild_ExplicitModel(t *testing.T) {
	b := newTestBuilder()

	inv, err := b.Build(models.ReviewRequest{
		Artifact:        "func main() {}",
		GenerationModel: "claude-3-opus",
		Language:        "go",
	})
	require.NoError(t, err)

	assert.Equal(t, "claude-3-opus", inv.GenerationModel)
	assert.Equal(t, "claude-3-opus", inv.Preferences.ExcludeModel)
	assert.Equal(t, "claude-3-opus", inv.Preferences.ExcludeFamily)
	assert.Equal(t, strategy.DefaultStrategy, inv.Strategy)
	assert.NotEmpty(t, inv.SystemPrompt)
	assert.Contains(t, inv.UserMessage, "```go\nfunc main() {}\n```")
	assert.Contains(t, inv.UserMessage, "generated by claude-3-opus")
}

func TestBuild_MissingModelNoAuthors(t *testing.T) {
	b := newTestBuilder()

	_, err := b.Build(models.ReviewRequest{Artifact: "code"})
	assert.ErrorIs(t, err, ErrMissingGenerationModel)

	_, err = b.Build(models.ReviewRequest{
		Artifact: "code",
		Authors:  []models.AuthorRecord{{Name: "Jane Doe", Email: "jane@example.com"}},
	})
	assert.ErrorIs(t, err, ErrMissingGenerationModel)
}

func TestBuild_ModelDetectedFromAuthors(t *testing.T) {
	b := newTestBuilder()

	inv, err := b.Build(models.ReviewRequest{
		Artifact: "code",
		Authors: []models.AuthorRecord{
			{Name: "Jane Doe", Email: "jane@example.com"},
			{Name: "Claude", Email: "noreply@anthropic.com"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "claude", inv.GenerationModel)
}

func TestBuild_ExplicitModelWinsOverAuthors(t *testing.T) {
	b := newTestBuilder()

	inv, err := b.Build(models.ReviewRequest{
		Artifact:        "code",
		GenerationModel: "gpt-4o",
		Authors:         []models.AuthorRecord{{Name: "Claude"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", inv.GenerationModel)
}

func TestBuild_HintsExcludeGenerationFamily(t *testing.T) {
	b := newTestBuilder()

	inv, err := b.Build(models.ReviewRequest{
		Artifact:        "code",
		GenerationModel: "gpt-4o",
	})
	require.NoError(t, err)

	require.NotEmpty(t, inv.Preferences.FallbackHints)
	for _, hint := range inv.Preferences.FallbackHints {
		assert.False(t, family.Overlap(hint, "gpt-4o"),
			"hint %q overlaps the generation model", hint)
	}
}

func TestBuild_Priorities(t *testing.T) {
	b := newTestBuilder()

	inv, err := b.Build(models.ReviewRequest{Artifact: "code", GenerationModel: "gpt-4o"})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, inv.Preferences.IntelligencePriority, 0.001)
	assert.InDelta(t, 0.2, inv.Preferences.SpeedPriority, 0.001)
	assert.InDelta(t, 0.3, inv.Preferences.CostPriority, 0.001)
}

func TestBuild_UnknownStrategy(t *testing.T) {
	b := newTestBuilder()

	_, err := b.Build(models.ReviewRequest{
		Artifact:        "code",
		GenerationModel: "gpt-4o",
		Strategy:        "nonsense",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}

func TestBuild_UnknownReviewType(t *testing.T) {
	b := newTestBuilder()

	_, err := b.Build(models.ReviewRequest{
		Artifact:        "code",
		GenerationModel: "gpt-4o",
		ReviewType:      "vibes",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown review type")
}

func TestBuild_ContextPrecedesCode(t *testing.T) {
	b := newTestBuilder()

	inv, err := b.Build(models.ReviewRequest{
		Artifact:        "code",
		GenerationModel: "gpt-4o",
		Context:         "This handler serves the login endpoint.",
	})
	require.NoError(t, err)
	assert.Contains(t, inv.UserMessage, "This handler serves the login endpoint.")
	assert.Less(t,
		strings.Index(inv.UserMessage, "login endpoint"),
		strings.Index(inv.UserMessage, "```"),
		"context should appear before the code fence")
}

func TestBuild_Deterministic(t *testing.T) {
	b := newTestBuilder()
	req := models.ReviewRequest{
		Artifact:        "code",
		GenerationModel: "claude-3-opus",
		Strategy:        models.StrategyHybrid,
		ReviewType:      models.ReviewTypeSecurity,
	}

	first, err := b.Build(req)
	require.NoError(t, err)
	second, err := b.Build(req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
