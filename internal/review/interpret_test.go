package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossvet/crossvet/internal/models"
	"github.com/crossvet/crossvet/internal/strategy"
)

func newTestInterpreter() *Interpreter {
	return NewInterpreter(strategy.NewCatalog())
}

const validAdversarial = `{
	"summary": "One real defect found.",
	"issues": [
		{"severity": "major", "description": "nil map write in handler", "suggestion": "initialize the map"}
	],
	"metrics": {"errorHandling": 2, "performance": 4, "security": 3, "maintainability": 4},
	"alternative": ""
}`

func TestInterpret_Valid(t *testing.T) {
	i := newTestInterpreter()

	result, err := i.Interpret(validAdversarial, models.StrategyAdversarial)
	require.NoError(t, err)

	assert.Equal(t, models.StrategyAdversarial, result.Strategy)
	assert.Equal(t, "One real defect found.", result.Summary)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, models.SeverityMajor, result.Issues[0].Severity)
	assert.Equal(t, 2, result.Metrics.ErrorHandling)
	assert.Equal(t, 4, result.Metrics.Maintainability)
	assert.Empty(t, result.BiasTriggersFound)
}

func TestInterpret_FencedAndUnfencedIdentical(t *testing.T) {
	i := newTestInterpreter()

	plain, err := i.Interpret(validAdversarial, models.StrategyAdversarial)
	require.NoError(t, err)

	fenced := "Here is my review:\n\n```json\n" + validAdversarial + "\n```\n\nLet me know if you need more."
	fromFence, err := i.Interpret(fenced, models.StrategyAdversarial)
	require.NoError(t, err)

	assert.Equal(t, plain, fromFence)
}

func TestInterpret_NotJSON(t *testing.T) {
	i := newTestInterpreter()

	_, err := i.Interpret("The code looks fine to me!", models.StrategyAdversarial)
	var malformedErr *MalformedResponseError
	require.ErrorAs(t, err, &malformedErr)
	assert.Equal(t, "The code looks fine to me!", malformedErr.Raw)
}

func TestInterpret_MissingIssues(t *testing.T) {
	i := newTestInterpreter()

	raw := `{"summary": "ok", "metrics": {"errorHandling": 1, "performance": 1, "security": 1, "maintainability": 1}}`
	_, err := i.Interpret(raw, models.StrategyAdversarial)
	var malformedErr *MalformedResponseError
	require.ErrorAs(t, err, &malformedErr)
	assert.Contains(t, malformedErr.Reason, "issues")
}

func TestInterpret_MissingMetrics(t *testing.T) {
	i := newTestInterpreter()

	raw := `{"summary": "ok", "issues": []}`
	_, err := i.Interpret(raw, models.StrategyAdversarial)
	var malformedErr *MalformedResponseError
	require.ErrorAs(t, err, &malformedErr)
	assert.Contains(t, malformedErr.Reason, "metrics")
}

func TestInterpret_EmptyIssuesRequireSummary(t *testing.T) {
	i := newTestInterpreter()

	raw := `{"summary": "  ", "issues": [], "metrics": {"errorHandling": 3, "performance": 3, "security": 3, "maintainability": 3}}`
	_, err := i.Interpret(raw, models.StrategyAdversarial)
	var malformedErr *MalformedResponseError
	require.ErrorAs(t, err, &malformedErr)

	raw = `{"summary": "Verified input handling and error paths; no defects found.", "issues": [], "metrics": {"errorHandling": 3, "performance": 3, "security": 3, "maintainability": 3}}`
	result, err := i.Interpret(raw, models.StrategyAdversarial)
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
}

func TestInterpret_MetricOutsideScale(t *testing.T) {
	i := newTestInterpreter()

	for _, value := range []int{0, 6, -1} {
		raw := fmt.Sprintf(`{"summary": "ok", "issues": [], "metrics": {"errorHandling": %d, "performance": 3, "security": 3, "maintainability": 3}}`, value)
		_, err := i.Interpret(raw, models.StrategyAdversarial)
		var malformedErr *MalformedResponseError
		require.ErrorAs(t, err, &malformedErr, "value %d should be rejected", value)
		assert.Contains(t, malformedErr.Reason, "scale")
	}
}

func TestInterpret_ScaleIsPerStrategy(t *testing.T) {
	i := newTestInterpreter()

	// 4 is valid on the adversarial 1-5 scale but outside bias_aware's 1-3.
	raw := `{
		"summary": "ok",
		"issues": [],
		"metrics": {"errorHandling": 4, "performance": 2, "security": 2, "maintainability": 2},
		"biasTriggersFound": []
	}`
	_, err := i.Interpret(raw, models.StrategyBiasAware)
	var malformedErr *MalformedResponseError
	require.ErrorAs(t, err, &malformedErr)

	_, err = i.Interpret(raw, models.StrategyAdversarial)
	require.NoError(t, err)
}

func TestInterpret_UnknownSeverity(t *testing.T) {
	i := newTestInterpreter()

	raw := `{
		"summary": "ok",
		"issues": [{"severity": "catastrophic", "description": "x", "suggestion": "y"}],
		"metrics": {"errorHandling": 3, "performance": 3, "security": 3, "maintainability": 3}
	}`
	_, err := i.Interpret(raw, models.StrategyAdversarial)
	var malformedErr *MalformedResponseError
	require.ErrorAs(t, err, &malformedErr)
	assert.Contains(t, malformedErr.Reason, "severity")
}

func TestInterpret_SeverityCaseInsensitive(t *testing.T) {
	i := newTestInterpreter()

	raw := `{
		"summary": "ok",
		"issues": [{"severity": "Critical", "description": "x", "suggestion": "y"}],
		"metrics": {"errorHandling": 3, "performance": 3, "security": 3, "maintainability": 3}
	}`
	result, err := i.Interpret(raw, models.StrategyAdversarial)
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, models.SeverityCritical, result.Issues[0].Severity)
}

func TestInterpret_BiasTriggersRequired(t *testing.T) {
	i := newTestInterpreter()

	raw := `{
		"summary": "ok",
		"issues": [],
		"metrics": {"errorHandling": 2, "performance": 2, "security": 2, "maintainability": 2}
	}`
	for _, s := range []models.Strategy{models.StrategyBiasAware, models.StrategyHybrid} {
		_, err := i.Interpret(raw, s)
		var malformedErr *MalformedResponseError
		require.ErrorAs(t, err, &malformedErr, "strategy %s", s)
		assert.Contains(t, malformedErr.Reason, "biasTriggersFound")
	}
}

func TestInterpret_BiasTriggersPopulated(t *testing.T) {
	i := newTestInterpreter()

	raw := `{
		"summary": "ok",
		"issues": [],
		"metrics": {"errorHandling": 2, "performance": 2, "security": 2, "maintainability": 2},
		"biasTriggersFound": ["authorship claim in header comment", "self-praising docstring"]
	}`
	result, err := i.Interpret(raw, models.StrategyBiasAware)
	require.NoError(t, err)
	assert.Equal(t, []string{"authorship claim in header comment", "self-praising docstring"}, result.BiasTriggersFound)
}

func TestInterpret_EmptyBiasTriggersAccepted(t *testing.T) {
	i := newTestInterpreter()

	raw := `{
		"summary": "ok",
		"issues": [],
		"metrics": {"errorHandling": 2, "performance": 2, "security": 2, "maintainability": 2},
		"biasTriggersFound": []
	}`
	result, err := i.Interpret(raw, models.StrategyHybrid)
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestInterpret_BiasTriggersSurviveSerialization(t *testing.T) {
	i := newTestInterpreter()

	raw := `{
		"summary": "ok",
		"issues": [],
		"metrics": {"errorHandling": 2, "performance": 2, "security": 2, "maintainability": 2},
		"biasTriggersFound": []
	}`
	result, err := i.Interpret(raw, models.StrategyBiasAware)
	require.NoError(t, err)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bias_triggers_found")
}

func TestInterpret_UnknownStrategy(t *testing.T) {
	i := newTestInterpreter()

	_, err := i.Interpret(validAdversarial, "nonsense")
	require.Error(t, err)
	var malformedErr *MalformedResponseError
	assert.False(t, errors.As(err, &malformedErr), "catalog errors are not response errors")
}
