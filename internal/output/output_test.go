package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossvet/crossvet/internal/models"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestInfo(t *testing.T) {
	u, out, _ := newTestUI()
	u.Info("hello %s", "world")
	assert.Contains(t, out.String(), "hello world")
}

func TestSuccess(t *testing.T) {
	u, out, _ := newTestUI()
	u.Success("done %d", 42)
	assert.Contains(t, out.String(), "done 42")
}

func TestWarning(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Warning("careful %s", "now")
	assert.Contains(t, errOut.String(), "careful now")
}

func TestError(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Error("failed %s", "badly")
	assert.Contains(t, errOut.String(), "failed badly")
}

func TestVerboseLog_Enabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = true
	u.VerboseLog("detail %d", 1)
	assert.Contains(t, out.String(), "detail 1")
}

func TestVerboseLog_Disabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = false
	u.VerboseLog("detail %d", 1)
	assert.Empty(t, out.String())
}

func TestColorHelpers(t *testing.T) {
	// Color helpers should return non-empty strings
	assert.NotEmpty(t, Cyan("test"))
	assert.NotEmpty(t, Green("test"))
	assert.NotEmpty(t, Yellow("test"))
	assert.NotEmpty(t, Red("test"))
}

func TestSeverityColor(t *testing.T) {
	assert.NotEmpty(t, SeverityColor("critical"))
	assert.NotEmpty(t, SeverityColor("Major"))
	assert.NotEmpty(t, SeverityColor("minor"))
	assert.Equal(t, "unknown", SeverityColor("unknown"))
}

func TestMetricColor(t *testing.T) {
	assert.Contains(t, MetricColor(3, 3), "3/3")
	assert.Contains(t, MetricColor(1, 5), "1/5")
	assert.Contains(t, MetricColor(4, 5), "4/5")
}

func TestTable(t *testing.T) {
	u, out, _ := newTestUI()
	table := u.Table([]string{"Metric", "Rating"})
	require.NotNil(t, table)

	_ = table.Append([]string{"security", "3/3"})
	_ = table.Append([]string{"performance", "2/3"})
	err := table.Render()
	require.NoError(t, err)

	result := out.String()
	assert.True(t, strings.Contains(result, "security") || strings.Contains(result, "SECURITY"))
	assert.Contains(t, result, "3/3")
}

func TestRenderResult(t *testing.T) {
	u, out, _ := newTestUI()

	result := &models.ReviewResult{
		ReviewModel: "gpt-4o",
		Strategy:    models.StrategyBiasAware,
		Summary:     "One issue found.",
		Issues: []models.Issue{
			{Severity: models.SeverityMajor, Description: "unchecked error", Suggestion: "handle it"},
		},
		Metrics:           models.Metrics{ErrorHandling: 2, Performance: 3, Security: 3, Maintainability: 2},
		Alternative:       "Use a worker pool.",
		BiasTriggersFound: []string{"confident comment"},
	}
	u.RenderResult(result, 3)

	text := out.String()
	assert.Contains(t, text, "gpt-4o")
	assert.Contains(t, text, "One issue found.")
	assert.Contains(t, text, "unchecked error")
	assert.Contains(t, text, "2/3")
	assert.Contains(t, text, "Use a worker pool.")
	assert.Contains(t, text, "confident comment")
}

func TestRenderResult_NoIssues(t *testing.T) {
	u, out, _ := newTestUI()

	result := &models.ReviewResult{
		ReviewModel: "gemini-1.5-pro",
		Strategy:    models.StrategyGeneral,
		Summary:     "Verified, no defects.",
		Metrics:     models.Metrics{ErrorHandling: 5, Performance: 5, Security: 5, Maintainability: 5},
	}
	u.RenderResult(result, 5)

	text := out.String()
	assert.Contains(t, text, "Verified, no defects.")
	assert.NotContains(t, text, "SEVERITY")
}

func TestRenderFallback(t *testing.T) {
	u, out, errOut := newTestUI()

	fb := &models.ManualFallback{
		RecommendedModels: []string{"gpt", "gemini"},
		ManualPrompt:      "--- SYSTEM PROMPT ---\nreview this",
		Reason:            "sampling unavailable",
	}
	u.RenderFallback(fb)

	assert.Contains(t, errOut.String(), "sampling unavailable")
	text := out.String()
	assert.Contains(t, text, "gpt")
	assert.Contains(t, text, "--- SYSTEM PROMPT ---")
}
