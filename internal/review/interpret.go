package review

import (
	"encoding/json"
	"strings"

	"github.com/crossvet/crossvet/internal/models"
	"github.com/crossvet/crossvet/internal/strategy"
)

// Interpreter validates raw reviewer output against the schema variant the
// active strategy template declares.
type Interpreter struct {
	catalog *strategy.Catalog
}

// NewInterpreter creates an Interpreter over the given catalog.
func NewInterpreter(catalog *strategy.Catalog) *Interpreter {
	return &Interpreter{catalog: catalog}
}

// wire mirrors the reviewer's JSON contract. Pointer fields distinguish
// absent from empty so validation can be strict.
type wireResult struct {
	Summary           string       `json:"summary"`
	Issues            *[]wireIssue `json:"issues"`
	Metrics           *wireMetrics `json:"metrics"`
	Alternative       string       `json:"alternative"`
	BiasTriggersFound *[]string    `json:"biasTriggersFound"`
}

type wireIssue struct {
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

type wireMetrics struct {
	ErrorHandling   *int `json:"errorHandling"`
	Performance     *int `json:"performance"`
	Security        *int `json:"security"`
	Maintainability *int `json:"maintainability"`
}

// Interpret parses the reviewer's text into a validated ReviewResult.
// Validation failures return a *MalformedResponseError; there is no partial
// recovery, because a silently coerced review defeats the point of the
// structured contract.
func (i *Interpreter) Interpret(raw string, s models.Strategy) (*models.ReviewResult, error) {
	payload, err := i.catalog.Instructions(s)
	if err != nil {
		return nil, err
	}

	body := extractJSON(raw)
	var w wireResult
	if err := json.Unmarshal([]byte(body), &w); err != nil {
		return nil, malformed(raw, "not valid JSON: %v", err)
	}

	if w.Issues == nil {
		return nil, malformed(raw, "missing required field: issues")
	}
	if w.Metrics == nil {
		return nil, malformed(raw, "missing required field: metrics")
	}
	if len(*w.Issues) == 0 && strings.TrimSpace(w.Summary) == "" {
		return nil, malformed(raw, "empty issues require a summary explaining what was verified")
	}

	issues := make([]models.Issue, 0, len(*w.Issues))
	for n, wi := range *w.Issues {
		sev := models.Severity(strings.ToLower(wi.Severity))
		if !models.IsValidSeverity(sev) {
			return nil, malformed(raw, "issue %d has unrecognized severity %q", n, wi.Severity)
		}
		issues = append(issues, models.Issue{
			Severity:    sev,
			Description: wi.Description,
			Suggestion:  wi.Suggestion,
		})
	}

	metrics, err := validateMetrics(raw, w.Metrics, payload.MetricScale)
	if err != nil {
		return nil, err
	}

	result := &models.ReviewResult{
		Strategy:    payload.Strategy,
		Summary:     w.Summary,
		Issues:      issues,
		Metrics:     metrics,
		Alternative: w.Alternative,
	}

	if payload.RequiresBiasTriggers {
		if w.BiasTriggersFound == nil {
			return nil, malformed(raw, "strategy %s requires biasTriggersFound", payload.Strategy)
		}
		result.BiasTriggersFound = *w.BiasTriggersFound
	}

	return result, nil
}

func validateMetrics(raw string, w *wireMetrics, scale int) (models.Metrics, error) {
	fields := []struct {
		name  string
		value *int
	}{
		{"errorHandling", w.ErrorHandling},
		{"performance", w.Performance},
		{"security", w.Security},
		{"maintainability", w.Maintainability},
	}
	for _, f := range fields {
		if f.value == nil {
			return models.Metrics{}, malformed(raw, "metrics missing field: %s", f.name)
		}
		if *f.value < 1 || *f.value > scale {
			return models.Metrics{}, malformed(raw, "metric %s=%d outside declared scale 1-%d", f.name, *f.value, scale)
		}
	}
	return models.Metrics{
		ErrorHandling:   *w.ErrorHandling,
		Performance:     *w.Performance,
		Security:        *w.Security,
		Maintainability: *w.Maintainability,
	}, nil
}

// extractJSON returns the contents of the first json-tagged fenced block, or
// the whole trimmed text when no such fence exists. A fenced and an unfenced
// response with identical contents interpret identically.
func extractJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)

	idx := strings.Index(trimmed, "```json")
	if idx < 0 {
		return trimmed
	}
	rest := trimmed[idx+len("```json"):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
