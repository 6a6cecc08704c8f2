package models

import "time"

// Strategy selects the review framing and the output schema the reviewer
// must follow.
type Strategy string

const (
	StrategyAdversarial Strategy = "adversarial"
	StrategyBiasAware   Strategy = "bias_aware"
	StrategyHybrid      Strategy = "hybrid"
	StrategyGeneral     Strategy = "general"
)

// ValidStrategies lists every recognized strategy.
var ValidStrategies = []Strategy{
	StrategyAdversarial,
	StrategyBiasAware,
	StrategyHybrid,
	StrategyGeneral,
}

// IsValidStrategy reports whether s names a known strategy.
func IsValidStrategy(s Strategy) bool {
	for _, v := range ValidStrategies {
		if s == v {
			return true
		}
	}
	return false
}

// ReviewType narrows the topical focus of a review independent of strategy.
type ReviewType string

const (
	ReviewTypeSecurity        ReviewType = "security"
	ReviewTypePerformance     ReviewType = "performance"
	ReviewTypeMaintainability ReviewType = "maintainability"
	ReviewTypeGeneral         ReviewType = "general"
)

// IsValidReviewType reports whether t names a known review type.
func IsValidReviewType(t ReviewType) bool {
	switch t {
	case ReviewTypeSecurity, ReviewTypePerformance, ReviewTypeMaintainability, ReviewTypeGeneral:
		return true
	}
	return false
}

// ReviewRequest is the caller-facing input to a cross-model review.
// GenerationModel may be empty when Authors carry enough signal for
// detection.
type ReviewRequest struct {
	Artifact        string
	GenerationModel string
	Authors         []AuthorRecord
	Strategy        Strategy
	ReviewType      ReviewType
	Language        string
	Context         string
}

// ModelPreferences carries the sampling preferences attached to a reviewer
// invocation. Computed fresh per request, never persisted.
type ModelPreferences struct {
	IntelligencePriority float64
	SpeedPriority        float64
	CostPriority         float64
	ExcludeModel         string
	ExcludeFamily        string
	FallbackHints        []string
}

// Invocation is a fully rendered reviewer request, ready to hand to an
// Invoker (MCP sampling or a direct API client).
type Invocation struct {
	SystemPrompt    string
	UserMessage     string
	Preferences     ModelPreferences
	Strategy        Strategy
	GenerationModel string
}

// Severity classifies a single review finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// IsValidSeverity reports whether s is a recognized severity.
func IsValidSeverity(s Severity) bool {
	switch s {
	case SeverityCritical, SeverityMajor, SeverityMinor:
		return true
	}
	return false
}

// Issue is a single finding from the reviewer.
type Issue struct {
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion"`
}

// Metrics holds the per-aspect integer ratings. The valid range is declared
// by the active strategy template, not fixed here.
type Metrics struct {
	ErrorHandling   int `json:"errorHandling"`
	Performance     int `json:"performance"`
	Security        int `json:"security"`
	Maintainability int `json:"maintainability"`
}

// ReviewResult is the validated structured outcome of a review.
// BiasTriggersFound is non-nil only for strategies that include bias
// detection (bias_aware, hybrid), and stays in the serialized form even
// when empty.
type ReviewResult struct {
	ReviewModel       string   `json:"review_model"`
	Strategy          Strategy `json:"strategy"`
	Summary           string   `json:"summary"`
	Issues            []Issue  `json:"issues"`
	Metrics           Metrics  `json:"metrics"`
	Alternative       string   `json:"alternative"`
	BiasTriggersFound []string `json:"bias_triggers_found"`
}

// CriticalCount returns the number of critical findings.
func (r *ReviewResult) CriticalCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityCritical {
			n++
		}
	}
	return n
}

// ManualFallback is the human-actionable alternative produced when the
// automated cross-model invocation cannot be completed.
type ManualFallback struct {
	RecommendedModels []string `json:"recommended_models"`
	ManualPrompt      string   `json:"manual_prompt"`
	Reason            string   `json:"reason"`
}

// ReviewRecord is a persisted review outcome.
type ReviewRecord struct {
	ID              string
	GenerationModel string
	ReviewModel     string
	Strategy        Strategy
	ReviewType      ReviewType
	Language        string
	Summary         string
	Issues          []Issue
	Metrics         Metrics
	Alternative     string
	BiasTriggers    []string
	CreatedAt       time.Time
}
