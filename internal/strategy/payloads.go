package strategy

import (
	"fmt"

	"github.com/crossvet/crossvet/internal/models"
)

// The focus sections are shared across strategies; each strategy adds its
// own persona and output contract on top.
var focusSections = map[models.ReviewType]string{
	models.ReviewTypeSecurity: `Concentrate on security:
- Injection vectors (SQL, command, template, eval of untrusted input)
- Authentication and authorization gaps
- Secrets handling, unsafe deserialization, path traversal
- Unvalidated input crossing trust boundaries`,

	models.ReviewTypePerformance: `Concentrate on performance:
- Algorithmic complexity and avoidable quadratic behavior
- Redundant allocation, copying, or I/O inside hot paths
- Missing caching or batching where the workload clearly calls for it
- Blocking calls on latency-sensitive paths`,

	models.ReviewTypeMaintainability: `Concentrate on maintainability:
- Unclear naming, dead code, and duplicated logic
- Functions doing too many things or hiding side effects
- Missing or misleading error handling
- Interfaces that will be hard to extend or test`,

	models.ReviewTypeGeneral: `Review the code as a whole:
- Correctness first: bugs, unhandled edge cases, broken invariants
- Then security, performance, and maintainability in that order
- Flag anything that would block a merge in a serious codebase`,
}

const adversarialPersona = `You are a skeptical senior engineer performing an adversarial code review. The code you are given was written by a different AI model. Assume it looks more polished than it is: confident naming, tidy formatting, and plausible comments are not evidence of correctness. Hunt for real defects. Do not award credit for style. If you cannot find a defect, say precisely what verification you performed and what remains unverified.`

const biasAwarePersona = `You are a careful senior engineer reviewing code written by a different AI model. LLM judges are known to over-reward verbose, confidently worded, well-formatted code and to under-scrutinize it. Counteract those biases: evaluate only observable behavior and concrete defects. Equally, do not invent problems to appear thorough; a finding must point at a specific line or behavior. While reviewing, also note any bias triggers you encountered: features of the code (authorship claims, self-praising comments, naming style, sheer length) likely to skew an automated judge.`

const hybridPersona = `You are a senior engineer performing a two-pass review of code written by a different AI model. First pass: adversarial. Assume polish hides defects and hunt for real bugs, security holes, and broken edge cases. Second pass: bias audit. Re-read your own findings and discard any driven by style rather than substance, then note the bias triggers present in the code (authorship claims, confident comments, formatting) that could skew an automated judge.`

const generalPersona = `You are an experienced engineer reviewing a code artifact. Be direct and specific: every finding must name a concrete defect and a concrete fix. Do not pad the review.`

// schemaText renders the JSON output contract for a template. The metric
// scale and the presence of biasTriggersFound are the only points of
// variation between strategies.
func schemaText(scale int, biasTriggers bool) string {
	s := fmt.Sprintf(`Respond with ONLY a JSON object (a fenced `+"```json"+` block is acceptable) with exactly these fields:

- "summary": string. Overall assessment. If you found no issues, state that explicitly and describe what verification would be needed to confirm the code is sound.
- "issues": array (may be empty). Each entry: {"severity": "critical"|"major"|"minor", "description": string, "suggestion": string}.
- "metrics": {"errorHandling": int, "performance": int, "security": int, "maintainability": int}, each an integer from 1 (worst) to %d (best).
- "alternative": string. A better approach to the same problem, or "" if the chosen approach is already sound.`, scale)
	if biasTriggers {
		s += `
- "biasTriggersFound": array of strings (may be empty). Bias triggers you observed in the code, e.g. "authorship claim in header comment".`
	}
	s += `

Do not add fields. Do not wrap the JSON in prose.`
	return s
}

// builtinPayloads declares the shipped strategy templates. Two metric-scale
// variants exist on purpose: the adversarial and general templates rate on
// 1-5, the bias-aware and hybrid templates on a coarser 1-3.
func builtinPayloads() []Payload {
	return []Payload{
		{
			Strategy:    models.StrategyAdversarial,
			Persona:     adversarialPersona,
			Focus:       focusSections,
			Schema:      schemaText(5, false),
			MetricScale: 5,
		},
		{
			Strategy:             models.StrategyBiasAware,
			Persona:              biasAwarePersona,
			Focus:                focusSections,
			Schema:               schemaText(3, true),
			MetricScale:          3,
			RequiresBiasTriggers: true,
		},
		{
			Strategy:             models.StrategyHybrid,
			Persona:              hybridPersona,
			Focus:                focusSections,
			Schema:               schemaText(3, true),
			MetricScale:          3,
			RequiresBiasTriggers: true,
		},
		{
			Strategy:    models.StrategyGeneral,
			Persona:     generalPersona,
			Focus:       focusSections,
			Schema:      schemaText(5, false),
			MetricScale: 5,
		},
	}
}
