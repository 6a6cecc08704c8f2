package review

import (
	"context"
	"fmt"

	"github.com/crossvet/crossvet/internal/models"
)

// Response is what an Invoker returns: the identity of the model that
// actually reviewed, and its raw text output.
type Response struct {
	Model   string
	Content string
}

// Invoker dispatches a rendered invocation to an external model-sampling
// capability. Implementations may or may not be able to honor the exclusion
// preferences; if they cannot, they fail and the caller falls back.
type Invoker interface {
	Invoke(ctx context.Context, inv *models.Invocation) (*Response, error)
}

// Outcome is the result of one orchestrated review: exactly one of Result
// or Fallback is set. GenerationModel is the resolved identifier the
// exclusion was computed from.
type Outcome struct {
	GenerationModel string
	Result          *models.ReviewResult
	Fallback        *models.ManualFallback
}

// Orchestrator wires the builder, interpreter, and advisor around a single
// invocation attempt.
type Orchestrator struct {
	builder     *Builder
	interpreter *Interpreter
	advisor     *Advisor
}

// NewOrchestrator creates an Orchestrator from the core components.
func NewOrchestrator(b *Builder, i *Interpreter) *Orchestrator {
	return &Orchestrator{builder: b, interpreter: i, advisor: NewAdvisor()}
}

// Run performs one review. Invocation failure is recovered into a
// ManualFallback (a single attempt, never retried: repeated sampling against
// a non-cooperating client is not assumed idempotent). A response that fails
// interpretation is a hard error, since an invalid structured result is
// worse than an explicit failure.
func (o *Orchestrator) Run(ctx context.Context, invoker Invoker, req models.ReviewRequest) (*Outcome, error) {
	inv, err := o.builder.Build(req)
	if err != nil {
		return nil, err
	}

	resp, err := invoker.Invoke(ctx, inv)
	if err != nil {
		return &Outcome{GenerationModel: inv.GenerationModel, Fallback: o.advisor.Advise(inv, err)}, nil
	}
	if resp == nil || resp.Content == "" {
		err := fmt.Errorf("reviewer returned no content")
		return &Outcome{GenerationModel: inv.GenerationModel, Fallback: o.advisor.Advise(inv, err)}, nil
	}

	result, err := o.interpreter.Interpret(resp.Content, inv.Strategy)
	if err != nil {
		return nil, err
	}
	result.ReviewModel = resp.Model

	return &Outcome{GenerationModel: inv.GenerationModel, Result: result}, nil
}
