// Package complexity scores nested-checkbox implementations with a
// generative language model. All implementations are scored in one batched
// request so the model calibrates them against each other.
package complexity

import (
	"context"
	"fmt"

	"github.com/mwiater/frameworkstats/internal/logging"
	"github.com/mwiater/frameworkstats/internal/providers"
	"github.com/mwiater/frameworkstats/internal/source"
)

// Scorer assigns a complexity score in [0, 100] to every implementation.
type Scorer interface {
	Score(ctx context.Context, impls map[string]source.Implementation) (map[string]int, error)
}

// Evaluator is the model-backed Scorer. It performs exactly one completion
// per call and never retries.
type Evaluator struct {
	completer providers.Completer
	model     string
}

// NewEvaluator returns an Evaluator using completer. An empty model uses the
// completer's configured default.
func NewEvaluator(completer providers.Completer, model string) *Evaluator {
	return &Evaluator{completer: completer, model: model}
}

// Score sends every implementation in a single schema-constrained request
// and returns the parsed scores keyed by framework id.
func (e *Evaluator) Score(ctx context.Context, impls map[string]source.Implementation) (map[string]int, error) {
	if len(impls) == 0 {
		return map[string]int{}, nil
	}
	ids := sortedIDs(impls)
	req := providers.CompletionRequest{
		Model:  e.model,
		Prompt: BuildPrompt(impls),
		Schema: ResponseSchema(ids),
	}

	logging.LogDebug("Requesting complexity scores for %d implementations from %s", len(ids), e.completer.Name())
	reply, err := e.completer.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("complexity: %s completion: %w", e.completer.Name(), err)
	}

	result, err := ParseResponse(reply, ids)
	if err != nil {
		return nil, err
	}
	return result.Scores, nil
}
