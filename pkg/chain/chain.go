// Package chain provides the sequential step execution engine
package chain

import (
	"context"

	"github.com/wouternijenhuis/CogniChain/pkg/types"
)

// Chain runs a fixed ordered list of steps, piping each step's output
// into the next step's input and merging step metadata along the way.
// Construction is append-only; Run snapshots the step list before
// executing, so steps added while a run is in flight do not affect that
// run.
type Chain struct {
	steps []types.Step
}

// New creates an empty chain
func New() *Chain {
	return &Chain{
		steps: make([]types.Step, 0),
	}
}

// AddStep appends a step and returns the chain for fluent composition.
// A nil step is a programming error and panics immediately.
func (c *Chain) AddStep(step types.Step) *Chain {
	if step == nil {
		panic(types.ErrNilStep)
	}
	c.steps = append(c.steps, step)
	return c
}

// Len returns the number of steps added so far
func (c *Chain) Len() int {
	return len(c.steps)
}

// Run executes the steps in order. A step result with Success=false is
// returned immediately and unmodified; its metadata is NOT merged with
// the accumulation of earlier steps. A step error is a hard fault and
// propagates wrapped in *types.ChainError. An empty chain succeeds with
// the initial input unchanged.
func (c *Chain) Run(ctx context.Context, initialInput string) (*types.ChainResult, error) {
	return c.run(ctx, initialInput, nil)
}

// RunStreaming is Run with a per-step callback: onChunk receives each
// successful step's output, once per completed step (not per token). A
// nil onChunk behaves exactly like Run.
func (c *Chain) RunStreaming(ctx context.Context, initialInput string, onChunk func(string)) (*types.ChainResult, error) {
	return c.run(ctx, initialInput, onChunk)
}

func (c *Chain) run(ctx context.Context, initialInput string, onChunk func(string)) (*types.ChainResult, error) {
	steps := make([]types.Step, len(c.steps))
	copy(steps, c.steps)

	current := initialInput
	metadata := make(map[string]interface{})

	for i, step := range steps {
		result, err := step.Execute(ctx, current)
		if err != nil {
			return nil, &types.ChainError{Step: step.Name(), Index: i, Cause: err}
		}
		if result == nil {
			return nil, &types.ChainError{Step: step.Name(), Index: i, Cause: types.ErrNilResult}
		}

		if !result.Success {
			return result, nil
		}

		current = result.Output
		for k, v := range result.Metadata {
			metadata[k] = v
		}

		if onChunk != nil {
			onChunk(result.Output)
		}
	}

	return &types.ChainResult{
		Output:   current,
		Metadata: metadata,
		Success:  true,
	}, nil
}
