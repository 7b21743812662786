package chain

import (
	"context"

	"github.com/wouternijenhuis/CogniChain/pkg/types"
)

// StepFunc is the function form of a chain step
type StepFunc func(ctx context.Context, input string) (*types.ChainResult, error)

// FuncStep wraps a function as a named Step
type FuncStep struct {
	name string
	fn   StepFunc
}

// NewFuncStep creates a step from a function
func NewFuncStep(name string, fn StepFunc) *FuncStep {
	if fn == nil {
		panic(types.ErrNilStep)
	}
	return &FuncStep{name: name, fn: fn}
}

func (s *FuncStep) Name() string {
	return s.name
}

func (s *FuncStep) Execute(ctx context.Context, input string) (*types.ChainResult, error) {
	return s.fn(ctx, input)
}

// Transform wraps a pure string transformation as an always-successful
// step function.
func Transform(fn func(string) string) StepFunc {
	return func(ctx context.Context, input string) (*types.ChainResult, error) {
		return types.NewSuccessResult(fn(input), nil), nil
	}
}
