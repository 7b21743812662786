package chain

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wouternijenhuis/CogniChain/pkg/types"
)

func upperStep(name string) *FuncStep {
	return NewFuncStep(name, Transform(strings.ToUpper))
}

func suffixStep(name, suffix string) *FuncStep {
	return NewFuncStep(name, Transform(func(s string) string {
		return s + suffix
	}))
}

func TestChain_Run_EmptyChain(t *testing.T) {
	c := New()

	result, err := c.Run(context.Background(), "unchanged")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "unchanged", result.Output)
	assert.Empty(t, result.Metadata)
}

func TestChain_Run_PipesOutputToInput(t *testing.T) {
	c := New().
		AddStep(suffixStep("first", "-a")).
		AddStep(suffixStep("second", "-b")).
		AddStep(upperStep("third"))

	result, err := c.Run(context.Background(), "in")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "IN-A-B", result.Output)
}

func TestChain_Run_SoftFailureShortCircuits(t *testing.T) {
	var invokedC int32

	failing := types.NewFailureResult("step B gave up")
	failing.Metadata["attempted"] = "B"

	c := New().
		AddStep(suffixStep("A", "-a")).
		AddStep(NewFuncStep("B", func(ctx context.Context, input string) (*types.ChainResult, error) {
			return failing, nil
		})).
		AddStep(NewFuncStep("C", func(ctx context.Context, input string) (*types.ChainResult, error) {
			atomic.AddInt32(&invokedC, 1)
			return types.NewSuccessResult(input, nil), nil
		}))

	result, err := c.Run(context.Background(), "in")

	require.NoError(t, err)
	// the failing step's result comes back exactly as produced, its own
	// metadata only, not merged with the accumulation of earlier steps
	assert.Same(t, failing, result)
	assert.False(t, result.Success)
	assert.Equal(t, "step B gave up", result.ErrorMessage)
	assert.Equal(t, map[string]interface{}{"attempted": "B"}, result.Metadata)
	assert.Equal(t, int32(0), atomic.LoadInt32(&invokedC), "step C must never run")
}

func TestChain_Run_MetadataLaterKeysOverwrite(t *testing.T) {
	step := func(name, value string) *FuncStep {
		return NewFuncStep(name, func(ctx context.Context, input string) (*types.ChainResult, error) {
			return types.NewSuccessResult(input, map[string]interface{}{"k": value}), nil
		})
	}

	c := New().
		AddStep(step("one", "1")).
		AddStep(step("two", "2")).
		AddStep(step("three", "3"))

	result, err := c.Run(context.Background(), "in")

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"k": "3"}, result.Metadata)
}

func TestChain_Run_MetadataAccumulatesAcrossSteps(t *testing.T) {
	c := New().
		AddStep(NewFuncStep("one", func(ctx context.Context, input string) (*types.ChainResult, error) {
			return types.NewSuccessResult(input, map[string]interface{}{"a": 1}), nil
		})).
		AddStep(NewFuncStep("two", func(ctx context.Context, input string) (*types.ChainResult, error) {
			return types.NewSuccessResult(input, map[string]interface{}{"b": 2}), nil
		}))

	result, err := c.Run(context.Background(), "in")

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": 1, "b": 2}, result.Metadata)
}

func TestChain_Run_HardFaultPropagates(t *testing.T) {
	var invokedC int32
	cause := errors.New("upstream exploded")

	c := New().
		AddStep(suffixStep("A", "-a")).
		AddStep(NewFuncStep("B", func(ctx context.Context, input string) (*types.ChainResult, error) {
			return nil, cause
		})).
		AddStep(NewFuncStep("C", func(ctx context.Context, input string) (*types.ChainResult, error) {
			atomic.AddInt32(&invokedC, 1)
			return types.NewSuccessResult(input, nil), nil
		}))

	result, err := c.Run(context.Background(), "in")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, cause))

	var chainErr *types.ChainError
	require.True(t, errors.As(err, &chainErr))
	assert.Equal(t, "B", chainErr.Step)
	assert.Equal(t, 1, chainErr.Index)

	assert.Equal(t, int32(0), atomic.LoadInt32(&invokedC))
}

func TestChain_Run_NilResultIsHardFault(t *testing.T) {
	c := New().AddStep(NewFuncStep("broken", func(ctx context.Context, input string) (*types.ChainResult, error) {
		return nil, nil
	}))

	_, err := c.Run(context.Background(), "in")

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNilResult))
}

func TestChain_RunStreaming_ChunkPerSuccessfulStep(t *testing.T) {
	c := New().
		AddStep(suffixStep("A", "-a")).
		AddStep(suffixStep("B", "-b")).
		AddStep(suffixStep("C", "-c"))

	var chunks []string
	result, err := c.RunStreaming(context.Background(), "in", func(chunk string) {
		chunks = append(chunks, chunk)
	})

	require.NoError(t, err)
	assert.Equal(t, "in-a-b-c", result.Output)
	assert.Equal(t, []string{"in-a", "in-a-b", "in-a-b-c"}, chunks)
}

func TestChain_RunStreaming_NoChunkForFailedStep(t *testing.T) {
	c := New().
		AddStep(suffixStep("A", "-a")).
		AddStep(NewFuncStep("B", func(ctx context.Context, input string) (*types.ChainResult, error) {
			return types.NewFailureResult("nope"), nil
		}))

	var chunks []string
	result, err := c.RunStreaming(context.Background(), "in", func(chunk string) {
		chunks = append(chunks, chunk)
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"in-a"}, chunks)
}

func TestChain_RunStreaming_NilCallback(t *testing.T) {
	c := New().AddStep(suffixStep("A", "-a"))

	result, err := c.RunStreaming(context.Background(), "in", nil)

	require.NoError(t, err)
	assert.Equal(t, "in-a", result.Output)
}

func TestChain_AddStep_NilPanics(t *testing.T) {
	c := New()

	assert.Panics(t, func() {
		c.AddStep(nil)
	})
}

func TestChain_AddStep_FluentAndLen(t *testing.T) {
	c := New()

	returned := c.AddStep(upperStep("A")).AddStep(upperStep("B"))

	assert.Same(t, c, returned)
	assert.Equal(t, 2, c.Len())
}

func TestNewFuncStep_NilFunctionPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewFuncStep("broken", nil)
	})
}
