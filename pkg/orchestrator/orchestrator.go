// Package orchestrator composes the toolkit behind a single facade
package orchestrator

import (
	"context"
	"errors"

	"github.com/wouternijenhuis/CogniChain/pkg/chain"
	"github.com/wouternijenhuis/CogniChain/pkg/memory"
	"github.com/wouternijenhuis/CogniChain/pkg/retry"
	"github.com/wouternijenhuis/CogniChain/pkg/tools"
	"github.com/wouternijenhuis/CogniChain/pkg/types"
)

// Orchestrator owns one conversation memory, one tool registry and one
// retry executor, all configured from a Config and alive for the
// orchestrator's lifetime. Chains are supplied per call.
type Orchestrator struct {
	config   Config
	memory   *memory.Conversation
	registry *tools.Registry
	executor *retry.Executor
}

type options struct {
	clock        types.Clock
	eventHandler retry.EventHandler
}

// Option configures an Orchestrator
type Option func(*options)

// WithClock sets the clock for timestamps and backoff waits
func WithClock(clock types.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithRetryEventHandler observes the retry lifecycle of chain runs
func WithRetryEventHandler(handler retry.EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// New creates an orchestrator from cfg, filling unset fields from
// DefaultConfig.
func New(cfg Config, opts ...Option) (*Orchestrator, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	o := &options{clock: types.NewRealClock()}
	for _, opt := range opts {
		opt(o)
	}

	policy := retry.Policy{
		MaxRetries:   cfg.MaxRetries,
		InitialDelay: cfg.InitialDelay,
		Multiplier:   cfg.BackoffMultiplier,
		MaxDelay:     cfg.MaxDelay,
		Jitter:       cfg.UseJitter,
	}

	execOpts := []retry.Option{retry.WithClock(o.clock)}
	if o.eventHandler != nil {
		execOpts = append(execOpts, retry.WithEventHandler(o.eventHandler))
	}

	return &Orchestrator{
		config:   cfg,
		memory:   memory.New(cfg.MaxHistory, memory.WithClock(o.clock)),
		registry: tools.NewRegistry(),
		executor: retry.NewExecutor(policy, execOpts...),
	}, nil
}

// Config returns the effective configuration, defaults applied
func (o *Orchestrator) Config() Config {
	return o.config
}

// Memory returns the conversation memory. Callers mutate history
// directly through its Add* methods, independent of chain execution.
func (o *Orchestrator) Memory() *memory.Conversation {
	return o.memory
}

// Tools returns the tool registry
func (o *Orchestrator) Tools() *tools.Registry {
	return o.registry
}

// RegisterTool adds a tool to the registry
func (o *Orchestrator) RegisterTool(tool tools.Tool) error {
	return o.registry.Register(tool)
}

// ExecuteTool invokes a registered tool by name
func (o *Orchestrator) ExecuteTool(ctx context.Context, name, input string) (string, error) {
	return o.registry.Execute(ctx, name, input)
}

// ExecuteChain runs the whole chain under the configured retry policy.
// Soft step failures count as failed attempts just like hard faults;
// when the budget runs out on a soft failure, the failing result is
// returned alongside the exhaustion error so callers see both the
// ErrorMessage and the attempt count.
func (o *Orchestrator) ExecuteChain(ctx context.Context, c *chain.Chain, input string) (*types.ChainResult, error) {
	return o.execute(ctx, c, input, nil)
}

// ExecuteChainStreaming is ExecuteChain with a per-step chunk callback.
// The callback is only invoked when StreamingEnabled is set.
func (o *Orchestrator) ExecuteChainStreaming(ctx context.Context, c *chain.Chain, input string, onChunk func(string)) (*types.ChainResult, error) {
	if !o.config.StreamingEnabled {
		onChunk = nil
	}
	return o.execute(ctx, c, input, onChunk)
}

func (o *Orchestrator) execute(ctx context.Context, c *chain.Chain, input string, onChunk func(string)) (*types.ChainResult, error) {
	result, err := retry.Execute(o.executor, ctx, func(ctx context.Context) (*types.ChainResult, error) {
		res, err := c.RunStreaming(ctx, input, onChunk)
		if err != nil {
			return nil, err
		}
		if !res.Success {
			return nil, &types.StepFailureError{Result: res}
		}
		return res, nil
	})
	if err != nil {
		var failure *types.StepFailureError
		if errors.As(err, &failure) {
			return failure.Result, err
		}
		return nil, err
	}
	return result, nil
}
