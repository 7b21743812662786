// Package retry provides the retry executor implementation
package retry

import (
	"context"
	"sync"
	"time"

	"github.com/wouternijenhuis/CogniChain/pkg/types"
)

// Executor re-invokes fallible operations under the backoff schedule of
// its Policy. Every Execute call owns its own attempt and delay state,
// so a single Executor is safe for concurrent use.
type Executor struct {
	policy       Policy
	condition    RetryCondition
	eventHandler EventHandler
	clock        types.Clock

	mu    sync.Mutex
	stats Stats
}

// Operation is the function type to retry
type Operation[T any] func(ctx context.Context) (T, error)

// Stats aggregates outcomes across Execute calls
type Stats struct {
	// TotalAttempts counts every operation invocation
	TotalAttempts int64

	// TotalRetries counts Execute calls that needed more than one attempt
	TotalRetries int64

	// TotalSuccesses counts Execute calls that returned a value
	TotalSuccesses int64

	// TotalFailures counts Execute calls that returned an error
	TotalFailures int64
}

// EventHandler observes the retry lifecycle. Handlers run inline on the
// retrying goroutine and should return quickly.
type EventHandler interface {
	// OnAttempt fires before every retry attempt (not the first attempt)
	OnAttempt(ctx context.Context, attempt int)

	// OnSuccess fires when a retried operation eventually succeeds
	OnSuccess(ctx context.Context, attempt int, elapsed time.Duration)

	// OnFailure fires after every failed attempt
	OnFailure(ctx context.Context, attempt int, err error)

	// OnExhausted fires when the attempt budget runs out
	OnExhausted(ctx context.Context, attempts int, err error)
}

// Option is a configuration option for the executor
type Option func(*Executor)

// WithClock sets the clock for time operations
func WithClock(clock types.Clock) Option {
	return func(e *Executor) {
		e.clock = clock
	}
}

// WithEventHandler sets the event handler
func WithEventHandler(handler EventHandler) Option {
	return func(e *Executor) {
		e.eventHandler = handler
	}
}

// WithRetryCondition sets the retry condition
func WithRetryCondition(condition RetryCondition) Option {
	return func(e *Executor) {
		e.condition = condition
	}
}

// NewExecutor creates a retry executor
func NewExecutor(policy Policy, opts ...Option) *Executor {
	e := &Executor{
		policy:    policy,
		condition: DefaultRetryCondition,
		clock:     types.NewRealClock(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Execute runs fn until it succeeds, the attempt budget runs out, or
// ctx is cancelled. Exhaustion fails with *types.RetriesExhaustedError
// wrapping the last underlying failure; cancellation surfaces as
// ctx.Err() and is never folded into the exhaustion path.
func Execute[T any](e *Executor, ctx context.Context, fn Operation[T]) (T, error) {
	var zero T

	maxAttempts := e.policy.MaxRetries
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	attempt := 0
	for {
		attempt++

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		e.updateStats(func(s *Stats) {
			s.TotalAttempts++
		})

		if e.eventHandler != nil && attempt > 1 {
			e.eventHandler.OnAttempt(ctx, attempt)
		}

		start := e.clock.Now()
		result, err := fn(ctx)

		if err == nil {
			e.updateStats(func(s *Stats) {
				s.TotalSuccesses++
				if attempt > 1 {
					s.TotalRetries++
				}
			})

			if e.eventHandler != nil && attempt > 1 {
				e.eventHandler.OnSuccess(ctx, attempt, e.clock.Since(start))
			}

			return result, nil
		}

		if e.eventHandler != nil {
			e.eventHandler.OnFailure(ctx, attempt, err)
		}

		if attempt >= maxAttempts {
			e.recordFailure(attempt)

			if e.eventHandler != nil {
				e.eventHandler.OnExhausted(ctx, attempt, err)
			}

			return zero, &types.RetriesExhaustedError{Attempts: attempt, Err: err}
		}

		if !e.condition(err) {
			e.recordFailure(attempt)
			return zero, err
		}

		delay := e.policy.NextDelay(attempt)
		if delay > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-e.clock.After(delay):
				// continue retrying
			}
		}
	}
}

// ExecuteAsync executes a function with retry asynchronously
func ExecuteAsync[T any](e *Executor, ctx context.Context, fn Operation[T]) <-chan types.Result[T] {
	resultChan := make(chan types.Result[T], 1)

	go func() {
		defer close(resultChan)

		start := e.clock.Now()
		value, err := Execute(e, ctx, fn)
		duration := e.clock.Since(start)

		resultChan <- types.Result[T]{
			Value:    value,
			Error:    err,
			Duration: duration,
		}
	}()

	return resultChan
}

// GetStats gets retry statistics
func (e *Executor) GetStats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// ResetStats resets statistics
func (e *Executor) ResetStats() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats = Stats{}
}

// updateStats updates statistics (thread-safe)
func (e *Executor) updateStats(fn func(*Stats)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.stats)
}

func (e *Executor) recordFailure(attempt int) {
	e.updateStats(func(s *Stats) {
		s.TotalFailures++
		if attempt > 1 {
			s.TotalRetries++
		}
	})
}

// Logger is the minimal logging surface the toolkit depends on. The
// core never logs on its own; callers wire their logger through a
// LoggingEventHandler.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// LoggingEventHandler is an EventHandler that forwards retry lifecycle
// events to a Logger.
type LoggingEventHandler struct {
	logger Logger
}

// NewLoggingEventHandler creates a logging event handler
func NewLoggingEventHandler(logger Logger) *LoggingEventHandler {
	return &LoggingEventHandler{logger: logger}
}

// OnAttempt handles retry attempt events
func (h *LoggingEventHandler) OnAttempt(ctx context.Context, attempt int) {
	if h.logger != nil {
		h.logger.Debugf("retry attempt %d starting", attempt)
	}
}

// OnSuccess handles retry success events
func (h *LoggingEventHandler) OnSuccess(ctx context.Context, attempt int, elapsed time.Duration) {
	if h.logger != nil {
		h.logger.Infof("retry succeeded on attempt %d after %v", attempt, elapsed)
	}
}

// OnFailure handles attempt failure events
func (h *LoggingEventHandler) OnFailure(ctx context.Context, attempt int, err error) {
	if h.logger != nil {
		h.logger.Warnf("attempt %d failed: %v", attempt, err)
	}
}

// OnExhausted handles exhaustion events
func (h *LoggingEventHandler) OnExhausted(ctx context.Context, attempts int, err error) {
	if h.logger != nil {
		h.logger.Errorf("retries exhausted after %d attempts, final error: %v", attempts, err)
	}
}
