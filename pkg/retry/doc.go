// Package retry provides retry execution under exponential backoff with optional jitter.
//
// Key features:
//
// 1. Policy value object:
//   - MaxRetries: total attempt budget (first attempt included)
//   - InitialDelay, Multiplier, MaxDelay: exponential backoff schedule
//   - Jitter: uniform resampling on [0.5x, 1.5x] of the capped delay
//
// 2. Retry executor:
//   - Supports synchronous and asynchronous execution
//   - Context cancellation interrupts backoff waits promptly
//   - Retry statistics collection
//   - Event notification mechanism with a pluggable Logger
//
// 3. Retry conditions:
//   - DefaultRetryCondition retries everything except context errors
//   - Custom conditions via WithRetryCondition
//
// Basic usage example:
//
//	policy := retry.DefaultPolicy()
//	policy.MaxRetries = 5
//
//	executor := retry.NewExecutor(policy)
//
//	result, err := retry.Execute(executor, ctx, func(ctx context.Context) (string, error) {
//		return callModel(ctx)
//	})
//
// When the attempt budget runs out, Execute fails with
// *types.RetriesExhaustedError wrapping the last underlying failure;
// use types.IsRetriesExhausted to detect it. Cancellation during a
// backoff wait surfaces as ctx.Err(), never as exhaustion.
package retry
