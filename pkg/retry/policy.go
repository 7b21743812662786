// Package retry provides retry policies and backoff calculation
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// Policy configures a retry executor. A Policy is an immutable value
// object: it is copied into the executor at construction and never
// modified afterwards.
type Policy struct {
	// MaxRetries is the total attempt budget: with MaxRetries = 3 the
	// operation is invoked at most 3 times before giving up. The first
	// attempt is not a "retry" but counts toward the same budget.
	MaxRetries int

	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration

	// Multiplier grows the delay after every failed attempt. Values
	// below 1 are treated as 1.
	Multiplier float64

	// MaxDelay caps the computed delay before jitter is applied, so a
	// jittered wait can still exceed it by up to 50%.
	MaxDelay time.Duration

	// Jitter resamples each capped delay uniformly from
	// [0.5*delay, 1.5*delay] to avoid synchronized retry storms.
	Jitter bool
}

// DefaultPolicy returns the policy used when callers do not supply one:
// 3 attempts, 1s initial delay doubling up to 30s, no jitter.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   3,
		InitialDelay: time.Second,
		Multiplier:   2.0,
		MaxDelay:     30 * time.Second,
		Jitter:       false,
	}
}

// NextDelay returns the wait before retry number attempt, where attempt
// is the 1-based count of failures so far. Fractional products truncate
// toward zero; MaxDelay caps the result before jitter.
func (p Policy) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}

	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	raw := float64(p.InitialDelay) * math.Pow(multiplier, float64(attempt-1))

	var delay time.Duration
	if p.MaxDelay > 0 && raw > float64(p.MaxDelay) {
		delay = p.MaxDelay
	} else {
		delay = time.Duration(raw)
	}
	if delay < 0 {
		delay = 0
	}

	if p.Jitter {
		delay = jitterDelay(delay)
	}

	return delay
}

// jitterDelay resamples delay uniformly from [0.5*delay, 1.5*delay].
func jitterDelay(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	half := delay / 2
	return half + time.Duration(rand.Int63n(int64(delay)+1))
}

// RetryCondition decides whether an error is worth another attempt.
type RetryCondition func(error) bool

// DefaultRetryCondition retries every error except context cancellation
// and deadline expiry; a cancelled caller must not be kept waiting.
func DefaultRetryCondition(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
