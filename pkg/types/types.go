// Package types defines the shared contracts of the toolkit
package types

import (
	"context"
	"time"
)

// Role identifies the author of a conversation message. It is a plain
// string type so embedding applications can introduce additional roles
// without breaking the stored history.
type Role string

const (
	// RoleSystem marks standing instructions, exempt from history trimming
	RoleSystem Role = "system"
	// RoleUser marks caller-supplied input
	RoleUser Role = "user"
	// RoleAssistant marks model-produced output
	RoleAssistant Role = "assistant"
)

// Message is a single conversation entry. Messages are immutable once
// stored; eviction and Clear are the only ways they disappear.
type Message struct {
	// ID uniquely identifies the message
	ID string

	// Role is the author of the message
	Role Role

	// Content is the message text
	Content string

	// Timestamp records when the message was added
	Timestamp time.Time

	// Metadata carries arbitrary caller-defined values
	Metadata map[string]interface{}
}

// ChainResult is the outcome of a single step or of a whole chain run.
// Results are never mutated after they are returned; aggregation always
// constructs a fresh one.
type ChainResult struct {
	// Output is the produced text, fed into the next step
	Output string

	// Metadata accumulates step-defined values; later keys overwrite
	// earlier ones on collision
	Metadata map[string]interface{}

	// Success reports whether the step (or run) completed
	Success bool

	// ErrorMessage is a human-readable failure description, set when
	// Success is false
	ErrorMessage string
}

// NewSuccessResult creates a successful result
func NewSuccessResult(output string, metadata map[string]interface{}) *ChainResult {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &ChainResult{
		Output:   output,
		Metadata: metadata,
		Success:  true,
	}
}

// NewFailureResult creates a soft-failure result
func NewFailureResult(errorMessage string) *ChainResult {
	return &ChainResult{
		Metadata:     make(map[string]interface{}),
		ErrorMessage: errorMessage,
	}
}

// Step is a single unit of chain work: text in, structured result out.
type Step interface {
	// Name identifies the step in errors and events
	Name() string

	// Execute runs the step. A returned error is a hard fault and
	// aborts the chain; a result with Success=false is a soft failure
	// and short-circuits it.
	Execute(ctx context.Context, input string) (*ChainResult, error)
}

// Result defines the result of asynchronous execution
type Result[T any] struct {
	// Value is the execution result
	Value T

	// Error is the execution error
	Error error

	// Duration is the execution time
	Duration time.Duration
}
