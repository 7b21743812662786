// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrNilStep indicates a nil step was handed to a chain
	ErrNilStep = errors.New("chain step cannot be nil")

	// ErrNilResult indicates a step returned neither a result nor an error
	ErrNilResult = errors.New("step returned a nil result")

	// ErrNilTool indicates a nil tool was handed to a registry
	ErrNilTool = errors.New("tool cannot be nil")

	// ErrEmptyToolName indicates a tool with an empty name
	ErrEmptyToolName = errors.New("tool name cannot be empty")

	// ErrDuplicateTool indicates the name is already registered
	ErrDuplicateTool = errors.New("tool already registered")

	// ErrUnknownTool indicates a lookup for an unregistered name
	ErrUnknownTool = errors.New("unknown tool")
)

// ChainError reports a hard fault raised by a step, together with the
// position of the step inside the chain.
type ChainError struct {
	// Step is the name of the failing step
	Step string

	// Index is the zero-based position of the step in the chain
	Index int

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface
func (e *ChainError) Error() string {
	return fmt.Sprintf("chain step %d (%s) failed: %v", e.Index, e.Step, e.Cause)
}

// Unwrap returns the underlying error
func (e *ChainError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is a specific error
func (e *ChainError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// RetriesExhaustedError reports that an operation failed on every
// attempt permitted by its retry policy. It wraps the last failure.
type RetriesExhaustedError struct {
	// Attempts is the number of invocations made before giving up
	Attempts int

	// Err is the error returned by the final attempt
	Err error
}

// Error implements the error interface
func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the underlying error
func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}

// IsRetriesExhausted checks whether err carries retry exhaustion
func IsRetriesExhausted(err error) bool {
	var exhausted *RetriesExhaustedError
	return errors.As(err, &exhausted)
}

// ExhaustedAttempts returns the attempt count carried by an exhaustion
// error, or 0 when err is not one.
func ExhaustedAttempts(err error) int {
	var exhausted *RetriesExhaustedError
	if errors.As(err, &exhausted) {
		return exhausted.Attempts
	}
	return 0
}

// StepFailureError carries a soft chain failure through error-typed
// plumbing such as the retry executor, so a whole-chain retry treats it
// like any other failed attempt.
type StepFailureError struct {
	// Result is the failing step's result
	Result *ChainResult
}

// Error implements the error interface
func (e *StepFailureError) Error() string {
	if e.Result != nil && e.Result.ErrorMessage != "" {
		return e.Result.ErrorMessage
	}
	return "chain step failed"
}

// MissingVariableError reports a prompt placeholder with no bound value.
type MissingVariableError struct {
	// Template is the name of the template being formatted
	Template string

	// Variable is the unbound placeholder
	Variable string
}

// Error implements the error interface
func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("prompt template %q: no value for variable %q", e.Template, e.Variable)
}
