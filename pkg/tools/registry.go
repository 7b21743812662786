// Package tools provides the tool-calling registry
package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wouternijenhuis/CogniChain/pkg/types"
)

// Tool is a named capability invocable through a Registry. Concrete
// tools implement this interface directly; there is no base type.
type Tool interface {
	// Name returns the registry key of the tool
	Name() string

	// Description returns what the tool does, for model consumption
	Description() string

	// Execute runs the tool against input
	Execute(ctx context.Context, input string) (string, error)
}

// ExecuteFunc is the function form of a tool body
type ExecuteFunc func(ctx context.Context, input string) (string, error)

// FuncTool adapts a function into a Tool
type FuncTool struct {
	name        string
	description string
	fn          ExecuteFunc
}

// NewFuncTool creates a tool from a function
func NewFuncTool(name, description string, fn ExecuteFunc) *FuncTool {
	return &FuncTool{name: name, description: description, fn: fn}
}

func (t *FuncTool) Name() string {
	return t.name
}

func (t *FuncTool) Description() string {
	return t.description
}

func (t *FuncTool) Execute(ctx context.Context, input string) (string, error) {
	return t.fn(ctx, input)
}

// Registry maps tool names to implementations. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry. Nil tools, empty names and
// duplicate names are rejected.
func (r *Registry) Register(tool Tool) error {
	if tool == nil {
		return types.ErrNilTool
	}
	name := tool.Name()
	if name == "" {
		return types.ErrEmptyToolName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", types.ErrDuplicateTool, name)
	}
	r.tools[name] = tool
	return nil
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]
	return tool, ok
}

// Names returns the registered tool names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered tools
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute looks up name and runs the tool against input. An unknown
// name fails with types.ErrUnknownTool.
func (r *Registry) Execute(ctx context.Context, name, input string) (string, error) {
	tool, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", types.ErrUnknownTool, name)
	}
	return tool.Execute(ctx, input)
}
