// Package prompt provides parameterized prompt templates
package prompt

import (
	"regexp"
	"strings"

	"github.com/wouternijenhuis/CogniChain/pkg/types"
)

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Template is a prompt with {variable} placeholders. Templates are
// immutable after construction.
type Template struct {
	name      string
	text      string
	variables []string
}

// New parses text and records its placeholders in order of first
// appearance.
func New(name, text string) *Template {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]struct{}, len(matches))
	variables := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		variables = append(variables, m[1])
	}

	return &Template{
		name:      name,
		text:      text,
		variables: variables,
	}
}

// Name returns the template name
func (t *Template) Name() string {
	return t.name
}

// Text returns the raw template text
func (t *Template) Text() string {
	return t.text
}

// Variables returns the placeholder names in order of first appearance
func (t *Template) Variables() []string {
	variables := make([]string, len(t.variables))
	copy(variables, t.variables)
	return variables
}

// Format substitutes vars into the template. Every placeholder must
// have a value or Format fails with *types.MissingVariableError; keys
// in vars without a matching placeholder are ignored.
func (t *Template) Format(vars map[string]string) (string, error) {
	result := t.text
	for _, name := range t.variables {
		value, ok := vars[name]
		if !ok {
			return "", &types.MissingVariableError{Template: t.name, Variable: name}
		}
		result = strings.ReplaceAll(result, "{"+name+"}", value)
	}
	return result, nil
}
