package expr

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/flagkit/pkg/flag"
)

// Program is a compiled expression, safe for unsynchronized concurrent
// evaluation against any number of attribute maps.
type Program struct {
	source string
	root   node
}

// Compile parses the expression text once, up front. Malformed expressions
// fail here with ErrParse, so a compiled Program can only fail at evaluation
// time for data reasons (missing attributes, incompatible types).
func Compile(src string) (*Program, error) {
	root, err := newParser(newLexer(src)).parse()
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	return &Program{source: src, root: root}, nil
}

// Source returns the original expression text.
func (p *Program) Source() string { return p.source }

// Run evaluates the expression and returns its raw result: bool, int64,
// float64, or string.
func (p *Program) Run(attrs map[string]any) (any, error) {
	return eval(p.root, attrs)
}

// Evaluate runs the expression as a boolean predicate. A non-boolean result
// is an ErrNotBoolean failure rather than a silent non-match, so
// misconfigured audience rules surface in decision diagnostics.
func (p *Program) Evaluate(attrs map[string]any) (bool, error) {
	result, err := p.Run(attrs)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, errors.Join(ErrNotBoolean,
			fmt.Errorf("expression %q produced %T", p.source, result))
	}
	return b, nil
}

// Compiler adapts Compile to the decision engine's build-time compiler
// contract.
type Compiler struct{}

// NewCompiler returns a Compiler for flag.Build.
func NewCompiler() Compiler { return Compiler{} }

// Compile implements flag.Compiler.
func (Compiler) Compile(src string) (flag.Predicate, error) {
	return Compile(src)
}
