package expr

import "errors"

// Predefined errors for the expr package.
var (
	// ErrParse indicates the expression text could not be compiled.
	ErrParse = errors.New("expression parse error")

	// ErrUnknownAttribute indicates the expression referenced an attribute
	// absent from the evaluation map.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrTypeMismatch indicates an operator was applied to incompatible
	// operand types.
	ErrTypeMismatch = errors.New("operand type mismatch")

	// ErrNotBoolean indicates the expression produced a non-boolean result
	// where a predicate was expected.
	ErrNotBoolean = errors.New("expression result is not boolean")
)
