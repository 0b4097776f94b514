// Package expr implements the audience expression language the decision
// engine's rules compile into: a small, pure boolean/value language evaluated
// against a per-call attribute map.
//
// # Grammar
//
// Expressions combine attribute references, literals, comparisons, and
// short-circuiting boolean operators:
//
//	country == "US"
//	plan == "pro" && seats >= 10
//	!(beta || internal)
//	user_key == "u42"
//
// Supported forms: identifiers (attribute references), string literals in
// double quotes, integer and float literals, true/false, !, ==, !=, <, >,
// <=, >=, && and || (both short-circuit), and parentheses. Operator
// precedence follows convention: ! binds tightest, then ordering, equality,
// &&, and || loosest.
//
// String literals carry no escape sequences: a literal cannot contain a
// double quote, and backslashes are ordinary characters.
//
// # Compilation and evaluation
//
// Compile parses once at configuration-build time; a compiled Program is
// immutable and safe for concurrent evaluation. Evaluation failures are
// typed and recoverable:
//
//   - ErrUnknownAttribute: the expression referenced an attribute the context
//     does not carry
//   - ErrTypeMismatch: an operator was applied to incompatible operand types
//   - ErrNotBoolean: the expression result is not a boolean
//
// Numeric operands unify across integer and float kinds; strings compare
// lexicographically; booleans support equality only.
//
// Compiler adapts the package to the decision engine's build-time contract:
//
//	registry, err := flag.Build(cfg, expr.NewCompiler())
package expr
