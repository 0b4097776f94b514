package flag

import "errors"

// Predefined errors for the flag package.
var (
	// ErrInvalidConfig indicates the feature configuration failed validation at build time.
	ErrInvalidConfig = errors.New("invalid feature configuration")

	// ErrFeatureNotFound indicates the requested feature key is not present in the registry.
	ErrFeatureNotFound = errors.New("feature not found")

	// ErrTargeting indicates an audience predicate could not be evaluated.
	// It is carried on the Decision for diagnostics, never returned from Decide.
	ErrTargeting = errors.New("audience targeting failed")
)
