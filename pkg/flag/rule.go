package flag

import (
	"errors"
	"fmt"
	"math"
)

// DefaultTotalWeight is the conventional number of distribution parts. The
// "variant" shorthand in configuration expands to a single entry with this
// weight. The engine itself buckets against the actual weight sum, so any
// positive total is valid.
const DefaultTotalWeight = 10000

// Predicate is a compiled audience predicate, evaluated against a context's
// attribute map. Implementations must be pure: no I/O, no shared mutable
// state, bounded run time.
type Predicate interface {
	Evaluate(attrs map[string]any) (bool, error)
}

// PredicateFunc adapts a plain function to the Predicate interface.
type PredicateFunc func(attrs map[string]any) (bool, error)

// Evaluate calls the function.
func (f PredicateFunc) Evaluate(attrs map[string]any) (bool, error) { return f(attrs) }

// Compiler turns audience expression text into an executable Predicate.
// It is consulted only while a registry is built, never at decide time.
type Compiler interface {
	Compile(src string) (Predicate, error)
}

// DistributionEntry assigns a weight to one variant. Weight zero means the
// variant is never selected by bucketing.
type DistributionEntry struct {
	VariantKey string
	Weight     uint32
}

// Distribution is an ordered weighted list of variants. Order matters: bucket
// ranges are assigned by position, so declaration order is the deterministic
// tie-break at range boundaries.
type Distribution []DistributionEntry

// variantKeys lists the variant keys in declaration order.
func (d Distribution) variantKeys() []string {
	keys := make([]string, 0, len(d))
	for _, e := range d {
		keys = append(keys, e.VariantKey)
	}
	return keys
}

// totalWeight sums all entry weights without overflow.
func (d Distribution) totalWeight() uint64 {
	var total uint64
	for _, e := range d {
		total += uint64(e.Weight)
	}
	return total
}

// TotalWeight sums all entry weights. Validated distributions always fit in
// uint32; validate rejects larger totals before they can wrap here.
func (d Distribution) TotalWeight() uint32 {
	return uint32(d.totalWeight())
}

// validate reports whether the distribution can ever select a variant and
// whether its total stays within the 32-bit bucket range.
func (d Distribution) validate() error {
	if len(d) == 0 {
		return errors.Join(ErrInvalidConfig, errors.New("distribution has no entries"))
	}
	for _, e := range d {
		if e.VariantKey == "" {
			return errors.Join(ErrInvalidConfig, errors.New("distribution entry has empty variant key"))
		}
	}
	switch total := d.totalWeight(); {
	case total == 0:
		return errors.Join(ErrInvalidConfig, errors.New("distribution weights sum to zero"))
	case total > math.MaxUint32:
		return errors.Join(ErrInvalidConfig,
			fmt.Errorf("distribution weights sum to %d, exceeding the 32-bit bucket range", total))
	}
	return nil
}

// resolve picks the variant whose cumulative weight range contains the bucket
// derived from the raw hash. Entries with weight zero occupy an empty range
// and are never selected.
func (d Distribution) resolve(hash uint32) string {
	bucket := scaleHash(hash, d.TotalWeight())
	var cumulative uint32
	for _, e := range d {
		cumulative += e.Weight
		if bucket < cumulative {
			return e.VariantKey
		}
	}
	// Unreachable for validated distributions: bucket < total by construction.
	return d[len(d)-1].VariantKey
}

// Rule pairs an audience predicate with the distribution that applies when it
// matches. A nil predicate matches every context.
type Rule struct {
	name         string
	predicate    Predicate
	distribution Distribution
}

// NewRule creates an audience rule. A nil predicate always matches.
func NewRule(name string, predicate Predicate, distribution Distribution) (Rule, error) {
	if err := distribution.validate(); err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", name, err)
	}
	return Rule{name: name, predicate: predicate, distribution: distribution}, nil
}

// Name returns the audience name the rule was configured with.
func (r Rule) Name() string { return r.name }

// matches evaluates the predicate against the attribute map. Predicate
// failures are wrapped in ErrTargeting so callers can classify them.
func (r Rule) matches(attrs map[string]any) (bool, error) {
	if r.predicate == nil {
		return true, nil
	}
	ok, err := r.predicate.Evaluate(attrs)
	if err != nil {
		return false, errors.Join(ErrTargeting, fmt.Errorf("rule %q: %w", r.name, err))
	}
	return ok, nil
}

// referencedVariants lists every variant key the rule's distribution can name.
func (r Rule) referencedVariants() []string {
	return r.distribution.variantKeys()
}
