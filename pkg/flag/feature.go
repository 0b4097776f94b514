package flag

import (
	"errors"
	"fmt"
	"maps"
)

// Feature is a named unit of configuration: a set of typed variants, ordered
// audience rules, and the default distribution that applies when no rule
// matches. Features are immutable once built.
type Feature struct {
	key            string
	enabled        bool
	valueKind      ValueKind
	variants       map[string]Value
	defaultVariant string
	rules          []Rule
	defaultDist    Distribution
}

// Key returns the feature's unique key.
func (f *Feature) Key() string { return f.key }

// Enabled reports whether the feature is switched on.
func (f *Feature) Enabled() bool { return f.enabled }

// FeatureBuilder assembles a Feature and validates it in one place, so decide
// time never has to: a built feature's distributions always resolve and every
// referenced variant exists with the declared value kind.
type FeatureBuilder struct {
	key            string
	enabled        bool
	valueKind      ValueKind
	variants       map[string]Value
	defaultVariant string
	rules          []Rule
	defaultDist    Distribution
}

// NewFeature starts building a feature with the given key and variant value kind.
func NewFeature(key string, kind ValueKind) *FeatureBuilder {
	return &FeatureBuilder{
		key:       key,
		valueKind: kind,
		variants:  make(map[string]Value),
	}
}

// Enabled switches the feature on or off.
func (b *FeatureBuilder) Enabled(enabled bool) *FeatureBuilder {
	b.enabled = enabled
	return b
}

// Variant registers a selectable variant and its payload.
func (b *FeatureBuilder) Variant(key string, value Value) *FeatureBuilder {
	b.variants[key] = value
	return b
}

// DefaultVariant names the variant reported for disabled features.
func (b *FeatureBuilder) DefaultVariant(key string) *FeatureBuilder {
	b.defaultVariant = key
	return b
}

// Rule appends an audience rule. Rules are evaluated strictly in the order
// they are added; the first matching rule wins.
func (b *FeatureBuilder) Rule(rule Rule) *FeatureBuilder {
	b.rules = append(b.rules, rule)
	return b
}

// DefaultDistribution sets the distribution that applies when no audience rule
// matches. Every feature must have one.
func (b *FeatureBuilder) DefaultDistribution(dist Distribution) *FeatureBuilder {
	b.defaultDist = dist
	return b
}

// Build validates the assembled feature and returns it.
func (b *FeatureBuilder) Build() (*Feature, error) {
	if b.key == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("feature key is required"))
	}
	fail := func(err error) (*Feature, error) {
		return nil, fmt.Errorf("feature %q: %w", b.key, err)
	}

	for key, value := range b.variants {
		if !value.Is(b.valueKind) {
			return fail(errors.Join(ErrInvalidConfig,
				fmt.Errorf("variant %q is %s, want %s", key, value.Kind(), b.valueKind)))
		}
	}

	if b.defaultVariant == "" {
		return fail(errors.Join(ErrInvalidConfig, errors.New("default variant is required")))
	}
	if _, ok := b.variants[b.defaultVariant]; !ok {
		return fail(errors.Join(ErrInvalidConfig,
			fmt.Errorf("default variant %q is not defined", b.defaultVariant)))
	}

	if err := b.defaultDist.validate(); err != nil {
		return fail(fmt.Errorf("default distribution: %w", err))
	}

	defined := func(keys []string) error {
		for _, key := range keys {
			if _, ok := b.variants[key]; !ok {
				return errors.Join(ErrInvalidConfig,
					fmt.Errorf("distribution references undefined variant %q", key))
			}
		}
		return nil
	}
	if err := defined(b.defaultDist.variantKeys()); err != nil {
		return fail(err)
	}
	for _, rule := range b.rules {
		if err := defined(rule.referencedVariants()); err != nil {
			return fail(fmt.Errorf("rule %q: %w", rule.name, err))
		}
	}

	return &Feature{
		key:            b.key,
		enabled:        b.enabled,
		valueKind:      b.valueKind,
		variants:       maps.Clone(b.variants),
		defaultVariant: b.defaultVariant,
		rules:          append([]Rule(nil), b.rules...),
		defaultDist:    append(Distribution(nil), b.defaultDist...),
	}, nil
}

// Decide evaluates the feature for the given context. It is a total function:
// every failure mode is encoded in the returned Decision, never raised.
//
// Audience rules run strictly in declaration order. A predicate failure is not
// fatal: the rule is skipped, the first such error is retained, and evaluation
// continues. A later match discards the retained error; otherwise the default
// distribution applies and the error travels on the Decision for diagnostics.
func (f *Feature) Decide(ctx *Context) Decision {
	hash := Hash(f.key, ctx.UserKey)

	if !f.enabled {
		return f.variantDecision(hash, f.defaultVariant, Decision{
			Reason:    ReasonDisabled,
			RuleIndex: -1,
		})
	}

	attrs := ctx.predicateAttributes()

	var firstErr error
	for i, rule := range f.rules {
		ok, err := rule.matches(attrs)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if !ok {
			continue
		}
		return f.variantDecision(hash, rule.distribution.resolve(hash), Decision{
			Reason:    ReasonRuleMatch,
			RuleIndex: i,
			RuleName:  rule.name,
		})
	}

	return f.variantDecision(hash, f.defaultDist.resolve(hash), Decision{
		Reason:    ReasonDefault,
		RuleIndex: -1,
		Err:       firstErr,
	})
}

// variantDecision fills in the common decision fields and the variant payload.
// A missing payload cannot happen for features built through FeatureBuilder,
// but it degrades to an error decision rather than a panic.
func (f *Feature) variantDecision(hash uint32, variantKey string, d Decision) Decision {
	d.FeatureKey = f.key
	d.Hash = hash

	value, ok := f.variants[variantKey]
	if !ok {
		d.Reason = ReasonError
		d.RuleIndex = -1
		d.RuleName = ""
		d.Err = errors.Join(ErrInvalidConfig, fmt.Errorf("variant %q is not defined", variantKey))
		return d
	}

	d.VariantKey = variantKey
	d.Value = value
	return d
}
