package flag

import (
	"errors"
	"fmt"
)

// Registry owns every feature built from one validated configuration. It is
// constructed once, never mutated afterwards, and therefore safe for any
// number of unsynchronized concurrent readers.
type Registry struct {
	features map[string]*Feature
	order    []string
}

// NewRegistry builds a registry from already-built features, preserving the
// argument order for DecideAll. Duplicate keys are a configuration error.
func NewRegistry(features ...*Feature) (*Registry, error) {
	r := &Registry{
		features: make(map[string]*Feature, len(features)),
		order:    make([]string, 0, len(features)),
	}
	for _, f := range features {
		if f == nil {
			return nil, errors.Join(ErrInvalidConfig, errors.New("nil feature"))
		}
		if _, exists := r.features[f.key]; exists {
			return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("duplicate feature key %q", f.key))
		}
		r.features[f.key] = f
		r.order = append(r.order, f.key)
	}
	return r, nil
}

// Len returns the number of features in the registry.
func (r *Registry) Len() int { return len(r.order) }

// Keys returns the feature keys in registry order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.order...)
}

// Feature looks up a feature by key.
func (r *Registry) Feature(key string) (*Feature, bool) {
	f, ok := r.features[key]
	return f, ok
}

// Decide evaluates one feature for the given context. An unknown feature key
// yields a not_found decision rather than an error: the hash is still computed
// so the outcome remains replayable, but no variant payload is attached.
func (r *Registry) Decide(featureKey string, ctx *Context) Decision {
	f, ok := r.features[featureKey]
	if !ok {
		return Decision{
			FeatureKey: featureKey,
			Hash:       Hash(featureKey, ctx.UserKey),
			Reason:     ReasonNotFound,
			RuleIndex:  -1,
			Err:        errors.Join(ErrFeatureNotFound, fmt.Errorf("feature %q", featureKey)),
		}
	}
	return f.Decide(ctx)
}

// DecideAll evaluates every feature for the given context, in registry order.
// Features are independent: one feature's degraded outcome never affects
// another's decision.
func (r *Registry) DecideAll(ctx *Context) []Decision {
	decisions := make([]Decision, 0, len(r.order))
	for _, key := range r.order {
		decisions = append(decisions, r.features[key].Decide(ctx))
	}
	return decisions
}
