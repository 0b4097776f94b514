package flag

// Reason explains how a decision's variant was selected.
type Reason string

const (
	// ReasonRuleMatch marks a decision produced by the first audience rule
	// whose predicate evaluated true.
	ReasonRuleMatch Reason = "rule_match"

	// ReasonDefault marks a decision produced by the feature's default
	// distribution because no audience rule matched.
	ReasonDefault Reason = "default"

	// ReasonDisabled marks a decision for a feature that is switched off;
	// the default variant is returned without evaluating any rules.
	ReasonDisabled Reason = "disabled"

	// ReasonError marks a decision that carries no usable variant because the
	// feature's own configuration broke at decide time.
	ReasonError Reason = "error"

	// ReasonNotFound marks a decision for a feature key absent from the
	// registry. Distinguishable from ReasonError so callers can treat it as
	// "feature absent" rather than a failure.
	ReasonNotFound Reason = "not_found"
)

// String returns the wire spelling of the reason.
func (r Reason) String() string { return string(r) }

// Decision is the immutable result of evaluating one feature for one context.
// It is analytics-ready: the hash, the matched rule, and any non-fatal error
// are preserved so a decision can be replayed and debugged after the fact.
type Decision struct {
	FeatureKey string `json:"feature_key"`
	VariantKey string `json:"variant"`
	Value      Value  `json:"value"`
	Hash       uint32 `json:"hash"`
	Reason     Reason `json:"reason"`

	// RuleIndex is the position of the matched audience rule, or -1 when no
	// rule matched.
	RuleIndex int `json:"rule_index"`

	// RuleName is the audience name of the matched rule, if any.
	RuleName string `json:"rule,omitempty"`

	// Err records the first predicate failure encountered while no earlier
	// rule had matched. It is diagnostic only: the decision's variant is
	// already the degraded outcome.
	Err error `json:"-"`
}

// ErrorText returns the diagnostic error as a string, or "" when none was
// recorded. Tracking events and serialized decisions use this form.
func (d Decision) ErrorText() string {
	if d.Err == nil {
		return ""
	}
	return d.Err.Error()
}
