package tracking_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/flagkit/pkg/flag"
	"github.com/dmitrymomot/flagkit/pkg/tracking"
)

func TestNewEvent(t *testing.T) {
	t.Parallel()

	decision := flag.Decision{
		FeatureKey: "dark_mode",
		VariantKey: "on",
		Value:      flag.Boolean(true),
		Hash:       42,
		Reason:     flag.ReasonRuleMatch,
		RuleIndex:  0,
		RuleName:   "us-rollout",
	}

	event := tracking.NewEvent("u1", decision)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "dark_mode", event.FeatureKey)
	assert.Equal(t, "u1", event.UserKey)
	assert.Equal(t, "on", event.VariantKey)
	assert.Equal(t, true, event.Value)
	assert.Equal(t, "rule_match", event.Reason)
	assert.Equal(t, "us-rollout", event.RuleName)
	assert.Empty(t, event.Error)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestNewEventCarriesError(t *testing.T) {
	t.Parallel()

	decision := flag.Decision{
		FeatureKey: "dark_mode",
		VariantKey: "off",
		Value:      flag.Boolean(false),
		Reason:     flag.ReasonDefault,
		RuleIndex:  -1,
		Err:        errors.New("predicate failed"),
	}

	event := tracking.NewEvent("u1", decision)
	assert.Equal(t, "default", event.Reason)
	assert.Equal(t, "predicate failed", event.Error)
}

func TestEventIDsAreUnique(t *testing.T) {
	t.Parallel()

	decision := flag.Decision{FeatureKey: "f", Reason: flag.ReasonDefault, RuleIndex: -1}
	a := tracking.NewEvent("u1", decision)
	b := tracking.NewEvent("u1", decision)
	assert.NotEqual(t, a.ID, b.ID)
}
