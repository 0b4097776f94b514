package tracking

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/flagkit/pkg/flag"
)

// Event is the analytics record emitted once per decision: enough to replay
// which variant a user saw and why, without re-running the engine.
type Event struct {
	ID         string    `json:"id"`
	FeatureKey string    `json:"feature_key"`
	UserKey    string    `json:"user_key"`
	VariantKey string    `json:"variant"`
	Value      any       `json:"value"`
	Reason     string    `json:"reason"`
	RuleName   string    `json:"rule,omitempty"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent builds the event for one decision.
func NewEvent(userKey string, d flag.Decision) Event {
	return Event{
		ID:         uuid.NewString(),
		FeatureKey: d.FeatureKey,
		UserKey:    userKey,
		VariantKey: d.VariantKey,
		Value:      d.Value.Any(),
		Reason:     d.Reason.String(),
		RuleName:   d.RuleName,
		Error:      d.ErrorText(),
		OccurredAt: time.Now().UTC(),
	}
}
