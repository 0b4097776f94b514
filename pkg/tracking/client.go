package tracking

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/flagkit/pkg/flag"
)

// ErrNilRegistry indicates a client was constructed without a registry.
var ErrNilRegistry = errors.New("tracking client requires a registry")

// Client wraps a decision registry and emits one tracking event per decision
// produced. Emission is fire-and-forget: a misbehaving tracker can never
// change, delay, or fail the decision already made.
type Client struct {
	registry *flag.Registry
	tracker  Tracker
	log      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTracker sets the event sink. Without one, decisions are not tracked.
func WithTracker(t Tracker) Option {
	return func(c *Client) {
		if t != nil {
			c.tracker = t
		}
	}
}

// WithLogger sets the logger used to report tracker failures.
// Nil loggers are ignored to prevent runtime panics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient creates a client around an immutable registry.
func NewClient(registry *flag.Registry, opts ...Option) (*Client, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	c := &Client{
		registry: registry,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Decide evaluates one feature and emits its event.
func (c *Client) Decide(featureKey string, ctx *flag.Context) flag.Decision {
	decision := c.registry.Decide(featureKey, ctx)
	c.emit(ctx.UserKey, decision)
	return decision
}

// DecideAll evaluates every feature and emits one event per decision.
func (c *Client) DecideAll(ctx *flag.Context) []flag.Decision {
	decisions := c.registry.DecideAll(ctx)
	for _, decision := range decisions {
		c.emit(ctx.UserKey, decision)
	}
	return decisions
}

// emit forwards one event to the tracker, isolating the caller from any
// tracker panic.
func (c *Client) emit(userKey string, decision flag.Decision) {
	if c.tracker == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("tracker panicked",
				slog.String("feature_key", decision.FeatureKey),
				slog.String("user_key", userKey),
				slog.Any("panic", r),
			)
		}
	}()
	c.tracker.Track(NewEvent(userKey, decision))
}
