package tracking_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/flag"
	"github.com/dmitrymomot/flagkit/pkg/tracking"
)

func testRegistry(t *testing.T) *flag.Registry {
	t.Helper()

	on, err := flag.NewFeature("dark_mode", flag.KindBoolean).
		Enabled(true).
		Variant("on", flag.Boolean(true)).
		Variant("off", flag.Boolean(false)).
		DefaultVariant("off").
		DefaultDistribution(flag.Distribution{{VariantKey: "on", Weight: flag.DefaultTotalWeight}}).
		Build()
	require.NoError(t, err)

	off, err := flag.NewFeature("beta_banner", flag.KindBoolean).
		Enabled(false).
		Variant("on", flag.Boolean(true)).
		Variant("off", flag.Boolean(false)).
		DefaultVariant("off").
		DefaultDistribution(flag.Distribution{{VariantKey: "on", Weight: flag.DefaultTotalWeight}}).
		Build()
	require.NoError(t, err)

	registry, err := flag.NewRegistry(on, off)
	require.NoError(t, err)
	return registry
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("NilRegistry", func(t *testing.T) {
		t.Parallel()
		_, err := tracking.NewClient(nil)
		require.ErrorIs(t, err, tracking.ErrNilRegistry)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Parallel()
		client, err := tracking.NewClient(testRegistry(t))
		require.NoError(t, err)

		// Without a tracker, decisions still flow.
		decision := client.Decide("dark_mode", flag.NewContext("u1", nil))
		assert.Equal(t, "on", decision.VariantKey)
	})
}

func TestClientDecideEmitsEvent(t *testing.T) {
	t.Parallel()

	tracker := tracking.NewMemoryTracker()
	client, err := tracking.NewClient(testRegistry(t), tracking.WithTracker(tracker))
	require.NoError(t, err)

	decision := client.Decide("dark_mode", flag.NewContext("u1", nil))

	events := tracker.Events()
	require.Len(t, events, 1)
	event := events[0]
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "dark_mode", event.FeatureKey)
	assert.Equal(t, "u1", event.UserKey)
	assert.Equal(t, decision.VariantKey, event.VariantKey)
	assert.Equal(t, decision.Reason.String(), event.Reason)
	assert.Equal(t, true, event.Value)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestClientDecideAllEmitsPerDecision(t *testing.T) {
	t.Parallel()

	tracker := tracking.NewMemoryTracker()
	client, err := tracking.NewClient(testRegistry(t), tracking.WithTracker(tracker))
	require.NoError(t, err)

	decisions := client.DecideAll(flag.NewContext("u1", nil))
	require.Len(t, decisions, 2)

	events := tracker.Events()
	require.Len(t, events, 2)
	assert.Equal(t, decisions[0].FeatureKey, events[0].FeatureKey)
	assert.Equal(t, decisions[1].FeatureKey, events[1].FeatureKey)
}

func TestClientTracksNotFound(t *testing.T) {
	t.Parallel()

	tracker := tracking.NewMemoryTracker()
	client, err := tracking.NewClient(testRegistry(t), tracking.WithTracker(tracker))
	require.NoError(t, err)

	decision := client.Decide("missing", flag.NewContext("u1", nil))
	assert.Equal(t, flag.ReasonNotFound, decision.Reason)

	events := tracker.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "not_found", events[0].Reason)
	assert.NotEmpty(t, events[0].Error)
}

func TestClientTrackerPanicIsIsolated(t *testing.T) {
	t.Parallel()

	panicky := tracking.TrackerFunc(func(tracking.Event) {
		panic("tracker exploded")
	})
	client, err := tracking.NewClient(testRegistry(t),
		tracking.WithTracker(panicky),
		tracking.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)

	var decision flag.Decision
	require.NotPanics(t, func() {
		decision = client.Decide("dark_mode", flag.NewContext("u1", nil))
	})
	assert.Equal(t, "on", decision.VariantKey, "a panicking tracker must not affect the decision")
}

func TestMemoryTrackerReset(t *testing.T) {
	t.Parallel()

	tracker := tracking.NewMemoryTracker()
	tracker.Track(tracking.Event{ID: "1"})
	tracker.Track(tracking.Event{ID: "2"})
	require.Len(t, tracker.Events(), 2)

	tracker.Reset()
	assert.Empty(t, tracker.Events())
}
