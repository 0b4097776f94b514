// Package tracking is the host-boundary layer around the decision engine: it
// forwards every decision to an externally supplied event sink while keeping
// the engine itself free of side effects.
//
// The core returns plain Decision values; this package turns each one into an
// analytics Event (feature key, user key, variant, reason, value, diagnostics)
// and hands it to a Tracker. Emission is strictly fire-and-forget - a tracker
// that panics is recovered and logged, and the decision the caller receives is
// never affected.
//
// # Usage
//
//	client, err := tracking.NewClient(registry,
//		tracking.WithTracker(tracking.TrackerFunc(publish)),
//		tracking.WithLogger(log),
//	)
//	if err != nil {
//		// Handle error
//	}
//
//	decision := client.Decide("dark_mode", flag.NewContext("u1", attrs))
//
// MemoryTracker records events in memory for tests and simple applications.
package tracking
