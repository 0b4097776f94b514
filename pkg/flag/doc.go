// Package flag implements a deterministic feature-flag decision engine: given
// a declarative feature configuration and a per-call context, it decides which
// variant a user sees and returns an analytics-ready Decision explaining why.
//
// # Architecture
//
// The package is built around four core concepts:
//
// 1. Features - typed variants, ordered audience rules, and a default distribution
// 2. Context - the user key and attribute bag one evaluation targets against
// 3. Registry - the immutable collection of features built from one validated config
// 4. Decision - the immutable outcome: variant, bucketing hash, reason, provenance
//
// Evaluation is a pure function of its inputs. The bucketing hash (murmur3
// 32-bit, seed 0, over the feature key concatenated with the user key) is a
// frozen constant of the format: the same feature, user, and distribution
// always land on the same variant, across processes and platforms. Changing
// the hash, its seed, or the scaling rule would silently reassign every
// user's cohort.
//
// # Usage
//
// Build a registry from configuration and decide:
//
//	cfg, err := flag.LoadFile("flags.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	registry, err := flag.Build(cfg, expr.NewCompiler())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := flag.NewContext("user-42", map[string]any{"country": "US"})
//	decision := registry.Decide("dark_mode", ctx)
//	switch decision.Reason {
//	case flag.ReasonRuleMatch:
//		// an audience rule matched; decision.RuleIndex and RuleName say which
//	case flag.ReasonDefault:
//		// no rule matched; decision.Err may carry a non-fatal predicate error
//	}
//
// Features can also be assembled programmatically via NewFeature and NewRule,
// with any Predicate implementation standing in for compiled expressions.
//
// # Error Handling
//
// Errors come in two tiers. Build-time violations (duplicate keys, zero-weight
// distributions, undefined variants, uncompilable expressions) abort Build
// with ErrInvalidConfig; the registry is either fully valid or not constructed
// at all. Decide-time predicate failures are recovered internally: evaluation
// falls through to later rules and ultimately to the default distribution,
// with the first error preserved on the Decision. Decide never fails and never
// panics; an unknown feature key yields ReasonNotFound, not an error.
//
// # Concurrency
//
// A Registry is immutable after construction and safe for unsynchronized
// concurrent reads. Contexts and Decisions are call-local values.
package flag
