package flag

import "github.com/spaolacci/murmur3"

// hashRange is the divisor that scales a raw 32-bit hash into the half-open
// unit interval. Dividing by 2^32 rather than 2^32-1 keeps the scaled result
// strictly below the requested scale for every possible hash.
const hashRange = 1 << 32

// Hash computes the raw bucketing hash for a feature/user pair: murmur3 32-bit
// with seed 0 over the concatenation of the two keys. Hashing the combined key
// re-randomizes bucket assignment per feature, so rollout cohorts of unrelated
// features do not correlate. The seed and hash family are frozen: changing
// either reassigns every user's variant.
func Hash(featureKey, userKey string) uint32 {
	return murmur3.Sum32([]byte(featureKey + userKey))
}

// Bucket maps a feature/user pair to a stable bucket in [0, scale). The raw
// hash is normalized into [0, 1) and then scaled, which avoids the modulo bias
// a plain remainder would introduce for scales that are not powers of two.
func Bucket(featureKey, userKey string, scale uint32) uint32 {
	return scaleHash(Hash(featureKey, userKey), scale)
}

// scaleHash projects a raw hash onto [0, scale).
func scaleHash(hash, scale uint32) uint32 {
	return uint32(float64(hash) / hashRange * float64(scale))
}
