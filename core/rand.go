package core

import "math/rand"

// Rand is the uniform source consumed by samplers, probabilistic
// fields and the connection generator. *math/rand.Rand satisfies it
// as-is.
//
// Implementations are not required to be safe for concurrent use; the
// generator derives one independent stream per driver element instead
// of sharing one.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n). It panics for n <= 0,
	// matching math/rand.
	Intn(n int) int
}

// NewSeededRand returns a reproducible, unsynchronized stream seeded
// with the given value.
func NewSeededRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// MixSeed derives a child seed from a base seed and a salt (typically
// an element id), spreading both through a SplitMix64 round so that
// neighbouring salts yield uncorrelated streams.
func MixSeed(seed int64, salt int64) int64 {
	z := uint64(seed) + 0x9e3779b97f4a7c15*uint64(salt+1)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
