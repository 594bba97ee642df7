// Package rng wraps math/rand/v2 with the small set of draws the painter
// needs. Every function takes the generator explicitly so that a fixed seed
// reproduces a painting byte for byte.
package rng

import "math/rand/v2"

// New returns a PCG-backed generator for seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Int returns a uniform integer in the closed range [lo, hi].
// An empty range yields lo.
func Int(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Coin returns true or false with equal probability.
func Coin(r *rand.Rand) bool {
	return r.IntN(2) == 0
}

// Pick returns one element of choices.
func Pick(r *rand.Rand, choices ...int) int {
	return choices[r.IntN(len(choices))]
}

// Derive draws a fresh seed from r for a child generator.
func Derive(r *rand.Rand) uint64 {
	return r.Uint64()
}
