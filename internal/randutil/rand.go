// Package randutil builds reproducible math/rand/v2 sources for dealing and
// simulation.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed.
// Both PCG words are derived with splitmix64 so nearby seeds diverge.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns an independent source for the n-th parallel stream of seed.
func Derive(seed int64, n int) *rand.Rand {
	return New(int64(mix(uint64(seed) + uint64(n+1)*goldenRatio64)))
}

// Seed returns seed when non-zero, otherwise a time-based seed.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
