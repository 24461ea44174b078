package core

import "math/rand/v2"

// Source is the minimal random stream consumed by the simulation. *rand.Rand
// satisfies it; tests substitute scripted sequences.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// RNG is a thin convenience wrapper around a Source for deterministic seeding.
type RNG struct {
	r Source
}

// NewRNG creates a deterministic PCG-backed RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// WithSource wraps an arbitrary Source.
func WithSource(src Source) *RNG {
	return &RNG{r: src}
}

// Chance returns true with probability p. It always consumes one draw.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// IntRange returns a uniform integer in [lo, hi].
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

// Pick returns a uniform index in [0, n). n must be positive.
func (r *RNG) Pick(n int) int {
	return r.r.IntN(n)
}
