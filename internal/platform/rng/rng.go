// Package rng provides the single randomness source threaded through the
// simulation. Components never reach for package-global random state, so a
// seeded Rand reproduces a match exactly.
package rng

import (
	"math/rand/v2"
	"sync"
	"time"
)

type Rand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// New returns a deterministic source for the given seed.
func New(seed uint64) *Rand {
	return &Rand{src: rand.New(rand.NewPCG(seed, seed<<32|0x9e3779b9))}
}

// NewFromTime seeds from the wall clock, for production wiring.
func NewFromTime() *Rand {
	return New(uint64(time.Now().UnixNano()))
}

// IntN returns a uniform int in [0, n).
func (r *Rand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}

// Between returns a uniform int in [lo, hi], both inclusive.
func (r *Rand) Between(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.src.IntN(hi-lo+1)
}

// Float64Between returns a uniform float64 in [lo, hi).
func (r *Rand) Float64Between(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.src.Float64()*(hi-lo)
}

// NormFloat64 returns a standard-normal draw.
func (r *Rand) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.NormFloat64()
}

// Percent returns a uniform int in [1, 100], the roll used against
// percentage tables.
func (r *Rand) Percent() int {
	return r.Between(1, 100)
}

// Coin returns 0 or 1 with equal probability.
func (r *Rand) Coin() int {
	return r.IntN(2)
}
