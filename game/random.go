package game

import "math/rand/v2"

// Rand is the randomness source for turn resolution. Injected so outcomes
// are reproducible in tests.
type Rand interface {
	// Fraction returns a uniform value in [0, 1).
	Fraction() float64
	// IntBetween returns a uniform integer in the inclusive range [lo, hi].
	IntBetween(lo, hi int) int
}

type systemRand struct{}

func (systemRand) Fraction() float64 { return rand.Float64() }

func (systemRand) IntBetween(lo, hi int) int {
	return lo + rand.IntN(hi-lo+1)
}

// SystemRand returns the process-wide pseudo-random source.
func SystemRand() Rand { return systemRand{} }
