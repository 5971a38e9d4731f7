// pkg/engine/rng.go
package engine

import (
	"math/rand/v2"
	"time"
)

// Random is the single source of gameplay randomness. Tests substitute scripted
// sequences; production uses a seeded PCG.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// NewRandom returns a PCG-backed source. A zero seed picks one from the clock.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// cosmeticSource derives the particle source from the gameplay seed so effects
// never consume gameplay rolls.
func cosmeticSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed+1, 0x2545f4914f6cdd1d))
}

// intN guards IntN against non-positive bounds.
func intN(r Random, n int) int {
	if n <= 0 {
		return 0
	}
	return r.IntN(n)
}

// rangeF returns a value in [lo, hi).
func rangeF(r Random, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
