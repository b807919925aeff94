package sim

import "math/rand"

// DurationSampler draws a duration in virtual minutes.
type DurationSampler interface {
	// Sample returns a non-negative duration.
	Sample(rng *rand.Rand) float64
}

// UniformSampler draws from a continuous uniform [Min, Max] range.
// A degenerate range (Max <= Min) always returns Min, which scripted
// scenarios use for deterministic service times.
type UniformSampler struct {
	Min, Max float64
}

func (s UniformSampler) Sample(rng *rand.Rand) float64 {
	if s.Max <= s.Min {
		return s.Min
	}
	return s.Min + rng.Float64()*(s.Max-s.Min)
}

// ExponentialSampler draws exponentially-distributed gaps with the configured
// mean, making the arrival stream an open-loop Poisson process.
type ExponentialSampler struct {
	Mean float64
}

func (s ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.Mean
}

// maxBags is the largest checked-bag count a passenger can bring.
const maxBags = 3

// sampleBagCount draws a bag count uniformly from {0, 1, 2, 3}.
// Registration service time grows by the per-bag surcharge for each bag.
func sampleBagCount(rng *rand.Rand) int {
	return rng.Intn(maxBags + 1)
}
