package sim

import (
	"math"
	"math/rand"
	"testing"
)

func TestUniformSampler_WithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := UniformSampler{Min: 1, Max: 5}

	for i := 0; i < 1000; i++ {
		v := s.Sample(rng)
		if v < 1 || v >= 5 {
			t.Fatalf("draw %d: %v outside [1, 5)", i, v)
		}
	}
}

func TestUniformSampler_DegenerateRange_ReturnsMin(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := UniformSampler{Min: 5, Max: 5}

	for i := 0; i < 10; i++ {
		if v := s.Sample(rng); v != 5 {
			t.Fatalf("degenerate range draw: got %v, want 5", v)
		}
	}
}

func TestExponentialSampler_MeanConverges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := ExponentialSampler{Mean: 2.0}

	sum := 0.0
	const n = 20000
	for i := 0; i < n; i++ {
		sum += s.Sample(rng)
	}
	got := sum / n

	// Standard error is Mean/sqrt(n) ~ 0.014; a 5% band is generous.
	if math.Abs(got-2.0) > 0.1 {
		t.Errorf("empirical mean = %v, want 2.0 +/- 0.1", got)
	}
}

func TestSampleBagCount_CoversRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[int]bool)

	for i := 0; i < 1000; i++ {
		b := sampleBagCount(rng)
		if b < 0 || b > maxBags {
			t.Fatalf("bag count %d outside {0..%d}", b, maxBags)
		}
		seen[b] = true
	}
	for b := 0; b <= maxBags; b++ {
		if !seen[b] {
			t.Errorf("bag count %d never drawn in 1000 samples", b)
		}
	}
}
