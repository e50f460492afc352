// Package forcing produces synthetic cumulative water stress input for
// headless runs. It stands in for the hydrologic driver that supplies the
// stress field in coupled setups; the engine only cares that the values
// land in [0,1].
package forcing

import (
	"math"

	"veg-ca/pkg/core"
)

// Synthetic generates a deterministic drought cycle with seeded per-cell
// noise on top.
type Synthetic struct {
	rng *core.RNG

	// Base is the stress floor, Amplitude the size of the drought cycle
	// around it, PeriodYears its length, Noise the per-cell jitter.
	Base        float64
	Amplitude   float64
	PeriodYears float64
	Noise       float64
}

// NewSynthetic returns a generator with a mild 25-year drought cycle.
func NewSynthetic(seed int64) *Synthetic {
	return &Synthetic{
		rng:         core.NewRNG(seed),
		Base:        0.45,
		Amplitude:   0.25,
		PeriodYears: 25,
		Noise:       0.08,
	}
}

// Fill writes the stress values for the given year into dst, clamped to
// [0,1].
func (s *Synthetic) Fill(dst []float64, year float64) {
	phase := 2 * math.Pi * year / s.PeriodYears
	level := s.Base + s.Amplitude*math.Sin(phase)
	for i := range dst {
		v := level + s.Noise*(2*s.rng.Float64()-1)
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		dst[i] = v
	}
}
