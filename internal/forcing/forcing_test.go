package forcing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillStaysInRange(t *testing.T) {
	gen := NewSynthetic(1)
	gen.Noise = 0.5 // force clamping at both ends
	dst := make([]float64, 256)
	for year := 0.0; year < 50; year++ {
		gen.Fill(dst, year)
		for i, v := range dst {
			assert.GreaterOrEqual(t, v, 0.0, "cell %d year %g", i, year)
			assert.LessOrEqual(t, v, 1.0, "cell %d year %g", i, year)
		}
	}
}

func TestFillDeterministicPerSeed(t *testing.T) {
	a := NewSynthetic(7)
	b := NewSynthetic(7)
	bufA := make([]float64, 64)
	bufB := make([]float64, 64)
	for year := 0.0; year < 10; year++ {
		a.Fill(bufA, year)
		b.Fill(bufB, year)
		require.Equal(t, bufA, bufB, "year %g", year)
	}

	c := NewSynthetic(8)
	bufC := make([]float64, 64)
	c.Fill(bufC, 0)
	a2 := NewSynthetic(7)
	bufA2 := make([]float64, 64)
	a2.Fill(bufA2, 0)
	assert.NotEqual(t, bufA2, bufC)
}
