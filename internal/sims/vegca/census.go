package vegca

// Census tallies the current mosaic by type.
type Census struct {
	Counts [numPFT]int
	Total  int
}

// Count returns the number of cells holding the given type.
func (c Census) Count(t PFT) int {
	if t >= numPFT {
		return 0
	}
	return c.Counts[t]
}

// CoverFraction returns the share of cells holding the given type.
func (c Census) CoverFraction(t PFT) float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Count(t)) / float64(c.Total)
}

// VegetatedFraction returns the share of cells holding any plant cover.
func (c Census) VegetatedFraction() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Total-c.Count(Bare)) / float64(c.Total)
}

// Census tallies the current labels.
func (w *World) Census() Census {
	c := Census{Total: w.state.n}
	for _, t := range w.state.pft {
		if t < numPFT {
			c.Counts[t]++
		}
	}
	return c
}

// MeanStress averages the current cumulative water stress input.
func (w *World) MeanStress() float64 {
	if w.state.n == 0 {
		return 0
	}
	sum := 0.0
	for _, ws := range w.state.stress {
		sum += ws
	}
	return sum / float64(w.state.n)
}
