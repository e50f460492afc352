package vegca

import (
	"fmt"

	"veg-ca/internal/core"
)

// VegetationState owns the per-cell arrays the transition rules operate on.
// All arrays share one length, fixed at construction.
type VegetationState struct {
	n         int
	pft       []PFT
	age       []float64
	stress    []float64
	liveIndex []float64
	vegetated []float64
}

// NewVegetationState allocates state for n cells, all bare with age zero.
func NewVegetationState(n int) *VegetationState {
	s := &VegetationState{
		n:         n,
		pft:       make([]PFT, n),
		age:       make([]float64, n),
		stress:    make([]float64, n),
		liveIndex: make([]float64, n),
		vegetated: make([]float64, n),
	}
	for i := range s.pft {
		s.pft[i] = Bare
	}
	return s
}

// NumCells returns the shared array length.
func (s *VegetationState) NumCells() int { return s.n }

// PFT exposes the per-cell type labels.
func (s *VegetationState) PFT() []PFT { return s.pft }

// Age exposes the per-cell plant ages in years.
func (s *VegetationState) Age() []float64 { return s.age }

// Stress exposes the per-cell cumulative water stress input.
func (s *VegetationState) Stress() []float64 { return s.stress }

// LiveIndex exposes the per-cell vigor proxy (1 - stress).
func (s *VegetationState) LiveIndex() []float64 { return s.liveIndex }

// Vegetated exposes the derived 0/1 cover flag.
func (s *VegetationState) Vegetated() []float64 { return s.vegetated }

// SetStress copies a cumulative water stress array into the state. Length
// mismatches are a configuration error; value-range checks happen at step
// time so the error can name the offending cell.
func (s *VegetationState) SetStress(vals []float64) error {
	if len(vals) != s.n {
		return fmt.Errorf("%w: stress array has %d values, state has %d cells",
			core.ErrConfiguration, len(vals), s.n)
	}
	copy(s.stress, vals)
	return nil
}

// updateLiveIndex recomputes the vigor proxy from the current stress input.
func (s *VegetationState) updateLiveIndex() {
	for i, ws := range s.stress {
		s.liveIndex[i] = 1 - ws
	}
}

// updateVegetated recomputes the cover flag from the current labels.
func (s *VegetationState) updateVegetated() {
	for i, t := range s.pft {
		if t.Vegetated() {
			s.vegetated[i] = 1
		} else {
			s.vegetated[i] = 0
		}
	}
}
