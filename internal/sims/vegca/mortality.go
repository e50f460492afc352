package vegca

// MortalityPolicy returns occupied cells to bare based on drought
// pressure, age pressure and a constant background rate.
type MortalityPolicy struct {
	Params *Params
}

// Resolve runs mortality over the occupied cells, mutating labels and
// ages in place for casualties. One acceptance draw per cell, in ascending
// cell order. It returns the indices of cells that died.
func (m MortalityPolicy) Resolve(occupied []int, st *VegetationState, rng Rand) []int {
	var dead []int
	for _, cell := range occupied {
		r := rng.Float64()
		if m.Probability(st.pft[cell], st.age[cell], st.stress[cell]) >= r {
			st.pft[cell] = Bare
			st.age[cell] = 0
			dead = append(dead, cell)
		}
	}
	return dead
}

// Probability combines the three mortality pressures for one cell and
// clamps the result to [0, 1]. Bare cells have no traits and never die.
func (m MortalityPolicy) Probability(label PFT, age, stress float64) float64 {
	traits, ok := m.Params.Traits(label)
	if !ok {
		return 0
	}

	drought := stress - traits.DroughtThreshold
	if drought < 0 {
		drought = 0
	}

	// Age pressure starts building past half the lifespan and reaches the
	// background-adjusted certainty only at twice the lifespan, matching
	// the Zhou et al. formulation.
	ageDeficit := 0.0
	half := traits.MaxAge / 2
	if age > half {
		ageDeficit = (age-half)/half - 1
	}

	p := drought + ageDeficit + traits.BackgroundMortality
	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}
	return p
}
