package vegca

import "math"

// NeighborhoodProvider supplies looped neighbor index lists for a set of
// cells: the eight-cell Moore ring and the sixteen-cell ring around it.
type NeighborhoodProvider interface {
	FirstRing(cells []int) [][]int
	SecondRing(cells []int) [][]int
}

// Rand is the uniform source the stochastic rules draw from. *rand.Rand
// from math/rand/v2 and the pkg/core RNG wrapper both satisfy it; tests
// substitute scripted sequences.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// establishmentCandidates are the types a bare cell may attempt, drawn
// with equal weight. The draw only picks the attempt; the per-type
// probability decides whether it succeeds.
var establishmentCandidates = [3]PFT{Grass, ShrubSeedling, TreeSeedling}

// EstablishmentPolicy converts bare cells into occupants based on the
// vigor of like-typed neighbors.
type EstablishmentPolicy struct {
	Params *Params
}

// Resolve runs establishment over the bare cells, mutating labels and ages
// in place for winners. It returns the indices of cells that established.
//
// Draw order is fixed for reproducibility: one candidate draw per bare
// cell in ascending cell order, then one acceptance draw per bare cell in
// the same order.
func (e EstablishmentPolicy) Resolve(bare []int, st *VegetationState, nb NeighborhoodProvider, rng Rand) []int {
	if len(bare) == 0 {
		return nil
	}
	first := nb.FirstRing(bare)
	second := nb.SecondRing(bare)

	grassVigor, anyGrass := meanVigor(st, Grass)

	candidates := make([]PFT, len(bare))
	for i := range bare {
		candidates[i] = establishmentCandidates[rng.IntN(len(establishmentCandidates))]
	}

	var established []int
	for i, cell := range bare {
		r := rng.Float64()
		var p float64
		switch candidates[i] {
		case Grass:
			p = e.grassProbability(grassVigor, anyGrass, labelCount(first[i], st.pft, Shrub))
		case ShrubSeedling:
			phi := vigorSum(first[i], st.pft, st.liveIndex, Shrub) / 8
			p = math.Min(phi, e.Params.Shrub.EstablishMax)
		case TreeSeedling:
			phi := (vigorSum(first[i], st.pft, st.liveIndex, Tree) +
				vigorSum(second[i], st.pft, st.liveIndex, Tree)/2) / 8
			p = math.Min(phi, e.Params.Tree.EstablishMax)
		}
		if p >= r {
			st.pft[cell] = candidates[i]
			st.age[cell] = 0
			established = append(established, cell)
		}
	}
	return established
}

// grassProbability applies the allelopathic suppression of grass by
// first-ring shrubs. With no shrub neighbors there is no inhibition and
// the cap applies directly. With no grass anywhere on the grid there is
// no seed source and establishment must never fire; the negative return
// keeps the >= comparison unsatisfiable even on a zero draw.
func (e EstablishmentPolicy) grassProbability(grassVigor float64, anyGrass bool, shrubNeighbors int) float64 {
	if !anyGrass {
		return -1
	}
	if shrubNeighbors == 0 {
		return e.Params.Grass.EstablishMax
	}
	p := grassVigor / (float64(shrubNeighbors) * e.Params.Allelopathy)
	return math.Min(p, e.Params.Grass.EstablishMax)
}

// meanVigor averages the live index over all cells of the given type
// grid-wide. The second return reports whether any such cell exists.
func meanVigor(st *VegetationState, t PFT) (float64, bool) {
	sum, count := 0.0, 0
	for i, label := range st.pft {
		if label == t {
			sum += st.liveIndex[i]
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// labelCount counts the neighbors carrying the given type.
func labelCount(neighbors []int, labels []PFT, t PFT) int {
	n := 0
	for _, idx := range neighbors {
		if labels[idx] == t {
			n++
		}
	}
	return n
}

// vigorSum accumulates the live index over neighbors carrying the given
// type. Neighbors revisited by a wrapped ring contribute once per visit.
func vigorSum(neighbors []int, labels []PFT, liveIndex []float64, t PFT) float64 {
	sum := 0.0
	for _, idx := range neighbors {
		if labels[idx] == t {
			sum += liveIndex[idx]
		}
	}
	return sum
}
