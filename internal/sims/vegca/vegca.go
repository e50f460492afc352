// Package vegca implements a discrete-time cellular automaton of
// inter-species plant competition. Cells on a looped raster grid hold one
// plant functional type each and transition between bare and occupied
// states driven by cumulative soil-moisture stress and the vigor of their
// neighborhoods. The rules follow Zhou et al., WRR Vol. 49 (2013).
package vegca

import (
	"fmt"

	"veg-ca/internal/core"
	pkgcore "veg-ca/pkg/core"
)

// External field names used at the grid boundary.
const (
	FieldWaterStress = "soil_moisture__water_stress_cumulative"
	FieldPFT         = "vegetation__plant_functional_type"
	FieldAge         = "plant__age"
	FieldLiveIndex   = "vegetation__live_leaf_area_index"
	FieldVegetated   = "vegetation__boolean_vegetated"
)

// CellFieldStore is the named per-cell array storage the engine reads its
// forcing from and commits its outputs to.
type CellFieldStore interface {
	Has(name string) bool
	Zeros(name string) []float64
	Get(name string) ([]float64, error)
	Set(name string, vals []float64) error
}

// StepReport collects the cell sets touched by one step, for diagnostics
// and tests.
type StepReport struct {
	Bare        []int
	Established []int
	Checked     []int
	Dead        []int
}

// World runs the plant competition automaton over one grid.
type World struct {
	cfg Config

	w, h int

	grid   NeighborhoodProvider
	fields CellFieldStore
	state  *VegetationState

	establish EstablishmentPolicy
	mortality MortalityPolicy

	rng     Rand
	display []uint8
}

// New returns a world with the provided dimensions using defaults.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig builds the world together with its own raster grid and
// field store.
func NewWithConfig(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := core.NewRasterGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	return NewWithCollaborators(cfg, grid, core.NewFieldStore(grid.NumCells()))
}

// NewWithCollaborators builds a world around an externally supplied
// neighborhood provider and field store. The store must be sized for
// Width*Height cells.
func NewWithCollaborators(cfg Config, grid NeighborhoodProvider, fields CellFieldStore) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	total := cfg.Width * cfg.Height
	w := &World{
		cfg:       cfg,
		w:         cfg.Width,
		h:         cfg.Height,
		grid:      grid,
		fields:    fields,
		state:     NewVegetationState(total),
		establish: EstablishmentPolicy{},
		mortality: MortalityPolicy{},
		rng:       pkgcore.NewRNG(cfg.Seed),
		display:   make([]uint8, total),
	}
	w.establish.Params = &w.cfg.Params
	w.mortality.Params = &w.cfg.Params
	for _, name := range []string{FieldWaterStress, FieldPFT, FieldAge, FieldLiveIndex, FieldVegetated} {
		if !fields.Has(name) {
			fields.Zeros(name)
		}
	}
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "vegca" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the display buffer of per-cell type codes.
func (w *World) Cells() []uint8 { return w.display }

// State exposes the owned vegetation state.
func (w *World) State() *VegetationState { return w.state }

// Fields exposes the cell field store the world reads forcing from and
// commits outputs to.
func (w *World) Fields() CellFieldStore { return w.fields }

// SetRand replaces the world's uniform source. Handy for scripted draws
// in tests; production runs keep the seeded default.
func (w *World) SetRand(rng Rand) {
	if rng != nil {
		w.rng = rng
	}
}

// Reset prepares the initial mosaic using deterministic randomness. If the
// external type field carries a non-zero mosaic it is adopted as-is;
// otherwise every cell draws a uniform random type. Shrubs and trees draw
// an age below their lifespan, and adults younger than the seedling cap
// start as seedlings instead.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = pkgcore.NewRNG(effective)

	supplied, err := w.fields.Get(FieldPFT)
	if err == nil && !allZero(supplied) {
		for i, v := range supplied {
			if v < 0 || v >= numPFT {
				w.state.pft[i] = Bare
				continue
			}
			w.state.pft[i] = PFT(v)
		}
	} else {
		for i := range w.state.pft {
			w.state.pft[i] = PFT(w.rng.IntN(numPFT))
		}
	}

	for i := range w.state.age {
		w.state.age[i] = 0
	}
	for i, t := range w.state.pft {
		switch t {
		case Shrub:
			w.state.age[i] = float64(w.rng.IntN(int(w.cfg.Params.Shrub.MaxAge)))
			if w.state.age[i] < w.cfg.Params.ShrubSeedling.MaxAge {
				w.state.pft[i] = ShrubSeedling
			}
		case Tree:
			w.state.age[i] = float64(w.rng.IntN(int(w.cfg.Params.Tree.MaxAge)))
			if w.state.age[i] < w.cfg.Params.TreeSeedling.MaxAge {
				w.state.pft[i] = TreeSeedling
			}
		}
	}

	w.state.updateLiveIndex()
	w.state.updateVegetated()
	w.commitFields(true)
	w.rebuildDisplay()
}

// Step advances the automaton by one year. It exists to satisfy the sim
// registry contract; drivers that need sub-year steps, the vegetated-flag
// switch or the step report call Advance directly. A validation failure
// leaves the state untouched and the step becomes a no-op.
func (w *World) Step() {
	_, _ = w.Advance(1, true)
}

// Advance performs one transition step: age advance, seedling maturation,
// vigor update, establishment over the bare set, then mortality over the
// post-establishment occupied set. The cumulative water stress input is
// read from the field store and validated before anything mutates, so a
// returned error means the state is exactly as it was.
func (w *World) Advance(timeElapsed float64, emitVegetatedFlag bool) (*StepReport, error) {
	if timeElapsed < 0 {
		return nil, fmt.Errorf("%w: negative time elapsed %g", core.ErrConfiguration, timeElapsed)
	}
	stress, err := w.fields.Get(FieldWaterStress)
	if err != nil {
		return nil, err
	}
	if len(stress) != w.state.n {
		return nil, fmt.Errorf("%w: stress field has %d values, state has %d cells",
			core.ErrConfiguration, len(stress), w.state.n)
	}
	for i, ws := range stress {
		if ws < 0 || ws > 1 {
			return nil, fmt.Errorf("%w: cumulative water stress %g at cell %d outside [0,1]",
				core.ErrInvalidInput, ws, i)
		}
	}
	copy(w.state.stress, stress)

	for i := range w.state.age {
		w.state.age[i] += timeElapsed
	}
	w.matureSeedlings()
	w.state.updateLiveIndex()

	report := &StepReport{Bare: cellsWhere(w.state.pft, func(t PFT) bool { return t == Bare })}
	report.Established = w.establish.Resolve(report.Bare, w.state, w.grid, w.rng)

	report.Checked = cellsWhere(w.state.pft, func(t PFT) bool { return t != Bare })
	report.Dead = w.mortality.Resolve(report.Checked, w.state, w.rng)

	if emitVegetatedFlag {
		w.state.updateVegetated()
	}
	w.commitFields(emitVegetatedFlag)
	w.rebuildDisplay()
	return report, nil
}

// matureSeedlings promotes seedlings past their cap to the adult type,
// resetting their age. A seedling exactly at the cap stays a seedling.
func (w *World) matureSeedlings() {
	for i, t := range w.state.pft {
		adult, isSeedling := t.MatureForm()
		if !isSeedling {
			continue
		}
		traits, _ := w.cfg.Params.Traits(t)
		if w.state.age[i] > traits.MaxAge {
			w.state.pft[i] = adult
			w.state.age[i] = 0
		}
	}
}

// commitFields writes the owned state back through the field store.
func (w *World) commitFields(includeVegetated bool) {
	codes := make([]float64, w.state.n)
	for i, t := range w.state.pft {
		codes[i] = float64(t)
	}
	// The store was sized for this grid at construction, so Set cannot
	// fail on length here.
	_ = w.fields.Set(FieldPFT, codes)
	_ = w.fields.Set(FieldAge, w.state.age)
	_ = w.fields.Set(FieldLiveIndex, w.state.liveIndex)
	if includeVegetated {
		_ = w.fields.Set(FieldVegetated, w.state.vegetated)
	}
}

func (w *World) rebuildDisplay() {
	for i, t := range w.state.pft {
		w.display[i] = uint8(t)
	}
}

func cellsWhere(labels []PFT, keep func(PFT) bool) []int {
	var out []int
	for i, t := range labels {
		if keep(t) {
			out = append(out, i)
		}
	}
	return out
}

func allZero(vals []float64) bool {
	for _, v := range vals {
		if v != 0 {
			return false
		}
	}
	return true
}

func init() {
	core.Register("vegca", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		w, err := NewWithConfig(c)
		if err != nil {
			// FromMap only admits valid values, so this is unreachable
			// unless defaults themselves break.
			panic(err)
		}
		return w
	})
}
