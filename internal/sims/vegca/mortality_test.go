package vegca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultMortality() MortalityPolicy {
	p := DefaultConfig().Params
	return MortalityPolicy{Params: &p}
}

func TestMortalityMonotonicInDrought(t *testing.T) {
	policy := defaultMortality()
	for _, label := range []PFT{Grass, Shrub, Tree, ShrubSeedling, TreeSeedling} {
		prev := -1.0
		for ws := 0.0; ws <= 1.0; ws += 0.05 {
			p := policy.Probability(label, 10, ws)
			assert.GreaterOrEqual(t, p, prev, "%s at stress %.2f", label, ws)
			prev = p
		}
	}
}

func TestMortalityProbabilityClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.Shrub.DroughtThreshold = 0
	cfg.Params.Shrub.BackgroundMortality = 0.9
	policy := MortalityPolicy{Params: &cfg.Params}

	// Drought 1.0 + age pressure 1.0 + background 0.9 would exceed one.
	p := policy.Probability(Shrub, 2*cfg.Params.Shrub.MaxAge, 1.0)
	assert.Equal(t, 1.0, p)

	// Just past half the lifespan the age term is nearly -1; with no
	// drought and no background rate the sum would go negative.
	cfg.Params.Shrub.BackgroundMortality = 0
	p = policy.Probability(Shrub, cfg.Params.Shrub.MaxAge/2+1, 0)
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}

func TestGrassSurvivesWithoutDrought(t *testing.T) {
	world := newTestWorld(t, 1, 1, func(c *Config) {
		c.Params.Grass.BackgroundMortality = 0
	})
	st := world.State()
	st.PFT()[0] = Grass

	world.SetRand(constRand(0.5, 0))
	report, err := world.Advance(1, false)
	require.NoError(t, err)

	assert.Empty(t, report.Dead)
	assert.Equal(t, Grass, st.PFT()[0], "zero mortality probability must not satisfy 0 >= 0.5")
}

func TestGrassIgnoresAgePressure(t *testing.T) {
	policy := defaultMortality()
	// The grass lifespan sentinel is large enough that even ancient
	// grass sees no age term.
	assert.Equal(t, policy.Params.Grass.BackgroundMortality, policy.Probability(Grass, 5000, 0))
}

func TestDroughtDeathResetsCell(t *testing.T) {
	world := newTestWorld(t, 2, 1, nil)
	st := world.State()
	st.PFT()[0] = Shrub
	st.Age()[0] = 50
	st.PFT()[1] = Tree
	st.Age()[1] = 50

	stress := []float64{1.0, 0.0}
	require.NoError(t, world.Fields().Set(FieldWaterStress, stress))

	// Shrub: drought 1.0-0.8 + background 0.01 = 0.21 >= 0.2 dies.
	// Tree: background 0.01 < 0.2 survives.
	world.SetRand(constRand(0.2, 0))
	report, err := world.Advance(1, false)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, report.Dead)
	assert.Equal(t, Bare, st.PFT()[0])
	assert.Equal(t, 0.0, st.Age()[0])
	assert.Equal(t, Tree, st.PFT()[1])
	assert.Equal(t, 51.0, st.Age()[1])
}

func TestNewlyEstablishedCellsFaceMortalitySameStep(t *testing.T) {
	world := newTestWorld(t, 3, 3, func(c *Config) {
		c.Params.Tree.EstablishMax = 1.0
		c.Params.TreeSeedling.BackgroundMortality = 1.0
	})
	st := world.State()
	st.PFT()[4] = Tree
	st.Age()[4] = 100

	// Establishment succeeds everywhere, then the certain seedling
	// background mortality reaps the newcomers in the same step. The
	// adult tree survives its own draw.
	script := &scriptRand{
		floats: append(make([]float64, 8), 0.99, 0.99, 0.99, 0.99, 0.99, 0.99, 0.99, 0.99, 0.99),
		ints:   []int{2},
	}
	world.SetRand(script)

	report, err := world.Advance(1, false)
	require.NoError(t, err)

	assert.Len(t, report.Established, 8)
	assert.Len(t, report.Checked, 9, "mortality must see the post-establishment occupied set")
	assert.Len(t, report.Dead, 8)
	assert.Equal(t, Tree, st.PFT()[4])
	for i := 0; i < 9; i++ {
		if i == 4 {
			continue
		}
		assert.Equal(t, Bare, st.PFT()[i], "cell %d", i)
	}
}

func TestBareCellsNeverDie(t *testing.T) {
	policy := defaultMortality()
	assert.Equal(t, 0.0, policy.Probability(Bare, 100, 1.0))
}
