package vegca

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veg-ca/internal/core"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsIllegalValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -3 }},
		{"unknown method", func(c *Config) { c.Method = "voronoi" }},
		{"negative max age", func(c *Config) { c.Params.Tree.MaxAge = -1 }},
		{"zero seedling max age", func(c *Config) { c.Params.ShrubSeedling.MaxAge = 0 }},
		{"establishment cap above one", func(c *Config) { c.Params.Grass.EstablishMax = 1.5 }},
		{"negative background mortality", func(c *Config) { c.Params.Shrub.BackgroundMortality = -0.1 }},
		{"zero allelopathy", func(c *Config) { c.Params.Allelopathy = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrConfiguration))
		})
	}
}

func TestFromMapParsesKnownKeys(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":                      "64",
		"h":                      "48",
		"seed":                   "-5",
		"allelopathy":            "3.5",
		"grass_establish_max":    "0.5",
		"tree_drought_threshold": "0.9",
		"shrub_max_age":          "450",
		"tree_seedling_max_age":  "12",
	})
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
	assert.Equal(t, int64(-5), cfg.Seed)
	assert.Equal(t, 3.5, cfg.Params.Allelopathy)
	assert.Equal(t, 0.5, cfg.Params.Grass.EstablishMax)
	assert.Equal(t, 0.9, cfg.Params.Tree.DroughtThreshold)
	assert.Equal(t, 450.0, cfg.Params.Shrub.MaxAge)
	assert.Equal(t, 12.0, cfg.Params.TreeSeedling.MaxAge)
}

func TestFromMapKeepsDefaultsOnBadValues(t *testing.T) {
	def := DefaultConfig()
	cfg := FromMap(map[string]string{
		"w":                   "not-a-number",
		"grass_establish_max": "1.7", // probabilities stay in [0,1]
		"shrub_max_age":       "-2",
	})
	assert.Equal(t, def.Width, cfg.Width)
	assert.Equal(t, def.Params.Grass.EstablishMax, cfg.Params.Grass.EstablishMax)
	assert.Equal(t, def.Params.Shrub.MaxAge, cfg.Params.Shrub.MaxAge)
}

func TestTraitsDispatch(t *testing.T) {
	p := DefaultConfig().Params
	for _, label := range []PFT{Grass, Shrub, Tree, ShrubSeedling, TreeSeedling} {
		_, ok := p.Traits(label)
		assert.True(t, ok, "%s must carry traits", label)
	}
	_, ok := p.Traits(Bare)
	assert.False(t, ok, "bare carries no traits")
}

func TestSetFloatParameter(t *testing.T) {
	world := newTestWorld(t, 4, 4, nil)

	require.True(t, world.SetFloatParameter("tree_drought_threshold", 0.55))
	assert.Equal(t, 0.55, world.cfg.Params.Tree.DroughtThreshold)

	require.True(t, world.SetFloatParameter("grass_establish_max", 7))
	assert.Equal(t, 1.0, world.cfg.Params.Grass.EstablishMax, "probabilities clamp to [0,1]")

	require.True(t, world.SetFloatParameter("seedling_drought_threshold", 0.5))
	assert.Equal(t, 0.5, world.cfg.Params.ShrubSeedling.DroughtThreshold)
	assert.Equal(t, 0.5, world.cfg.Params.TreeSeedling.DroughtThreshold)

	assert.False(t, world.SetFloatParameter("volcano_eruption_chance", 1))
}

func TestParametersSnapshotRoundTrip(t *testing.T) {
	world := newTestWorld(t, 4, 4, nil)
	snap := world.Parameters()
	require.NotEmpty(t, snap.Groups)

	seen := map[string]bool{}
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			seen[p.Key] = true
			assert.NotEmpty(t, p.Value, "%s must carry a value", p.Key)
		}
	}
	for _, key := range []string{"w", "h", "seed", "allelopathy", "tree_max_age", "grass_background_mortality"} {
		assert.True(t, seen[key], "snapshot missing %s", key)
	}
}
