package vegca

import (
	"fmt"
	"strconv"

	"veg-ca/internal/core"
)

// grassMaxAge is a sentinel standing in for "grass never ages out".
const grassMaxAge = 200000

// PFTTraits holds the per-type constants the transition rules consume.
type PFTTraits struct {
	// EstablishMax caps the establishment probability. Only meaningful
	// for grass, shrub and tree; seedlings establish through their adult
	// type's cap.
	EstablishMax float64
	// DroughtThreshold is the cumulative water stress the type tolerates
	// before drought mortality pressure builds.
	DroughtThreshold float64
	// BackgroundMortality is the constant per-step death probability.
	BackgroundMortality float64
	// MaxAge is the lifespan in years. Half of it marks the onset of
	// age-related mortality pressure; for seedlings it is the maturation
	// threshold instead.
	MaxAge float64
}

// Params holds the tunable constants for the plant competition rules.
// Defaults follow Zhou et al. (WRR 2013).
type Params struct {
	Grass         PFTTraits
	Shrub         PFTTraits
	Tree          PFTTraits
	ShrubSeedling PFTTraits
	TreeSeedling  PFTTraits

	// Allelopathy scales how strongly first-ring shrubs suppress grass
	// establishment.
	Allelopathy float64
}

// Traits resolves the constants for a type. Bare carries no traits.
func (p *Params) Traits(t PFT) (PFTTraits, bool) {
	switch t {
	case Grass:
		return p.Grass, true
	case Shrub:
		return p.Shrub, true
	case Tree:
		return p.Tree, true
	case ShrubSeedling:
		return p.ShrubSeedling, true
	case TreeSeedling:
		return p.TreeSeedling, true
	default:
		return PFTTraits{}, false
	}
}

// Config controls the plant competition simulation dimensions and rules.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Method selects the neighborhood scheme. Only "grid" (raster cells
	// with looped Moore rings) is supported.
	Method string

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  128,
		Height: 128,
		Seed:   1337,
		Method: "grid",
		Params: Params{
			Grass:         PFTTraits{EstablishMax: 0.35, DroughtThreshold: 0.62, BackgroundMortality: 0.05, MaxAge: grassMaxAge},
			Shrub:         PFTTraits{EstablishMax: 0.20, DroughtThreshold: 0.80, BackgroundMortality: 0.01, MaxAge: 600},
			Tree:          PFTTraits{EstablishMax: 0.25, DroughtThreshold: 0.72, BackgroundMortality: 0.01, MaxAge: 350},
			ShrubSeedling: PFTTraits{DroughtThreshold: 0.64, BackgroundMortality: 0.03, MaxAge: 18},
			TreeSeedling:  PFTTraits{DroughtThreshold: 0.64, BackgroundMortality: 0.03, MaxAge: 18},
			Allelopathy:   2.0,
		},
	}
}

// Validate reports configuration values the simulation cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid dimensions %dx%d must be positive", core.ErrConfiguration, c.Width, c.Height)
	}
	if c.Method != "grid" {
		return fmt.Errorf("%w: unknown method %q", core.ErrConfiguration, c.Method)
	}
	if c.Params.Allelopathy <= 0 {
		return fmt.Errorf("%w: allelopathy factor %g must be positive", core.ErrConfiguration, c.Params.Allelopathy)
	}
	named := []struct {
		label  PFT
		traits PFTTraits
	}{
		{Grass, c.Params.Grass},
		{Shrub, c.Params.Shrub},
		{Tree, c.Params.Tree},
		{ShrubSeedling, c.Params.ShrubSeedling},
		{TreeSeedling, c.Params.TreeSeedling},
	}
	for _, n := range named {
		if n.traits.MaxAge <= 0 {
			return fmt.Errorf("%w: %s max age %g must be positive", core.ErrConfiguration, n.label, n.traits.MaxAge)
		}
		if n.traits.EstablishMax < 0 || n.traits.EstablishMax > 1 {
			return fmt.Errorf("%w: %s establishment cap %g outside [0,1]", core.ErrConfiguration, n.label, n.traits.EstablishMax)
		}
		if n.traits.BackgroundMortality < 0 || n.traits.BackgroundMortality > 1 {
			return fmt.Errorf("%w: %s background mortality %g outside [0,1]", core.ErrConfiguration, n.label, n.traits.BackgroundMortality)
		}
		if n.traits.DroughtThreshold < 0 {
			return fmt.Errorf("%w: %s drought threshold %g must be non-negative", core.ErrConfiguration, n.label, n.traits.DroughtThreshold)
		}
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["allelopathy"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.Allelopathy = parsed
		}
	}
	readProb(cfg, "grass_establish_max", &c.Params.Grass.EstablishMax)
	readProb(cfg, "shrub_establish_max", &c.Params.Shrub.EstablishMax)
	readProb(cfg, "tree_establish_max", &c.Params.Tree.EstablishMax)
	readFloat(cfg, "grass_drought_threshold", &c.Params.Grass.DroughtThreshold)
	readFloat(cfg, "shrub_drought_threshold", &c.Params.Shrub.DroughtThreshold)
	readFloat(cfg, "tree_drought_threshold", &c.Params.Tree.DroughtThreshold)
	readFloat(cfg, "seedling_drought_threshold", &c.Params.ShrubSeedling.DroughtThreshold)
	readFloat(cfg, "seedling_drought_threshold", &c.Params.TreeSeedling.DroughtThreshold)
	readProb(cfg, "grass_background_mortality", &c.Params.Grass.BackgroundMortality)
	readProb(cfg, "shrub_background_mortality", &c.Params.Shrub.BackgroundMortality)
	readProb(cfg, "tree_background_mortality", &c.Params.Tree.BackgroundMortality)
	readAge(cfg, "shrub_max_age", &c.Params.Shrub.MaxAge)
	readAge(cfg, "tree_max_age", &c.Params.Tree.MaxAge)
	readAge(cfg, "shrub_seedling_max_age", &c.Params.ShrubSeedling.MaxAge)
	readAge(cfg, "tree_seedling_max_age", &c.Params.TreeSeedling.MaxAge)
	return c
}

func readFloat(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			*dst = parsed
		}
	}
}

func readProb(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			*dst = parsed
		}
	}
}

func readAge(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			*dst = parsed
		}
	}
}
