package vegca

import (
	"strconv"

	"veg-ca/internal/core"
)

// Parameters captures the current tunables as a grouped snapshot, suitable
// for persisting alongside run output.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Establishment",
			Params: []core.Parameter{
				floatParam("grass_establish_max", "Grass establishment cap", p.Grass.EstablishMax),
				floatParam("shrub_establish_max", "Shrub establishment cap", p.Shrub.EstablishMax),
				floatParam("tree_establish_max", "Tree establishment cap", p.Tree.EstablishMax),
				floatParam("allelopathy", "Shrub-on-grass allelopathy", p.Allelopathy),
			},
		},
		{
			Name: "Drought tolerance",
			Params: []core.Parameter{
				floatParam("grass_drought_threshold", "Grass drought threshold", p.Grass.DroughtThreshold),
				floatParam("shrub_drought_threshold", "Shrub drought threshold", p.Shrub.DroughtThreshold),
				floatParam("tree_drought_threshold", "Tree drought threshold", p.Tree.DroughtThreshold),
				floatParam("seedling_drought_threshold", "Seedling drought threshold", p.ShrubSeedling.DroughtThreshold),
			},
		},
		{
			Name: "Mortality",
			Params: []core.Parameter{
				floatParam("grass_background_mortality", "Grass background mortality", p.Grass.BackgroundMortality),
				floatParam("shrub_background_mortality", "Shrub background mortality", p.Shrub.BackgroundMortality),
				floatParam("tree_background_mortality", "Tree background mortality", p.Tree.BackgroundMortality),
			},
		},
		{
			Name: "Lifespans",
			Params: []core.Parameter{
				floatParam("shrub_max_age", "Shrub max age", p.Shrub.MaxAge),
				floatParam("tree_max_age", "Tree max age", p.Tree.MaxAge),
				floatParam("shrub_seedling_max_age", "Shrub seedling max age", p.ShrubSeedling.MaxAge),
				floatParam("tree_seedling_max_age", "Tree seedling max age", p.TreeSeedling.MaxAge),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// SetFloatParameter updates a tunable by key, clamping probabilities into
// [0,1]. It reports whether the key was recognized.
func (w *World) SetFloatParameter(key string, value float64) bool {
	p := &w.cfg.Params
	switch key {
	case "grass_establish_max":
		p.Grass.EstablishMax = clamp01(value)
	case "shrub_establish_max":
		p.Shrub.EstablishMax = clamp01(value)
	case "tree_establish_max":
		p.Tree.EstablishMax = clamp01(value)
	case "allelopathy":
		if value > 0 {
			p.Allelopathy = value
		}
	case "grass_drought_threshold":
		p.Grass.DroughtThreshold = clamp01(value)
	case "shrub_drought_threshold":
		p.Shrub.DroughtThreshold = clamp01(value)
	case "tree_drought_threshold":
		p.Tree.DroughtThreshold = clamp01(value)
	case "seedling_drought_threshold":
		p.ShrubSeedling.DroughtThreshold = clamp01(value)
		p.TreeSeedling.DroughtThreshold = clamp01(value)
	case "grass_background_mortality":
		p.Grass.BackgroundMortality = clamp01(value)
	case "shrub_background_mortality":
		p.Shrub.BackgroundMortality = clamp01(value)
	case "tree_background_mortality":
		p.Tree.BackgroundMortality = clamp01(value)
	case "shrub_max_age":
		if value > 0 {
			p.Shrub.MaxAge = value
		}
	case "tree_max_age":
		if value > 0 {
			p.Tree.MaxAge = value
		}
	case "shrub_seedling_max_age":
		if value > 0 {
			p.ShrubSeedling.MaxAge = value
		}
	case "tree_seedling_max_age":
		if value > 0 {
			p.TreeSeedling.MaxAge = value
		}
	default:
		return false
	}
	return true
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'g', -1, 64)}
}
