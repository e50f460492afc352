// Package config loads driver settings from a JSON file via viper,
// layering file values over built-in defaults.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"veg-ca/internal/sims/vegca"
)

// Settings collects everything the run driver needs.
type Settings struct {
	LogLevel string
	Steps    int
	// Store selects the recorder: "memory" or a path to a SQLite file.
	Store string
	// ExportPath is where the memory recorder dumps its gzip JSON.
	ExportPath string

	Sim vegca.Config
}

// Defaults returns the settings used when no config file is given.
func Defaults() Settings {
	return Settings{
		LogLevel:   "info",
		Steps:      500,
		Store:      "memory",
		ExportPath: "vegca_run.json.gz",
		Sim:        vegca.DefaultConfig(),
	}
}

// Load reads settings from the JSON file at path.
func Load(path string) (Settings, error) {
	s := Defaults()

	v := viper.New()
	v.SetDefault("logLevel", s.LogLevel)
	v.SetDefault("steps", s.Steps)
	v.SetDefault("store", s.Store)
	v.SetDefault("exportPath", s.ExportPath)
	v.SetDefault("sim.width", s.Sim.Width)
	v.SetDefault("sim.height", s.Sim.Height)
	v.SetDefault("sim.seed", s.Sim.Seed)

	v.SetConfigFile(path)
	if ext := filepath.Ext(path); ext == "" {
		v.SetConfigType("json")
	}
	if err := v.ReadInConfig(); err != nil {
		return s, fmt.Errorf("config: reading %s: %w", path, err)
	}

	s.LogLevel = v.GetString("logLevel")
	s.Steps = v.GetInt("steps")
	s.Store = v.GetString("store")
	s.ExportPath = v.GetString("exportPath")
	s.Sim.Width = v.GetInt("sim.width")
	s.Sim.Height = v.GetInt("sim.height")
	s.Sim.Seed = v.GetInt64("sim.seed")

	// Rule tunables ride in a flat key/value block, same shape the
	// simulation accepts from command-line pairs.
	params := v.GetStringMapString("sim.params")
	if len(params) > 0 {
		merged := vegca.FromMap(params)
		s.Sim.Params = merged.Params
	}

	if err := s.Sim.Validate(); err != nil {
		return s, err
	}
	return s, nil
}
