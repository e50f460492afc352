// Command vegca runs the plant competition automaton headless: synthetic
// drought forcing in, per-step census out, recorded to memory (gzip JSON
// export) or a SQLite file.
package main

import (
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"veg-ca/internal/config"
	"veg-ca/internal/core"
	"veg-ca/internal/forcing"
	"veg-ca/internal/logging"
	"veg-ca/internal/sims/vegca"
	"veg-ca/internal/storage"
	memstore "veg-ca/internal/storage/memory"
	sqlitestore "veg-ca/internal/storage/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "JSON config file (optional)")
		width      = flag.Int("w", 0, "grid width (overrides config)")
		height     = flag.Int("h", 0, "grid height (overrides config)")
		seed       = flag.Int64("seed", 0, "simulation seed (overrides config)")
		steps      = flag.Int("steps", 0, "years to simulate (overrides config)")
		store      = flag.String("store", "", `recorder: "memory" or a sqlite file path (overrides config)`)
		logLevel   = flag.String("log-level", "", "trace|debug|info|warn|error (overrides config)")
		overrides  multiFlag
	)
	flag.Var(&overrides, "set", "parameter override key=value (repeatable)")
	flag.Parse()

	settings := config.Defaults()
	if *configPath != "" {
		var err error
		settings, err = config.Load(*configPath)
		if err != nil {
			fallback := logging.New("info", os.Stderr)
			fallback.Fatal().Err(err).Msg("loading config")
		}
	}
	if *width > 0 {
		settings.Sim.Width = *width
	}
	if *height > 0 {
		settings.Sim.Height = *height
	}
	if *seed != 0 {
		settings.Sim.Seed = *seed
	}
	if *steps > 0 {
		settings.Steps = *steps
	}
	if *store != "" {
		settings.Store = *store
	}
	if *logLevel != "" {
		settings.LogLevel = *logLevel
	}

	log := logging.New(settings.LogLevel, os.Stderr)

	world, err := vegca.NewWithConfig(settings.Sim)
	if err != nil {
		log.Fatal().Err(err).Msg("building world")
	}
	applyOverrides(world, overrides, log)
	world.Reset(settings.Sim.Seed)

	backend, exportPath, err := openBackend(settings)
	if err != nil {
		log.Fatal().Err(err).Msg("opening recorder")
	}
	if err := backend.Init(); err != nil {
		log.Fatal().Err(err).Msg("initializing recorder")
	}

	paramsJSON, err := json.Marshal(world.Parameters())
	if err != nil {
		log.Fatal().Err(err).Msg("serializing parameters")
	}
	run := &storage.RunInfo{
		Seed:      settings.Sim.Seed,
		Width:     settings.Sim.Width,
		Height:    settings.Sim.Height,
		Params:    string(paramsJSON),
		StartedAt: time.Now(),
	}
	if err := backend.StartRun(run); err != nil {
		log.Fatal().Err(err).Msg("starting run")
	}

	log.Info().
		Int("width", settings.Sim.Width).
		Int("height", settings.Sim.Height).
		Int64("seed", settings.Sim.Seed).
		Int("steps", settings.Steps).
		Str("store", settings.Store).
		Msg("starting run")

	drought := forcing.NewSynthetic(settings.Sim.Seed + 1)
	stress := make([]float64, settings.Sim.Width*settings.Sim.Height)
	fields := world.Fields()

	start := time.Now()
	for step := 1; step <= settings.Steps; step++ {
		drought.Fill(stress, float64(step))
		if err := fields.Set(vegca.FieldWaterStress, stress); err != nil {
			log.Fatal().Err(err).Int("step", step).Msg("setting stress field")
		}
		report, err := world.Advance(1, true)
		if err != nil {
			log.Fatal().Err(err).Int("step", step).Msg("step failed")
		}

		census := world.Census()
		rec := &storage.StepRecord{
			Step:           step,
			Years:          float64(step),
			Grass:          census.Count(vegca.Grass),
			Shrub:          census.Count(vegca.Shrub),
			Tree:           census.Count(vegca.Tree),
			Bare:           census.Count(vegca.Bare),
			ShrubSeedlings: census.Count(vegca.ShrubSeedling),
			TreeSeedlings:  census.Count(vegca.TreeSeedling),
			Established:    len(report.Established),
			Died:           len(report.Dead),
			MeanStress:     world.MeanStress(),
		}
		if err := backend.RecordStep(rec); err != nil {
			log.Fatal().Err(err).Int("step", step).Msg("recording step")
		}

		if step%10 == 0 || step == settings.Steps {
			log.Debug().
				Int("step", step).
				Float64("vegetated", census.VegetatedFraction()).
				Float64("mean_stress", rec.MeanStress).
				Int("established", rec.Established).
				Int("died", rec.Died).
				Msg("census")
		}
	}

	if err := backend.Close(); err != nil {
		log.Fatal().Err(err).Msg("closing recorder")
	}
	if exportPath != "" {
		if mem, ok := backend.(*memstore.Backend); ok {
			if err := mem.ExportToFile(exportPath); err != nil {
				log.Fatal().Err(err).Msg("exporting run")
			}
			log.Info().Str("path", exportPath).Msg("exported run")
		}
	}

	final := world.Census()
	log.Info().
		Dur("elapsed", time.Since(start)).
		Float64("grass", final.CoverFraction(vegca.Grass)).
		Float64("shrub", final.CoverFraction(vegca.Shrub)).
		Float64("tree", final.CoverFraction(vegca.Tree)).
		Float64("bare", final.CoverFraction(vegca.Bare)).
		Msg("run complete")
}

// openBackend picks the recorder from the store setting: "memory" records
// in memory and exports gzip JSON at the end, anything else is a SQLite
// file path.
func openBackend(settings config.Settings) (storage.Backend, string, error) {
	if settings.Store == "memory" {
		return memstore.New(), settings.ExportPath, nil
	}
	b, err := sqlitestore.New(settings.Store)
	return b, "", err
}

// applyOverrides pushes -set key=value pairs through the parameter setter.
func applyOverrides(world core.FloatParameterSetter, pairs []string, log zerolog.Logger) {
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			log.Fatal().Str("pair", pair).Msg("override must be key=value")
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Fatal().Err(err).Str("pair", pair).Msg("override value must be numeric")
		}
		if !world.SetFloatParameter(key, value) {
			log.Fatal().Str("key", key).Msg("unknown parameter")
		}
	}
}

type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}
