// Package storage records simulation runs: one row per run carrying the
// parameter snapshot, plus a per-step vegetation census time series.
package storage

import "time"

// RunInfo describes one simulation run.
type RunInfo struct {
	Seed      int64
	Width     int
	Height    int
	Params    string // parameter snapshot serialized as JSON
	StartedAt time.Time
}

// StepRecord is the census taken after one transition step.
type StepRecord struct {
	Step  int
	Years float64

	Grass          int
	Shrub          int
	Tree           int
	Bare           int
	ShrubSeedlings int
	TreeSeedlings  int

	Established int
	Died        int

	MeanStress float64
}

// Backend is the interface all recording implementations satisfy.
type Backend interface {
	Init() error
	Close() error

	StartRun(run *RunInfo) error
	RecordStep(rec *StepRecord) error
}
