// Package memory stores run records in memory and exports them as
// gzip-compressed JSON.
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"veg-ca/internal/storage"
)

// Export is the JSON document written by ExportTo.
type Export struct {
	Run   *storage.RunInfo     `json:"run"`
	Steps []storage.StepRecord `json:"steps"`
}

// Backend keeps one run and its step census in memory.
type Backend struct {
	run   *storage.RunInfo
	steps []storage.StepRecord
	mu    sync.Mutex
}

// New creates an empty memory backend.
func New() *Backend {
	return &Backend{}
}

// Init initializes the backend.
func (b *Backend) Init() error { return nil }

// Close releases nothing; the data stays readable until the backend is
// garbage collected.
func (b *Backend) Close() error { return nil }

// StartRun begins recording a new run, discarding any previous one.
func (b *Backend) StartRun(run *storage.RunInfo) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.run = run
	b.steps = b.steps[:0]
	return nil
}

// RecordStep appends one census record.
func (b *Backend) RecordStep(rec *storage.StepRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.run == nil {
		return fmt.Errorf("memory: RecordStep before StartRun")
	}
	b.steps = append(b.steps, *rec)
	return nil
}

// Steps returns a copy of the recorded census series.
func (b *Backend) Steps() []storage.StepRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]storage.StepRecord, len(b.steps))
	copy(out, b.steps)
	return out
}

// ExportTo writes the run as gzip-compressed JSON.
func (b *Backend) ExportTo(w io.Writer) error {
	b.mu.Lock()
	doc := Export{Run: b.run, Steps: b.steps}
	b.mu.Unlock()

	gz := gzip.NewWriter(w)
	enc := json.NewEncoder(gz)
	if err := enc.Encode(doc); err != nil {
		gz.Close()
		return fmt.Errorf("memory: encoding export: %w", err)
	}
	return gz.Close()
}

// ExportToFile writes the run to a gzip JSON file at path.
func (b *Backend) ExportToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("memory: creating export file: %w", err)
	}
	defer f.Close()
	return b.ExportTo(f)
}
