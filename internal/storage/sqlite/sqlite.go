// Package sqlite implements the storage.Backend interface on a SQLite
// database file through GORM, using the pure-Go driver.
package sqlite

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"veg-ca/internal/storage"
)

// flushEvery bounds how many census rows buffer before a batched insert.
const flushEvery = 128

// Run is the per-run table.
type Run struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	Seed      int64
	Width     int
	Height    int
	Params    string
}

// Step is the per-step census table.
type Step struct {
	ID    uint `gorm:"primarykey"`
	RunID uint `gorm:"index"`
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

// Backend records runs into a SQLite file.
type Backend struct {
	db      *gorm.DB
	run     *Run
	pending []Step
}

// New opens (or creates) the database at path.
func New(path string) (*Backend, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening %s: %w", path, err)
	}
	return &Backend{db: db}, nil
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if err := b.db.AutoMigrate(&Run{}, &Step{}); err != nil {
		return fmt.Errorf("sqlite: migrating schema: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the underlying connection.
func (b *Backend) Close() error {
	if err := b.flush(); err != nil {
		return err
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("sqlite: resolving connection: %w", err)
	}
	return sqlDB.Close()
}

// StartRun flushes any previous run and inserts the new run row.
func (b *Backend) StartRun(run *storage.RunInfo) error {
	if err := b.flush(); err != nil {
		return err
	}
	row := Run{
		CreatedAt: run.StartedAt,
		Seed:      run.Seed,
		Width:     run.Width,
		Height:    run.Height,
		Params:    run.Params,
	}
	if err := b.db.Create(&row).Error; err != nil {
		return fmt.Errorf("sqlite: inserting run: %w", err)
	}
	b.run = &row
	return nil
}

// RecordStep buffers one census row, flushing in batches.
func (b *Backend) RecordStep(rec *storage.StepRecord) error {
	if b.run == nil {
		return fmt.Errorf("sqlite: RecordStep before StartRun")
	}
	b.pending = append(b.pending, Step{
		RunID:          b.run.ID,
		Step:           rec.Step,
		Years:          rec.Years,
		Grass:          rec.Grass,
		Shrub:          rec.Shrub,
		Tree:           rec.Tree,
		Bare:           rec.Bare,
		ShrubSeedlings: rec.ShrubSeedlings,
		TreeSeedlings:  rec.TreeSeedlings,
		Established:    rec.Established,
		Died:           rec.Died,
		MeanStress:     rec.MeanStress,
	})
	if len(b.pending) >= flushEvery {
		return b.flush()
	}
	return nil
}

func (b *Backend) flush() error {
	if len(b.pending) == 0 {
		return nil
	}
	if err := b.db.CreateInBatches(b.pending, flushEvery).Error; err != nil {
		return fmt.Errorf("sqlite: inserting %d census rows: %w", len(b.pending), err)
	}
	b.pending = b.pending[:0]
	return nil
}
