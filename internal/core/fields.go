package core

import "fmt"

// FieldStore keeps named per-cell numeric arrays for one grid. Every field
// has exactly the grid's cell count; mismatched lengths are rejected.
type FieldStore struct {
	n      int
	fields map[string][]float64
}

// NewFieldStore creates an empty store for grids with n cells.
func NewFieldStore(n int) *FieldStore {
	return &FieldStore{n: n, fields: make(map[string][]float64)}
}

// NumCells returns the length every stored field must have.
func (s *FieldStore) NumCells() int { return s.n }

// Has reports whether a field with the given name exists.
func (s *FieldStore) Has(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Zeros allocates (or re-zeroes) a named field and returns its backing slice.
func (s *FieldStore) Zeros(name string) []float64 {
	f := make([]float64, s.n)
	s.fields[name] = f
	return f
}

// Get returns the backing slice of a named field.
func (s *FieldStore) Get(name string) ([]float64, error) {
	f, ok := s.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown field %q", ErrConfiguration, name)
	}
	return f, nil
}

// Set copies vals into the named field, allocating it if needed.
func (s *FieldStore) Set(name string, vals []float64) error {
	if len(vals) != s.n {
		return fmt.Errorf("%w: field %q has %d values, grid has %d cells",
			ErrConfiguration, name, len(vals), s.n)
	}
	f, ok := s.fields[name]
	if !ok {
		f = make([]float64, s.n)
		s.fields[name] = f
	}
	copy(f, vals)
	return nil
}
