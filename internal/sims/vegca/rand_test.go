package vegca

// scriptRand feeds predetermined draws to the stochastic rules. Separate
// sequences back Float64 and IntN so acceptance draws and candidate draws
// can be scripted independently; each sequence repeats when exhausted.
type scriptRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptRand) IntN(n int) int {
	if len(s.ints) == 0 || n <= 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	if v >= n {
		v = n - 1
	}
	return v
}

// constRand returns the same acceptance draw forever and always picks the
// given candidate index.
func constRand(r float64, candidate int) *scriptRand {
	return &scriptRand{floats: []float64{r}, ints: []int{candidate}}
}
