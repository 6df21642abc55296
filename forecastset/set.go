package forecastset

import (
	"errors"
	"fmt"
)

var ErrUnknownMethod = errors.New("unknown forecast method")

// Set stores per-method forecast values preserving insertion order. Order
// matters in two places: CSV export columns and the choice of which method
// seeds the shared future date axis.
type Set struct {
	order []Method
	data  map[Method][]float64
}

func NewSet() *Set {
	return &Set{
		data: make(map[Method][]float64),
	}
}

// Put stores the forecast values for a method, copying the input slice. A
// repeated Put replaces the values but keeps the method's original position.
func (s *Set) Put(m Method, values []float64) error {
	if !m.Valid() {
		return fmt.Errorf("%q, %w", m, ErrUnknownMethod)
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	if _, exists := s.data[m]; !exists {
		s.order = append(s.order, m)
	}
	s.data[m] = vals
	return nil
}

// Values returns the stored forecast values for a method or nil if the method
// has not been stored.
func (s *Set) Values(m Method) []float64 {
	return s.data[m]
}

// Methods returns the stored methods in insertion order.
func (s *Set) Methods() []Method {
	order := make([]Method, len(s.order))
	copy(order, s.order)
	return order
}

func (s *Set) Len() int {
	return len(s.order)
}

// MaxLen returns the length of the longest stored forecast.
func (s *Set) MaxLen() int {
	var n int
	for _, vals := range s.data {
		if len(vals) > n {
			n = len(vals)
		}
	}
	return n
}

// FirstNonEmpty returns the first method in insertion order holding at least
// one value. The extrapolated date axis is seeded from this method.
func (s *Set) FirstNonEmpty() (Method, []float64, bool) {
	if s == nil {
		return "", nil, false
	}
	for _, m := range s.order {
		if vals := s.data[m]; len(vals) > 0 {
			return m, vals, true
		}
	}
	return "", nil, false
}

// Empty reports whether the set holds no values at all.
func (s *Set) Empty() bool {
	_, _, ok := s.FirstNonEmpty()
	return !ok
}

func (s *Set) Copy() *Set {
	if s == nil {
		return nil
	}
	cp := NewSet()
	for _, m := range s.order {
		cp.Put(m, s.data[m])
	}
	return cp
}

// Visible derives a new set of the same shape where methods toggled off map to
// an empty sequence and methods toggled on keep their full stored sequence.
// Neither the receiver nor previously derived sets are mutated.
func (s *Set) Visible(vis Visibility) *Set {
	if s == nil {
		return nil
	}
	out := NewSet()
	for _, m := range s.order {
		if vis.Visible(m) {
			out.Put(m, s.data[m])
			continue
		}
		out.Put(m, nil)
	}
	return out
}
