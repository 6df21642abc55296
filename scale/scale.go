// Package scale computes the temporal and numeric extents of a chart and maps
// them onto pixel coordinates.
package scale

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Margin is the fixed whitespace reserved around the plot area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

func DefaultMargin() Margin {
	return Margin{Top: 30, Right: 40, Bottom: 30, Left: 60}
}

// Fallback drawing size used until the host container has been measured.
const (
	DefaultWidth  = 1000.0
	DefaultHeight = 600.0
)

// TimeScale maps a date domain onto a horizontal pixel range.
type TimeScale struct {
	DomainMin, DomainMax time.Time
	RangeMin, RangeMax   float64
}

// NewTimeScale builds a scale spanning the extent of the given dates. Zero
// (unparseable) dates are ignored so one bad row cannot poison the axis.
func NewTimeScale(dates []time.Time, rangeMin, rangeMax float64) TimeScale {
	s := TimeScale{RangeMin: rangeMin, RangeMax: rangeMax}
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if s.DomainMin.IsZero() || d.Before(s.DomainMin) {
			s.DomainMin = d
		}
		if s.DomainMax.IsZero() || d.After(s.DomainMax) {
			s.DomainMax = d
		}
	}
	return s
}

// Pos maps a date to its x coordinate. A degenerate domain maps everything to
// the start of the range.
func (s TimeScale) Pos(t time.Time) float64 {
	span := s.DomainMax.Sub(s.DomainMin)
	if span <= 0 {
		return s.RangeMin
	}
	frac := float64(t.Sub(s.DomainMin)) / float64(span)
	return s.RangeMin + frac*(s.RangeMax-s.RangeMin)
}

// LinearScale maps a numeric domain onto a vertical pixel range. The domain is
// "niced" so axis ticks land on round values.
type LinearScale struct {
	DomainMin, DomainMax float64
	RangeMin, RangeMax   float64
	step                 float64
}

// DefaultTickCount matches the tick density of the reference charts.
const DefaultTickCount = 10

// NewLinearScale builds a niced scale over the extent of values, skipping NaN
// and infinite entries. An empty value union yields the degenerate domain
// [0, 0] so the chart renders a flat axis rather than failing.
func NewLinearScale(values []float64, rangeMin, rangeMax float64) LinearScale {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite = append(finite, v)
	}

	var lo, hi float64
	if len(finite) > 0 {
		lo = floats.Min(finite)
		hi = floats.Max(finite)
	}

	s := LinearScale{DomainMin: lo, DomainMax: hi, RangeMin: rangeMin, RangeMax: rangeMax}
	return s.nice(DefaultTickCount)
}

// nice expands the domain outward to multiples of the tick step.
func (s LinearScale) nice(count int) LinearScale {
	step := tickStep(s.DomainMin, s.DomainMax, count)
	if step > 0 {
		s.DomainMin = math.Floor(s.DomainMin/step) * step
		s.DomainMax = math.Ceil(s.DomainMax/step) * step
	}
	s.step = step
	return s
}

// Pos maps a value to its y coordinate. A degenerate domain maps everything to
// the start of the range.
func (s LinearScale) Pos(v float64) float64 {
	span := s.DomainMax - s.DomainMin
	if span <= 0 {
		return s.RangeMin
	}
	frac := (v - s.DomainMin) / span
	return s.RangeMin + frac*(s.RangeMax-s.RangeMin)
}

// Ticks returns the tick values across the niced domain, inclusive of both
// ends. A degenerate domain yields the single tick at the domain value.
func (s LinearScale) Ticks() []float64 {
	if s.step <= 0 || s.DomainMax <= s.DomainMin {
		return []float64{s.DomainMin}
	}
	n := int(math.Round((s.DomainMax-s.DomainMin)/s.step)) + 1
	ticks := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		ticks = append(ticks, s.DomainMin+float64(i)*s.step)
	}
	return ticks
}

// tickStep picks a step of the form {1,2,5} x 10^k covering the span with
// roughly count intervals.
func tickStep(lo, hi float64, count int) float64 {
	span := hi - lo
	if span <= 0 || count <= 0 {
		return 0
	}
	step := math.Pow(10, math.Floor(math.Log10(span/float64(count))))
	err := span / float64(count) / step
	switch {
	case err >= math.Sqrt(50):
		step *= 10
	case err >= math.Sqrt(10):
		step *= 5
	case err >= math.Sqrt2:
		step *= 2
	}
	return step
}
