// Package scene turns chart state into a drawable scene. Layout is pure
// geometry; a Builder adapts the geometry onto a concrete drawing surface.
package scene

import (
	"time"

	"github.com/forecastlab/forecastviz/forecastset"
	"github.com/forecastlab/forecastviz/scale"
	"github.com/forecastlab/forecastviz/timeseries"
)

// Mode selects which of the two chart flavors is being drawn.
type Mode int

const (
	// Validation plots per-method forecast error over the historical dates.
	// The historical series itself is suppressed.
	Validation Mode = iota
	// Extrapolation plots the historical window plus out-of-sample forecasts
	// on synthetic future dates.
	Extrapolation
)

// Key identifies the single live scene for this mode. Validation and
// extrapolation charts never collide because their keys differ.
func (m Mode) Key() string {
	if m == Validation {
		return "chart-validation"
	}
	return "chart-extrapolation"
}

func (m Mode) String() string {
	if m == Validation {
		return "validation"
	}
	return "extrapolation"
}

// Fixed presentation constants shared by every backend.
const (
	PointRadius     = 8.0
	HoverRadius     = 11.0
	HistoricalColor = "purple"
	HistoricalWidth = 3.0
	ForecastWidth   = 2.0
	DashPattern     = "8,8"
	LegendWidth     = 200.0
	LegendRowHeight = 25.0
	XTickFormat     = "2006-01"
	TickRotation    = -45.0
	AnimMillis      = 2000
)

// Input is everything Layout needs to place a scene. Historical points are
// expected to be pre-windowed and Forecasts to be the visibility-derived set;
// Layout never consults raw forecast state.
type Input struct {
	Mode        Mode
	Historical  []timeseries.Point
	Forecasts   *forecastset.Set
	FutureDates []time.Time
	// Measured container size, zero when not yet measured.
	ContainerWidth  float64
	ContainerHeight float64
}

// Pt is a point on a path in drawing coordinates.
type Pt struct {
	X, Y float64
}

// Path is one polyline of the scene. Every path takes part in the entry
// reveal animation.
type Path struct {
	ID     string
	Pts    []Pt
	Color  string
	Width  float64
	Dashed bool
}

// Marker is one hoverable data point circle.
type Marker struct {
	X, Y   float64
	Value  float64
	Color  string
	Series string
}

// Tick is one labeled axis position.
type Tick struct {
	Pos   float64
	Label string
}

// LegendItem is one swatch+label row of the legend panel.
type LegendItem struct {
	Label string
	Color string
	Row   int
}

// Legend is the translucent rounded panel listing visible series.
type Legend struct {
	X, Y          float64
	Width, Height float64
	Items         []LegendItem
}

// Geometry is a fully laid out scene, independent of any drawing surface.
type Geometry struct {
	Key           string
	Mode          Mode
	Width, Height float64 // inner drawing size, margins excluded
	Margin        scale.Margin
	X             scale.TimeScale
	Y             scale.LinearScale
	Paths         []Path
	Markers       []Marker
	GridX         []float64
	GridY         []float64
	XTicks        []Tick
	YTicks        []Tick
	Legend        Legend
	AnimMillis    int
}

// Handle identifies one drawn scene held by a backend.
type Handle interface {
	Key() string
}

// Builder adapts a laid out geometry onto a concrete drawing surface. Draw
// must tolerate empty paths and marker sets; Destroy must be safe to call
// with a nil handle.
type Builder interface {
	Draw(g Geometry) (Handle, error)
	Destroy(h Handle)
}
