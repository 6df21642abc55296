package forecastviz

import (
	"time"

	"github.com/forecastlab/forecastviz/forecastset"
	"github.com/forecastlab/forecastviz/timeseries"
)

// State is one immutable snapshot of everything the chart pipeline consumes.
// Every user action or fetch resolution produces a new State via the With*
// methods; nothing is mutated in place, so snapshots can be compared and
// tested without a drawing surface.
type State struct {
	Dataset      timeseries.Dataset
	DateColumn   string
	TargetColumn string

	// Committed forecast sets. Validation forecasts share the historical
	// dates; extrapolated forecasts get synthetic future dates.
	Validation   *forecastset.Set
	Extrapolated *forecastset.Set

	// Visibility-derived copies. These are what gets drawn; the renderer
	// never reads the raw sets above.
	VisibleValidation   *forecastset.Set
	VisibleExtrapolated *forecastset.Set

	Visibility forecastset.Visibility

	Steps   int
	Loading bool
	Err     bool
}

// DefaultSteps matches the provider's validation horizon.
const DefaultSteps = 12

func NewState() State {
	return State{
		Visibility: forecastset.DefaultVisibility(),
		Steps:      DefaultSteps,
	}
}

// WithDataset swaps in a new dataset snapshot and column selection. Committed
// forecasts belong to the previous dataset and are cleared, as is any stale
// error flag.
func (s State) WithDataset(d timeseries.Dataset, dateColumn, targetColumn string) State {
	s.Dataset = d
	s.DateColumn = dateColumn
	s.TargetColumn = targetColumn
	s.Validation = nil
	s.Extrapolated = nil
	s.VisibleValidation = nil
	s.VisibleExtrapolated = nil
	s.Err = false
	return s
}

// WithValidationForecasts commits a validation forecast set and derives its
// visible copy from the current toggles.
func (s State) WithValidationForecasts(set *forecastset.Set) State {
	s.Validation = set
	s.VisibleValidation = set.Visible(s.Visibility)
	return s
}

// WithExtrapolatedForecasts commits an extrapolated forecast set and derives
// its visible copy from the current toggles.
func (s State) WithExtrapolatedForecasts(set *forecastset.Set) State {
	s.Extrapolated = set
	s.VisibleExtrapolated = set.Visible(s.Visibility)
	return s
}

// WithToggle flips one method's visibility and re-derives both visible sets.
// Toggling the same value twice is idempotent.
func (s State) WithToggle(m forecastset.Method, checked bool) State {
	s.Visibility = s.Visibility.Toggle(m, checked)
	s.VisibleValidation = s.Validation.Visible(s.Visibility)
	s.VisibleExtrapolated = s.Extrapolated.Visible(s.Visibility)
	return s
}

func (s State) WithSteps(steps int) State {
	s.Steps = steps
	return s
}

func (s State) WithLoading(loading bool) State {
	s.Loading = loading
	return s
}

func (s State) WithError(failed bool) State {
	s.Err = failed
	return s
}

// HistoricalPoints parses the selected columns and trims to the trailing
// display window.
func (s State) HistoricalPoints(window int) []timeseries.Point {
	if s.Dataset.Empty() || s.DateColumn == "" || s.TargetColumn == "" {
		return nil
	}
	return timeseries.Window(timeseries.ParseSeries(s.Dataset.Rows, s.DateColumn, s.TargetColumn), window)
}

// FutureDates derives the shared date axis for the extrapolated chart: one
// synthetic date per point of the first non-empty visible forecast, stepping
// monthly from the last windowed historical date.
func (s State) FutureDates(window int) []time.Time {
	points := s.HistoricalPoints(window)
	if len(points) == 0 {
		return nil
	}
	_, vals, ok := s.VisibleExtrapolated.FirstNonEmpty()
	if !ok {
		return nil
	}
	return timeseries.FutureDates(points[len(points)-1].Date, len(vals))
}

// HasForecasts reports whether a committed, non-empty forecast set exists for
// the mode, i.e. whether there is anything beyond the "No forecast." empty
// state to draw.
func (s State) HasForecasts(validationChart bool) bool {
	set := s.Extrapolated
	if validationChart {
		set = s.Validation
	}
	return set != nil && !set.Empty()
}
