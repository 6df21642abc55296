package scene

import (
	"strconv"
	"time"

	"github.com/forecastlab/forecastviz/forecastset"
	"github.com/forecastlab/forecastviz/scale"
	"github.com/forecastlab/forecastviz/timeseries"
)

// Layout computes the drawable geometry for one redraw. It is pure: no
// drawing surface is touched and the input state is not mutated. Forecast
// series longer than the shared date axis are truncated at the axis length;
// the axis itself is seeded from the first non-empty method upstream.
func Layout(in Input) Geometry {
	forecasts := in.Forecasts
	if forecasts == nil {
		forecasts = forecastset.NewSet()
	}

	histDates := timeseries.Dates(in.Historical)

	var values []float64
	if in.Mode == Extrapolation {
		values = append(values, timeseries.Values(in.Historical)...)
	}
	for _, m := range forecasts.Methods() {
		values = append(values, forecasts.Values(m)...)
	}

	allDates := make([]time.Time, 0, len(histDates)+len(in.FutureDates))
	allDates = append(allDates, histDates...)
	if in.Mode == Extrapolation {
		allDates = append(allDates, in.FutureDates...)
	}

	ext := scale.Compute(allDates, values, in.ContainerWidth, in.ContainerHeight)

	g := Geometry{
		Key:        in.Mode.Key(),
		Mode:       in.Mode,
		Width:      ext.Width,
		Height:     ext.Height,
		Margin:     ext.Margin,
		X:          ext.X,
		Y:          ext.Y,
		AnimMillis: AnimMillis,
	}

	if in.Mode == Extrapolation {
		g.Paths = append(g.Paths, Path{
			ID:    "historical",
			Pts:   pathPoints(in.Historical, ext),
			Color: HistoricalColor,
			Width: HistoricalWidth,
		})
		g.Markers = append(g.Markers, markers(in.Historical, ext, HistoricalColor, "historical")...)
	}

	lastHist, haveLast := lastValidPoint(in.Historical)

	for _, m := range forecasts.Methods() {
		vals := forecasts.Values(m)
		if len(vals) == 0 {
			continue
		}

		dates := histDates
		if in.Mode == Extrapolation {
			dates = in.FutureDates
		}
		pts := zipSeries(dates, vals)

		if in.Mode == Extrapolation && haveLast {
			if first, ok := firstValidPoint(pts); ok {
				g.Paths = append(g.Paths, Path{
					ID:    "connector-" + m.String(),
					Pts:   pathPoints([]timeseries.Point{lastHist, first}, ext),
					Color: m.Color(),
					Width: ForecastWidth,
				})
			}
		}

		g.Paths = append(g.Paths, Path{
			ID:     "forecast-" + m.String(),
			Pts:    pathPoints(pts, ext),
			Color:  m.Color(),
			Width:  ForecastWidth,
			Dashed: true,
		})
		g.Markers = append(g.Markers, markers(pts, ext, m.Color(), m.String())...)
	}

	g.GridY = make([]float64, 0, len(ext.Y.Ticks()))
	for _, v := range ext.Y.Ticks() {
		g.GridY = append(g.GridY, ext.Y.Pos(v))
		g.YTicks = append(g.YTicks, Tick{Pos: ext.Y.Pos(v), Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}

	tickDates := allDates
	if in.Mode == Validation {
		tickDates = histDates
	}
	for _, d := range tickDates {
		if d.IsZero() {
			continue
		}
		g.GridX = append(g.GridX, ext.X.Pos(d))
		g.XTicks = append(g.XTicks, Tick{Pos: ext.X.Pos(d), Label: d.Format(XTickFormat)})
	}

	g.Legend = layoutLegend(in.Mode, forecasts)

	return g
}

// layoutLegend sizes the panel to the number of non-empty visible series,
// plus one row for the original values in extrapolation mode.
func layoutLegend(mode Mode, forecasts *forecastset.Set) Legend {
	var items []LegendItem
	row := 0
	if mode == Extrapolation {
		items = append(items, LegendItem{Label: "Original values", Color: HistoricalColor, Row: row})
		row++
	}
	for _, m := range forecasts.Methods() {
		if len(forecasts.Values(m)) == 0 {
			continue
		}
		items = append(items, LegendItem{Label: m.Label(), Color: m.Color(), Row: row})
		row++
	}
	return Legend{
		X:      10,
		Y:      0,
		Width:  LegendWidth,
		Height: float64(len(items)) * LegendRowHeight,
		Items:  items,
	}
}

// zipSeries pairs forecast values with their dates, truncating to the shorter
// of the two so a ragged method cannot run off the axis.
func zipSeries(dates []time.Time, vals []float64) []timeseries.Point {
	n := len(vals)
	if len(dates) < n {
		n = len(dates)
	}
	pts := make([]timeseries.Point, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, timeseries.Point{Date: dates[i], Value: vals[i]})
	}
	return pts
}

// pathPoints projects the plottable points of a series, skipping degenerate
// entries (zero date or non-finite value).
func pathPoints(pts []timeseries.Point, ext scale.Extents) []Pt {
	out := make([]Pt, 0, len(pts))
	for _, p := range pts {
		if !p.Valid() {
			continue
		}
		out = append(out, Pt{X: ext.X.Pos(p.Date), Y: ext.Y.Pos(p.Value)})
	}
	return out
}

func markers(pts []timeseries.Point, ext scale.Extents, color, series string) []Marker {
	out := make([]Marker, 0, len(pts))
	for _, p := range pts {
		if !p.Valid() {
			continue
		}
		out = append(out, Marker{
			X:      ext.X.Pos(p.Date),
			Y:      ext.Y.Pos(p.Value),
			Value:  p.Value,
			Color:  color,
			Series: series,
		})
	}
	return out
}

func lastValidPoint(pts []timeseries.Point) (timeseries.Point, bool) {
	for i := len(pts) - 1; i >= 0; i-- {
		if pts[i].Valid() {
			return pts[i], true
		}
	}
	return timeseries.Point{}, false
}

func firstValidPoint(pts []timeseries.Point) (timeseries.Point, bool) {
	for _, p := range pts {
		if p.Valid() {
			return p, true
		}
	}
	return timeseries.Point{}, false
}
