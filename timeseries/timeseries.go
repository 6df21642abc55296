package timeseries

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DisplayWindow is the number of trailing historical points shown on a chart
// regardless of dataset size.
const DisplayWindow = 12

// Column describes one pickable column of an uploaded dataset.
type Column struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	MinWidth int    `json:"minWidth,omitempty"`
	Align    string `json:"align,omitempty"`
}

// Row is a single record keyed by column id. All cell values arrive as
// strings; typing happens at parse time.
type Row map[string]string

// Dataset is an immutable snapshot of an uploaded tabular time series. The
// visualization pipeline only ever reads it.
type Dataset struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// ColumnLabel returns the display label for a column id, falling back to the
// id itself when the column is unknown.
func (d Dataset) ColumnLabel(id string) string {
	for _, c := range d.Columns {
		if c.ID == id {
			return c.Label
		}
	}
	return id
}

// Empty reports whether the dataset holds no rows.
func (d Dataset) Empty() bool {
	return len(d.Rows) == 0
}

// Point is one plottable (date, value) observation. A point derived from an
// unparseable row carries a zero date or a NaN value; rejecting such rows is
// an upstream column-validation concern, so the renderer has to tolerate them.
type Point struct {
	Date  time.Time
	Value float64
}

// Valid reports whether the point can be positioned on both axes.
func (p Point) Valid() bool {
	return !p.Date.IsZero() && !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01",
	"01/02/2006",
	"2006/01/02",
}

// ParseDate parses a cell value into a calendar date, trying the supported
// layouts in order. The zero time is returned when nothing matches.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseSeries converts dataset rows into (date, value) points in row order.
// Parse failures degrade per point rather than dropping rows so indices keep
// lining up with the source table.
func ParseSeries(rows []Row, dateColumn, targetColumn string) []Point {
	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		value, err := strconv.ParseFloat(strings.TrimSpace(row[targetColumn]), 64)
		if err != nil {
			value = math.NaN()
		}
		points = append(points, Point{
			Date:  ParseDate(row[dateColumn]),
			Value: value,
		})
	}
	return points
}

// Window keeps only the trailing w points so large uploads never bloat the
// chart. A non-positive w returns the input unchanged.
func Window(points []Point, w int) []Point {
	if w <= 0 || len(points) <= w {
		return points
	}
	return points[len(points)-w:]
}

// Dates projects the date component of each point.
func Dates(points []Point) []time.Time {
	out := make([]time.Time, 0, len(points))
	for _, p := range points {
		out = append(out, p.Date)
	}
	return out
}

// Values projects the value component of each point.
func Values(points []Point) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		out = append(out, p.Value)
	}
	return out
}
