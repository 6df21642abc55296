package forecastviz

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/forecastlab/forecastviz/forecastset"
)

// CSV download contract: file name and MIME type for the exported forecasts.
const (
	CSVFileName    = "forecasts.csv"
	CSVContentType = "text/csv; charset=utf-8"
)

const csvDateFormat = "2006-01-02"

// ForecastCSV serializes the displayed forecast series as CSV text. The
// header row is the date column label followed by the method keys in set
// insertion order; one data row is emitted per index up to the longest method
// array. Ragged arrays and missing dates degrade to empty cells rather than
// failing. Rows are LF-joined with no trailing newline.
func ForecastCSV(set *forecastset.Set, dates []time.Time, dateLabel string) string {
	if set == nil {
		set = forecastset.NewSet()
	}
	methods := set.Methods()

	header := make([]string, 0, len(methods)+1)
	header = append(header, dateLabel)
	for _, m := range methods {
		header = append(header, m.String())
	}

	rows := make([]string, 0, set.MaxLen()+1)
	rows = append(rows, strings.Join(header, ","))

	for i := 0; i < set.MaxLen(); i++ {
		row := make([]string, 0, len(methods)+1)
		if i < len(dates) && !dates[i].IsZero() {
			row = append(row, dates[i].Format(csvDateFormat))
		} else {
			row = append(row, "")
		}
		for _, m := range methods {
			vals := set.Values(m)
			if i < len(vals) {
				row = append(row, formatValue(vals[i]))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, strings.Join(row, ","))
	}

	return strings.Join(rows, "\n")
}

// formatValue renders a value with exactly two decimals, rounding half away
// from zero on the value's shortest decimal form, so 1.005 exports as 1.01.
// Non-finite values degrade to an empty cell.
func formatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	for len(fracPart) < 3 {
		fracPart += "0"
	}

	hundredths, err := strconv.ParseInt(intPart+fracPart[:2], 10, 64)
	if err != nil {
		// magnitude beyond int64 hundredths; fall back to plain formatting
		out := strconv.FormatFloat(v, 'f', 2, 64)
		return out
	}
	if fracPart[2] >= '5' {
		hundredths++
	}

	out := strconv.FormatInt(hundredths/100, 10) + "." + pad2(hundredths%100)
	if neg && (hundredths > 0) {
		out = "-" + out
	}
	return out
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
