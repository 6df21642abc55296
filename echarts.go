package forecastviz

import (
	"io"
	"math"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/forecastlab/forecastviz/forecastset"
	"github.com/forecastlab/forecastviz/scene"
	"github.com/forecastlab/forecastviz/timeseries"
)

// LineComparison generates an echarts line chart for the same chart pipeline
// state the SVG backend consumes, as an alternate export surface. In
// extrapolation mode forecast series are padded so they start where the
// historical window ends.
func LineComparison(title string, hist []timeseries.Point, forecasts *forecastset.Set, futureDates []time.Time, mode scene.Mode) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)
	if forecasts == nil {
		forecasts = forecastset.NewSet()
	}

	labels := make([]string, 0, len(hist)+len(futureDates))
	for _, p := range hist {
		labels = append(labels, p.Date.Format(scene.XTickFormat))
	}
	if mode == scene.Extrapolation {
		for _, d := range futureDates {
			labels = append(labels, d.Format(scene.XTickFormat))
		}
	}
	line = line.SetXAxis(labels)

	if mode == scene.Extrapolation {
		histData := make([]opts.LineData, 0, len(hist))
		for _, p := range hist {
			if math.IsNaN(p.Value) {
				histData = append(histData, opts.LineData{Value: "-"})
				continue
			}
			histData = append(histData, opts.LineData{Value: p.Value})
		}
		line = line.AddSeries("Original values", histData)
	}

	for _, m := range forecasts.Methods() {
		vals := forecasts.Values(m)
		if len(vals) == 0 {
			continue
		}
		data := make([]opts.LineData, 0, len(labels))
		if mode == scene.Extrapolation {
			for range hist {
				data = append(data, opts.LineData{Value: "-"})
			}
		}
		for _, v := range vals {
			if len(data) == len(labels) {
				break
			}
			data = append(data, opts.LineData{Value: v})
		}
		line = line.AddSeries(m.Label(), data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: m.Color(), Type: "dashed"}),
		)
	}

	return line
}

// PlotHTML renders the validation and extrapolation comparison charts for a
// state snapshot into a single self-contained HTML page.
func PlotHTML(path string, st State, opt *Options) error {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	hist := st.HistoricalPoints(opt.Window)

	page := components.NewPage()
	page.AddCharts(
		LineComparison(
			"Validation forecasts vs original values",
			hist,
			st.VisibleValidation,
			nil,
			scene.Validation,
		),
		LineComparison(
			"Out-of-sample forecasts",
			hist,
			st.VisibleExtrapolated,
			st.FutureDates(opt.Window),
			scene.Extrapolation,
		),
	)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return page.Render(io.MultiWriter(file))
}
