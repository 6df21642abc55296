package forecastviz

import "github.com/forecastlab/forecastviz/timeseries"

// Options configures the chart pipeline.
type Options struct {
	// Window is the number of trailing historical points to display.
	Window int
}

// NewDefaultOptions returns the options used when none are provided.
func NewDefaultOptions() *Options {
	return &Options{
		Window: timeseries.DisplayWindow,
	}
}
