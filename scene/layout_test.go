package scene

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forecastlab/forecastviz/forecastset"
	"github.com/forecastlab/forecastviz/timeseries"
)

func histPoints(n int) []timeseries.Point {
	pts := make([]timeseries.Point, 0, n)
	d := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		pts = append(pts, timeseries.Point{Date: d, Value: float64(10 + i)})
		d = timeseries.NextMonth(d)
	}
	return pts
}

func pathIDs(g Geometry) []string {
	ids := make([]string, 0, len(g.Paths))
	for _, p := range g.Paths {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestLayoutValidation(t *testing.T) {
	hist := histPoints(4)
	forecasts := forecastset.NewSet()
	require.NoError(t, forecasts.Put(forecastset.Sarima, []float64{1, -2, 0.5, 3}))
	require.NoError(t, forecasts.Put(forecastset.SVR, []float64{0.2, 0.1, -0.3, 0}))

	g := Layout(Input{
		Mode:       Validation,
		Historical: hist,
		Forecasts:  forecasts,
	})

	assert.Equal(t, "chart-validation", g.Key)
	// the historical series is an input to the error curves, not a drawn line
	assert.Equal(t, []string{"forecast-sarima", "forecast-svr"}, pathIDs(g))
	for _, p := range g.Paths {
		assert.True(t, p.Dashed)
		assert.Equal(t, ForecastWidth, p.Width)
	}
	for _, m := range g.Markers {
		assert.NotEqual(t, "historical", m.Series)
	}
	assert.Len(t, g.XTicks, len(hist))
}

func TestLayoutExtrapolation(t *testing.T) {
	hist := histPoints(3)
	future := timeseries.FutureDates(hist[len(hist)-1].Date, 2)
	forecasts := forecastset.NewSet()
	require.NoError(t, forecasts.Put(forecastset.LSTM, []float64{14, 15}))

	g := Layout(Input{
		Mode:        Extrapolation,
		Historical:  hist,
		Forecasts:   forecasts,
		FutureDates: future,
	})

	assert.Equal(t, "chart-extrapolation", g.Key)
	assert.Equal(t, []string{"historical", "connector-lstm", "forecast-lstm"}, pathIDs(g))

	hp := g.Paths[0]
	assert.Equal(t, HistoricalColor, hp.Color)
	assert.Equal(t, HistoricalWidth, hp.Width)
	assert.False(t, hp.Dashed)

	// the connector bridges the last historical point to the first forecast
	conn := g.Paths[1]
	require.Len(t, conn.Pts, 2)
	assert.Equal(t, g.Paths[0].Pts[len(g.Paths[0].Pts)-1], conn.Pts[0])
	assert.Equal(t, g.Paths[2].Pts[0], conn.Pts[1])
	assert.False(t, conn.Dashed)

	// axis spans the historical window plus the synthetic future dates
	assert.Len(t, g.XTicks, len(hist)+len(future))
}

func TestLayoutTruncatesLongSeries(t *testing.T) {
	hist := histPoints(2)
	future := timeseries.FutureDates(hist[len(hist)-1].Date, 2)
	forecasts := forecastset.NewSet()
	require.NoError(t, forecasts.Put(forecastset.Sarima, []float64{1, 2, 3, 4, 5}))

	g := Layout(Input{
		Mode:        Extrapolation,
		Historical:  hist,
		Forecasts:   forecasts,
		FutureDates: future,
	})

	for _, p := range g.Paths {
		if p.ID == "forecast-sarima" {
			assert.Len(t, p.Pts, len(future))
		}
	}
}

func TestLayoutEmptyInput(t *testing.T) {
	testData := map[string]struct {
		mode Mode
	}{
		"validation":    {Validation},
		"extrapolation": {Extrapolation},
	}
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			g := Layout(Input{Mode: td.mode})
			assert.Empty(t, g.Paths)
			assert.Empty(t, g.Markers)
			assert.Empty(t, g.XTicks)
			assert.NotEmpty(t, g.YTicks)
			assert.Empty(t, g.Legend.Items)
		})
	}
}

func TestLayoutLegend(t *testing.T) {
	forecasts := forecastset.NewSet()
	require.NoError(t, forecasts.Put(forecastset.Sarima, []float64{1}))
	require.NoError(t, forecasts.Put(forecastset.SVR, nil))
	require.NoError(t, forecasts.Put(forecastset.SarimaSVR, []float64{2}))

	val := layoutLegend(Validation, forecasts)
	require.Len(t, val.Items, 2)
	assert.Equal(t, "SARIMA", val.Items[0].Label)
	assert.Equal(t, "SARIMA+SVR", val.Items[1].Label)
	assert.Equal(t, 0, val.Items[0].Row)
	assert.Equal(t, 1, val.Items[1].Row)
	assert.Equal(t, 2*LegendRowHeight, val.Height)

	ext := layoutLegend(Extrapolation, forecasts)
	require.Len(t, ext.Items, 3)
	assert.Equal(t, "Original values", ext.Items[0].Label)
	assert.Equal(t, HistoricalColor, ext.Items[0].Color)
	assert.Equal(t, 3*LegendRowHeight, ext.Height)
}
