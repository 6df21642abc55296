package scale

import "time"

// Extents bundles both scales with the drawing size they were computed for.
type Extents struct {
	X      TimeScale
	Y      LinearScale
	Width  float64 // inner drawing width, margins excluded
	Height float64 // inner drawing height, margins excluded
	Margin Margin
}

// Compute derives chart extents from the union of plotted dates and visible
// values. containerWidth/containerHeight are the measured host dimensions;
// pass zero for an unmeasured (hidden or first-paint) container to fall back
// to the default size.
func Compute(dates []time.Time, values []float64, containerWidth, containerHeight float64) Extents {
	margin := DefaultMargin()

	width := DefaultWidth
	if containerWidth > 0 {
		width = containerWidth - margin.Left - margin.Right
	}
	height := DefaultHeight
	if containerHeight > 0 {
		height = containerHeight - margin.Top - margin.Bottom
	}

	return Extents{
		X:      NewTimeScale(dates, 40, width-margin.Right),
		Y:      NewLinearScale(values, height-margin.Bottom, margin.Top),
		Width:  width,
		Height: height,
		Margin: margin,
	}
}
