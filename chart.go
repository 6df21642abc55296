// Package forecastviz renders interactive comparison charts of historical
// time series values against validation and out-of-sample forecasts from
// several competing methods.
package forecastviz

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/forecastlab/forecastviz/scene"
)

// MeasureFunc reports the current container size. ok is false when the
// container exists but has not been measured yet, in which case the default
// drawing size applies.
type MeasureFunc func() (width, height float64, ok bool)

// Chart owns the one live scene for a single chart mode. Validation and
// extrapolation charts are separate Chart instances with distinct scene keys,
// so they never collide.
type Chart struct {
	mode    scene.Mode
	opt     *Options
	builder scene.Builder
	measure MeasureFunc
	handle  scene.Handle
	logger  zerolog.Logger
}

func NewChart(mode scene.Mode, builder scene.Builder, opt *Options, logger zerolog.Logger) *Chart {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	return &Chart{
		mode:    mode,
		opt:     opt,
		builder: builder,
		logger:  logger.With().Str("chart", mode.Key()).Logger(),
	}
}

// Mount attaches the chart to a measurable container. Until mounted every
// redraw request is a no-op.
func (c *Chart) Mount(measure MeasureFunc) {
	c.measure = measure
}

// Unmount tears the scene down and detaches from the container.
func (c *Chart) Unmount() {
	c.Teardown()
	c.measure = nil
}

// Redraw discards the previous scene and builds a new one from the given
// state snapshot. The previous scene is always torn down first, so a loading
// state or emptied dataset leaves no stale scene behind. Exactly one scene
// handle is alive per chart at any time.
func (c *Chart) Redraw(st State) error {
	c.Teardown()

	if c.measure == nil {
		// Not mounted; nothing to draw into.
		return nil
	}
	if st.Loading || st.Dataset.Empty() || st.DateColumn == "" || st.TargetColumn == "" {
		return nil
	}
	if !st.HasForecasts(c.mode == scene.Validation) {
		return nil
	}

	width, height, measured := c.measure()
	if !measured {
		width, height = 0, 0
	}

	// The validation chart compares forecast error only, but its date axis is
	// still the historical one; Layout suppresses the historical line there.
	in := scene.Input{
		Mode:            c.mode,
		Historical:      st.HistoricalPoints(c.opt.Window),
		ContainerWidth:  width,
		ContainerHeight: height,
	}
	if c.mode == scene.Validation {
		in.Forecasts = st.VisibleValidation
	} else {
		in.Forecasts = st.VisibleExtrapolated
		in.FutureDates = st.FutureDates(c.opt.Window)
	}

	handle, err := c.builder.Draw(scene.Layout(in))
	if err != nil {
		c.logger.Error().Err(err).Msg("scene draw failed")
		return fmt.Errorf("unable to draw %s scene, %w", c.mode, err)
	}
	c.handle = handle
	return nil
}

// Teardown destroys the live scene, if any. Safe to call repeatedly.
func (c *Chart) Teardown() {
	if c.handle == nil {
		return
	}
	c.builder.Destroy(c.handle)
	c.handle = nil
}

// Scene returns the live scene handle or nil when torn down.
func (c *Chart) Scene() scene.Handle {
	return c.handle
}
