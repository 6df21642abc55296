package forecastviz

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forecastlab/forecastviz/forecastset"
	"github.com/forecastlab/forecastviz/scene"
)

type fakeHandle struct {
	key string
}

func (h *fakeHandle) Key() string { return h.key }

// fakeBuilder counts live handles so tests can assert that at most one scene
// exists per chart at any time.
type fakeBuilder struct {
	live    map[*fakeHandle]bool
	draws   int
	drawErr error
}

func newFakeBuilder() *fakeBuilder {
	return &fakeBuilder{live: map[*fakeHandle]bool{}}
}

func (b *fakeBuilder) Draw(g scene.Geometry) (scene.Handle, error) {
	if b.drawErr != nil {
		return nil, b.drawErr
	}
	b.draws++
	h := &fakeHandle{key: g.Key}
	b.live[h] = true
	return h, nil
}

func (b *fakeBuilder) Destroy(h scene.Handle) {
	if h == nil {
		return
	}
	delete(b.live, h.(*fakeHandle))
}

func drawableState(t *testing.T) State {
	t.Helper()
	set := forecastset.NewSet()
	require.NoError(t, set.Put(forecastset.Sarima, []float64{1, 2, 3}))
	return NewState().
		WithDataset(testDataset(6), "month", "sales").
		WithValidationForecasts(set).
		WithExtrapolatedForecasts(set)
}

func measured(w, h float64) MeasureFunc {
	return func() (float64, float64, bool) { return w, h, true }
}

func TestChartSingleScene(t *testing.T) {
	b := newFakeBuilder()
	c := NewChart(scene.Validation, b, nil, zerolog.Nop())
	c.Mount(measured(800, 500))

	st := drawableState(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Redraw(st))
		assert.Len(t, b.live, 1)
	}
	assert.Equal(t, 5, b.draws)
	assert.Equal(t, "chart-validation", c.Scene().Key())
}

func TestChartRedrawSkips(t *testing.T) {
	st := drawableState(t)

	testData := map[string]struct {
		mount bool
		state State
	}{
		"unmounted":    {mount: false, state: st},
		"loading":      {mount: true, state: st.WithLoading(true)},
		"no dataset":   {mount: true, state: NewState()},
		"no forecasts": {mount: true, state: NewState().WithDataset(testDataset(6), "month", "sales")},
	}
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			b := newFakeBuilder()
			c := NewChart(scene.Extrapolation, b, nil, zerolog.Nop())
			if td.mount {
				c.Mount(measured(800, 500))
			}
			require.NoError(t, c.Redraw(td.state))
			assert.Nil(t, c.Scene())
			assert.Empty(t, b.live)
		})
	}
}

func TestChartRedrawTearsDownFirst(t *testing.T) {
	b := newFakeBuilder()
	c := NewChart(scene.Extrapolation, b, nil, zerolog.Nop())
	c.Mount(measured(800, 500))

	st := drawableState(t)
	require.NoError(t, c.Redraw(st))
	require.NotNil(t, c.Scene())

	// a loading snapshot clears the previous scene even though nothing new
	// gets drawn
	require.NoError(t, c.Redraw(st.WithLoading(true)))
	assert.Nil(t, c.Scene())
	assert.Empty(t, b.live)
}

func TestChartDrawError(t *testing.T) {
	b := newFakeBuilder()
	b.drawErr = errors.New("surface gone")
	c := NewChart(scene.Validation, b, nil, zerolog.Nop())
	c.Mount(measured(800, 500))

	err := c.Redraw(drawableState(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, b.drawErr)
	assert.Nil(t, c.Scene())
}

func TestChartUnmount(t *testing.T) {
	b := newFakeBuilder()
	c := NewChart(scene.Validation, b, nil, zerolog.Nop())
	c.Mount(measured(800, 500))

	st := drawableState(t)
	require.NoError(t, c.Redraw(st))
	c.Unmount()
	assert.Nil(t, c.Scene())
	assert.Empty(t, b.live)

	// redraws after unmount are no-ops until remounted
	require.NoError(t, c.Redraw(st))
	assert.Nil(t, c.Scene())
}
