package forecastset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVisibility(t *testing.T) {
	vis := DefaultVisibility()
	for _, m := range Methods() {
		assert.True(t, vis.Visible(m))
	}
}

func TestToggleDoesNotMutateSnapshot(t *testing.T) {
	before := DefaultVisibility()
	after := before.Toggle(LSTM, false)

	assert.True(t, before.Visible(LSTM))
	assert.False(t, after.Visible(LSTM))
}

func TestToggleIdempotent(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Put(Sarima, []float64{1, 2, 3}))

	vis := DefaultVisibility()
	once := s.Visible(vis.Toggle(Sarima, true))
	twice := s.Visible(vis.Toggle(Sarima, true).Toggle(Sarima, true))
	assert.Equal(t, once.Values(Sarima), twice.Values(Sarima))

	// hide then show restores the full sequence
	roundTrip := vis.Toggle(Sarima, false).Toggle(Sarima, true)
	assert.Equal(t, []float64{1, 2, 3}, s.Visible(roundTrip).Values(Sarima))
}
