package forecastset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethod(t *testing.T) {
	testData := map[string]struct {
		method Method
		valid  bool
		color  string
		label  string
	}{
		"sarima":     {Sarima, true, "blue", "SARIMA"},
		"svr":        {SVR, true, "orange", "SVR"},
		"lstm":       {LSTM, true, "green", "LSTM"},
		"sarima_svr": {SarimaSVR, true, "red", "SARIMA+SVR"},
		"unknown":    {Method("prophet"), false, "black", "PROPHET"},
	}
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.valid, td.method.Valid())
			assert.Equal(t, td.color, td.method.Color())
			assert.Equal(t, td.label, td.method.Label())
		})
	}
}

func TestSetPut(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Put(Sarima, []float64{1, 2}))
	require.NoError(t, s.Put(SVR, []float64{3}))
	require.ErrorIs(t, s.Put(Method("bogus"), nil), ErrUnknownMethod)

	assert.Equal(t, []Method{Sarima, SVR}, s.Methods())
	assert.Equal(t, []float64{1, 2}, s.Values(Sarima))
	assert.Equal(t, 2, s.MaxLen())

	// replacing keeps the original position
	require.NoError(t, s.Put(Sarima, []float64{9}))
	assert.Equal(t, []Method{Sarima, SVR}, s.Methods())
	assert.Equal(t, []float64{9}, s.Values(Sarima))
}

func TestSetPutCopies(t *testing.T) {
	src := []float64{1, 2, 3}
	s := NewSet()
	require.NoError(t, s.Put(LSTM, src))
	src[0] = 99
	assert.Equal(t, []float64{1, 2, 3}, s.Values(LSTM))
}

func TestSetFirstNonEmpty(t *testing.T) {
	testData := map[string]struct {
		setup    func() *Set
		expected Method
		ok       bool
	}{
		"nil set": {
			setup: func() *Set { return nil },
		},
		"all empty": {
			setup: func() *Set {
				s := NewSet()
				s.Put(Sarima, nil)
				s.Put(SVR, nil)
				return s
			},
		},
		"skips empty leaders": {
			setup: func() *Set {
				s := NewSet()
				s.Put(Sarima, nil)
				s.Put(LSTM, []float64{1})
				s.Put(SVR, []float64{2})
				return s
			},
			expected: LSTM,
			ok:       true,
		},
	}
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			m, _, ok := td.setup().FirstNonEmpty()
			require.Equal(t, td.ok, ok)
			if td.ok {
				assert.Equal(t, td.expected, m)
			}
		})
	}
}

func TestSetVisible(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Put(Sarima, []float64{1, 2}))
	require.NoError(t, s.Put(SVR, []float64{3, 4}))

	vis := DefaultVisibility().Toggle(SVR, false)
	visible := s.Visible(vis)

	assert.Equal(t, []float64{1, 2}, visible.Values(Sarima))
	assert.Empty(t, visible.Values(SVR))
	assert.Equal(t, []Method{Sarima, SVR}, visible.Methods())

	// the source set is untouched
	assert.Equal(t, []float64{3, 4}, s.Values(SVR))
}
