package forecastset

import "strings"

// Method identifies one of the four supported forecasting techniques. The set
// is closed; each method carries a fixed line color and display label so every
// chart instance renders the same method the same way.
type Method string

const (
	Sarima    Method = "sarima"
	SVR       Method = "svr"
	LSTM      Method = "lstm"
	SarimaSVR Method = "sarima_svr"
)

// Methods returns all supported methods in canonical order.
func Methods() []Method {
	return []Method{Sarima, SVR, LSTM, SarimaSVR}
}

func (m Method) String() string {
	return string(m)
}

func (m Method) Valid() bool {
	switch m {
	case Sarima, SVR, LSTM, SarimaSVR:
		return true
	}
	return false
}

// Color returns the fixed line color assigned to the method.
func (m Method) Color() string {
	switch m {
	case Sarima:
		return "blue"
	case SVR:
		return "orange"
	case LSTM:
		return "green"
	case SarimaSVR:
		return "red"
	}
	return "black"
}

// Label returns the display label, e.g. "SARIMA+SVR" for sarima_svr.
func (m Method) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(m), "_", "+"))
}
