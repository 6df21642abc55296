package forecastset

// Visibility tracks which methods the user has toggled on. Values are treated
// as immutable snapshots; Toggle returns a new map so prior snapshots held by
// the host stay valid for equality checks.
type Visibility map[Method]bool

// DefaultVisibility starts with every method shown.
func DefaultVisibility() Visibility {
	vis := make(Visibility, len(Methods()))
	for _, m := range Methods() {
		vis[m] = true
	}
	return vis
}

// Toggle returns a copy of the visibility state with the method set to
// checked. Toggling to the current value is a no-op copy.
func (v Visibility) Toggle(m Method, checked bool) Visibility {
	out := make(Visibility, len(v)+1)
	for key, val := range v {
		out[key] = val
	}
	out[m] = checked
	return out
}

// Visible reports whether a method should be drawn. Methods missing from the
// snapshot are hidden.
func (v Visibility) Visible(m Method) bool {
	return v[m]
}
