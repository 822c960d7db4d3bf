// Package theme applies and persists the user's color theme.
//
// A theme is applied by toggling markers on a rendering scope, the same way
// the web client toggles theme-* classes on the document body: every theme
// marker is removed and exactly one is added back.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Theme names a selectable set of colors.
type Theme string

const (
	Purple   Theme = "purple"
	Midnight Theme = "midnight"
	Soft     Theme = "soft"
)

// Default is applied when no preference has been stored.
const Default = Purple

// All lists the themes in selection order.
var All = []Theme{Purple, Midnight, Soft}

// ErrUnknownTheme is returned by Parse for names outside All.
var ErrUnknownTheme = errors.New("unknown theme")

const markerPrefix = "theme-"

// Parse returns the theme named s (case-insensitive, trimmed).
func Parse(s string) (Theme, error) {
	name := Theme(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range All {
		if t == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of %s", ErrUnknownTheme, s, names())
}

func names() string {
	out := make([]string, len(All))
	for i, t := range All {
		out[i] = string(t)
	}
	return strings.Join(out, ", ")
}

// Marker is the scope marker that identifies t.
func (t Theme) Marker() string { return markerPrefix + string(t) }

// Next returns the theme after t in selection order, wrapping around.
func (t Theme) Next() Theme {
	for i, c := range All {
		if c == t {
			return All[(i+1)%len(All)]
		}
	}
	return Default
}

func (t Theme) String() string { return string(t) }

// Markers is the set of style markers on a rendering scope.
type Markers struct {
	set map[string]struct{}
}

// NewMarkers returns a scope carrying the given markers.
func NewMarkers(initial ...string) *Markers {
	m := &Markers{set: make(map[string]struct{})}
	m.Add(initial...)
	return m
}

// Add sets each marker.
func (m *Markers) Add(markers ...string) {
	for _, k := range markers {
		m.set[k] = struct{}{}
	}
}

// Remove clears each marker. Missing markers are ignored.
func (m *Markers) Remove(markers ...string) {
	for _, k := range markers {
		delete(m.set, k)
	}
}

// Has reports whether marker is set.
func (m *Markers) Has(marker string) bool {
	_, ok := m.set[marker]
	return ok
}

// List returns the markers in sorted order.
func (m *Markers) List() []string {
	out := make([]string, 0, len(m.set))
	for k := range m.set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Themes returns the theme markers present, in sorted order.
func (m *Markers) Themes() []string {
	var out []string
	for _, k := range m.List() {
		if strings.HasPrefix(k, markerPrefix) {
			out = append(out, k)
		}
	}
	return out
}

// Apply leaves exactly one theme marker, t's, on the scope. Other markers
// are untouched.
func Apply(m *Markers, t Theme) {
	for _, k := range m.Themes() {
		m.Remove(k)
	}
	m.Add(t.Marker())
}
