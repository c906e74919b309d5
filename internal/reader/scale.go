package reader

import (
	"math"

	"github.com/justyntemme/inkreader/internal/prefs"
)

// bucket labels every value below its threshold; the last bucket of a
// scale has no threshold and catches everything above.
type bucket struct {
	below float64
	label string
}

// Scale maps between discrete control positions and a continuous offset
// added to a base presentation value.
type Scale struct {
	Name string
	Unit string
	Step float64
	Min  float64
	Max  float64
	Base float64

	buckets []bucket
	last    string
}

var (
	// Font is the font size offset, in rem.
	Font = Scale{
		Name: "font", Unit: "rem",
		Step: 0.08, Min: -0.40, Max: 0.70, Base: 1.10,
		buckets: []bucket{{-0.24, "small"}, {0.16, "medium"}, {0.32, "large"}},
		last:    "extra-large",
	}

	// LineHeight is the line height offset, unitless.
	LineHeight = Scale{
		Name: "line height",
		Step: 0.08, Min: -0.16, Max: 0.32, Base: 1.85,
		buckets: []bucket{{-0.04, "compact"}, {0.16, "standard"}, {0.28, "relaxed"}},
		last:    "airy",
	}

	// Width is the content width offset, in px.
	Width = Scale{
		Name: "width", Unit: "px",
		Step: 40, Min: -80, Max: 160, Base: 680,
		buckets: []bucket{{-40, "narrow"}, {40, "standard"}, {120, "wide"}},
		last:    "full",
	}
)

// normalize strips accumulated float drift from step arithmetic.
func normalize(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// DiscreteToScale converts a control position to a scale value.
func (s Scale) DiscreteToScale(n int) float64 {
	return normalize(float64(n) * s.Step)
}

// ScaleToDiscrete converts a scale value to the nearest control position.
func (s Scale) ScaleToDiscrete(v float64) int {
	return int(math.Round(v / s.Step))
}

// Clamp limits v to [Min, Max].
func (s Scale) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return normalize(math.Min(math.Max(v, s.Min), s.Max))
}

// Apply returns the effective presentation value for v.
func (s Scale) Apply(v float64) float64 {
	return normalize(s.Base + v)
}

// Label returns the human-readable bucket for v.
func (s Scale) Label(v float64) string {
	for _, b := range s.buckets {
		if v < b.below {
			return b.label
		}
	}
	return s.last
}

// Positions returns the lowest and highest control positions.
func (s Scale) Positions() (lo, hi int) {
	return s.ScaleToDiscrete(s.Min), s.ScaleToDiscrete(s.Max)
}

// Range returns the accepted interval as a prefs.Range.
func (s Scale) Range() prefs.Range {
	return prefs.Range{Min: s.Min, Max: s.Max}
}

// Limits returns the persisted-field bounds the preference store should
// validate against.
func Limits() prefs.Limits {
	return prefs.Limits{
		ThemeCount: ThemeCount,
		Font:       Font.Range(),
		LineHeight: LineHeight.Range(),
		Width:      Width.Range(),
	}
}
