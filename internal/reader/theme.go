package reader

// Theme is one of the fixed reading themes, in cycle order.
type Theme int

const (
	// ThemeLight is index 0 and doubles as "follow the system".
	ThemeLight Theme = iota
	ThemeSepia
	ThemeDark
)

// ThemeCount is the number of selectable themes.
const ThemeCount = 3

var themeNames = [ThemeCount]string{"light", "sepia", "dark"}

func (t Theme) String() string {
	if t < 0 || int(t) >= ThemeCount {
		return "unknown"
	}
	return themeNames[t]
}

// Themes lists every theme in cycle order.
func Themes() []Theme {
	return []Theme{ThemeLight, ThemeSepia, ThemeDark}
}

// Presentation is everything the view layer derives its look from.
type Presentation struct {
	Theme      Theme
	FontSize   float64 // rem
	LineHeight float64
	MaxWidth   float64 // px
}

// Presentation computes the current presentation values from state.
func (s *Session) Presentation() Presentation {
	return Presentation{
		Theme:      s.AppliedTheme(),
		FontSize:   Font.Apply(s.state.FontScale),
		LineHeight: LineHeight.Apply(s.state.LineHeightScale),
		MaxWidth:   Width.Apply(s.state.WidthScale),
	}
}

// AppliedTheme is the theme actually shown. Index 0 follows the system
// scheme; any other index is shown as chosen.
func (s *Session) AppliedTheme() Theme {
	if s.state.ThemeIndex == int(ThemeLight) && s.systemDark {
		return ThemeDark
	}
	return Theme(s.state.ThemeIndex)
}

// ThemeIndex is the stored theme selection.
func (s *Session) ThemeIndex() int {
	return s.state.ThemeIndex
}

// RotateTheme advances to the next theme in cycle order.
func (s *Session) RotateTheme() {
	s.SelectTheme((s.state.ThemeIndex + 1) % ThemeCount)
}

// SelectTheme stores and applies theme index i. Out of range indexes are
// ignored.
func (s *Session) SelectTheme(i int) {
	if i < 0 || i >= ThemeCount {
		return
	}
	s.state.ThemeIndex = i
	s.logger.Debug("theme selected", "theme", Theme(i).String(), "applied", s.AppliedTheme().String())
	s.present()
	s.persist()
}

// SystemSchemeChanged records the OS dark-mode preference. The stored
// index is never touched; presentation is re-applied only while the
// index is 0.
func (s *Session) SystemSchemeChanged(dark bool) {
	s.systemDark = dark
	if s.state.ThemeIndex != int(ThemeLight) {
		return
	}
	s.logger.Debug("following system scheme", "dark", dark)
	s.present()
}

// SystemDark reports the last known OS dark-mode preference.
func (s *Session) SystemDark() bool {
	return s.systemDark
}
