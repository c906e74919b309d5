package reader

import "github.com/justyntemme/inkreader/internal/prefs"

// State is the mutable reading state of one session.
type State struct {
	CurrentChapter  int
	ThemeIndex      int
	FontScale       float64
	LineHeightScale float64
	WidthScale      float64
	Progress        map[int]int
}

func stateFromSettings(settings prefs.Settings) State {
	st := State{
		CurrentChapter:  max(settings.CurrentChapter, 0),
		ThemeIndex:      settings.ThemeIndex,
		FontScale:       Font.Clamp(settings.FontScale),
		LineHeightScale: LineHeight.Clamp(settings.LineHeightScale),
		WidthScale:      Width.Clamp(settings.WidthScale),
		Progress:        make(map[int]int, len(settings.Progress)),
	}
	if st.ThemeIndex < 0 || st.ThemeIndex >= ThemeCount {
		st.ThemeIndex = 0
	}
	for k, v := range settings.Progress {
		if k >= 0 {
			st.Progress[k] = clampInt(v, 0, 100)
		}
	}
	return st
}

// Settings snapshots the state for persistence.
func (st State) Settings() prefs.Settings {
	out := prefs.Settings{
		ThemeIndex:      st.ThemeIndex,
		FontScale:       st.FontScale,
		LineHeightScale: st.LineHeightScale,
		WidthScale:      st.WidthScale,
		CurrentChapter:  st.CurrentChapter,
		Progress:        st.Progress,
	}
	return out.Clone()
}

// State returns a copy of the current state.
func (s *Session) State() State {
	out := s.state
	out.Progress = make(map[int]int, len(s.state.Progress))
	for k, v := range s.state.Progress {
		out.Progress[k] = v
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FontScale returns the font size offset.
func (s *Session) FontScale() float64 { return s.state.FontScale }

// LineHeightScale returns the line height offset.
func (s *Session) LineHeightScale() float64 { return s.state.LineHeightScale }

// WidthScale returns the content width offset.
func (s *Session) WidthScale() float64 { return s.state.WidthScale }

// SetFontScale clamps and stores v. It reports whether anything changed;
// an unchanged value is neither re-applied nor persisted.
func (s *Session) SetFontScale(v float64) bool {
	return s.setScale(&s.state.FontScale, Font, v)
}

// SetLineHeightScale clamps and stores v.
func (s *Session) SetLineHeightScale(v float64) bool {
	return s.setScale(&s.state.LineHeightScale, LineHeight, v)
}

// SetWidthScale clamps and stores v.
func (s *Session) SetWidthScale(v float64) bool {
	return s.setScale(&s.state.WidthScale, Width, v)
}

// StepFont moves the font scale by n steps.
func (s *Session) StepFont(n int) bool {
	return s.SetFontScale(s.state.FontScale + Font.DiscreteToScale(n))
}

// StepLineHeight moves the line height scale by n steps.
func (s *Session) StepLineHeight(n int) bool {
	return s.SetLineHeightScale(s.state.LineHeightScale + LineHeight.DiscreteToScale(n))
}

// StepWidth moves the width scale by n steps.
func (s *Session) StepWidth(n int) bool {
	return s.SetWidthScale(s.state.WidthScale + Width.DiscreteToScale(n))
}

func (s *Session) setScale(field *float64, scale Scale, v float64) bool {
	next := scale.Clamp(v)
	if next == *field {
		return false
	}
	*field = next
	s.logger.Debug("scale changed", "scale", scale.Name, "value", next, "label", scale.Label(next))
	s.present()
	s.persist()
	return true
}

// ResetScales returns all three scales to zero with a single write.
func (s *Session) ResetScales() bool {
	if s.state.FontScale == 0 && s.state.LineHeightScale == 0 && s.state.WidthScale == 0 {
		return false
	}
	s.state.FontScale = 0
	s.state.LineHeightScale = 0
	s.state.WidthScale = 0
	s.logger.Debug("scales reset")
	s.present()
	s.persist()
	return true
}
