package reader

// PanelControl is a focusable control in the settings panel.
type PanelControl int

const (
	ControlTheme PanelControl = iota
	ControlFont
	ControlLineHeight
	ControlWidth
	ControlReset
	controlCount
)

func (c PanelControl) String() string {
	switch c {
	case ControlTheme:
		return "theme"
	case ControlFont:
		return "font"
	case ControlLineHeight:
		return "line height"
	case ControlWidth:
		return "width"
	case ControlReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Scale returns the scale a slider control edits.
func (c PanelControl) Scale() (Scale, bool) {
	switch c {
	case ControlFont:
		return Font, true
	case ControlLineHeight:
		return LineHeight, true
	case ControlWidth:
		return Width, true
	default:
		return Scale{}, false
	}
}

// ClickTarget classifies where a pointer click landed.
type ClickTarget int

const (
	ClickOutside ClickTarget = iota
	ClickPanel
	ClickToggle
)

type panelState struct {
	open  bool
	focus PanelControl
}

// SettingsOpen reports whether the settings panel is shown.
func (s *Session) SettingsOpen() bool { return s.panel.open }

// PanelFocus returns the focused panel control.
func (s *Session) PanelFocus() PanelControl { return s.panel.focus }

// ToggleSettings opens a closed panel and closes an open one.
func (s *Session) ToggleSettings() {
	if s.panel.open {
		s.CloseSettings()
		return
	}
	s.OpenSettings()
}

// OpenSettings shows the panel with the first control focused.
func (s *Session) OpenSettings() {
	s.panel = panelState{open: true, focus: ControlTheme}
	s.tocOpen = false
}

// CloseSettings hides the panel.
func (s *Session) CloseSettings() {
	s.panel.open = false
}

// Click applies outside-click semantics: a click that lands on neither
// the panel nor its toggle closes an open panel. Clicks on the toggle
// are handled by ToggleSettings.
func (s *Session) Click(target ClickTarget) {
	if !s.panel.open {
		return
	}
	if target == ClickOutside {
		s.CloseSettings()
	}
}

// Escape closes the settings panel, or failing that the table of
// contents. It reports whether anything was closed.
func (s *Session) Escape() bool {
	switch {
	case s.panel.open:
		s.CloseSettings()
		return true
	case s.tocOpen:
		s.tocOpen = false
		return true
	}
	return false
}

// MovePanelFocus moves focus delta controls, wrapping around.
func (s *Session) MovePanelFocus(delta int) {
	n := int(controlCount)
	s.panel.focus = PanelControl(((int(s.panel.focus)+delta)%n + n) % n)
}

// AdjustFocused steps the focused control by delta. On the reset control
// any adjustment resets the scales.
func (s *Session) AdjustFocused(delta int) {
	if !s.panel.open {
		return
	}
	switch s.panel.focus {
	case ControlTheme:
		s.SelectTheme(((s.state.ThemeIndex+delta)%ThemeCount + ThemeCount) % ThemeCount)
	case ControlFont:
		s.StepFont(delta)
	case ControlLineHeight:
		s.StepLineHeight(delta)
	case ControlWidth:
		s.StepWidth(delta)
	case ControlReset:
		s.ResetScales()
	}
}

// SetSlider focuses a slider control and moves it straight to position
// pos. It reports whether the scale changed.
func (s *Session) SetSlider(c PanelControl, pos int) bool {
	scale, ok := c.Scale()
	if !s.panel.open || !ok {
		return false
	}
	s.panel.focus = c
	v := scale.DiscreteToScale(pos)
	switch c {
	case ControlFont:
		return s.SetFontScale(v)
	case ControlLineHeight:
		return s.SetLineHeightScale(v)
	default:
		return s.SetWidthScale(v)
	}
}

// ActivateFocused triggers the focused control: it rotates the theme or
// resets the scales. Sliders have no activation.
func (s *Session) ActivateFocused() {
	if !s.panel.open {
		return
	}
	switch s.panel.focus {
	case ControlTheme:
		s.RotateTheme()
	case ControlReset:
		s.ResetScales()
	}
}
