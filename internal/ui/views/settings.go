package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/inkreader/internal/reader"
	"github.com/justyntemme/inkreader/internal/ui/styles"
)

const (
	settingsTitle = "Reading settings"
	// sliderIndent is the marker and label width before a row's control
	sliderIndent = 14
)

// SettingsView is the reading preferences panel
type SettingsView struct {
	session *reader.Session

	width  int
	height int
}

// NewSettingsView creates a new settings panel view
func NewSettingsView() *SettingsView {
	return &SettingsView{width: 80, height: 24}
}

// SetSession attaches the session whose settings are edited
func (v *SettingsView) SetSession(s *reader.Session) {
	v.session = s
}

// SetSize implements View
func (v *SettingsView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View implements View
func (v *SettingsView) View() string {
	return lipgloss.Place(
		v.width,
		v.height,
		lipgloss.Center,
		lipgloss.Center,
		v.panel(),
	)
}

// Bounds returns the panel rectangle as placed by View
func (v *SettingsView) Bounds() (x, y, w, h int) {
	panel := v.panel()
	w, h = lipgloss.Width(panel), lipgloss.Height(panel)
	return max((v.width-w)/2, 0), max((v.height-h)/2, 0), w, h
}

// Contains reports whether cell (x, y) lies inside the panel
func (v *SettingsView) Contains(x, y int) bool {
	px, py, w, h := v.Bounds()
	return x >= px && x < px+w && y >= py && y < py+h
}

// SliderAt maps cell (x, y) to a slider control and the position under
// it. Rows and columns follow the layout drawn by panel.
func (v *SettingsView) SliderAt(x, y int) (reader.PanelControl, int, bool) {
	px, py, _, _ := v.Bounds()
	left := px + styles.Dialog.GetBorderLeftSize() + styles.Dialog.GetPaddingLeft() + sliderIndent
	top := py + styles.Dialog.GetBorderTopSize() + styles.Dialog.GetPaddingTop() +
		lipgloss.Height(styles.DialogTitle.Render(settingsTitle))

	// Row 0 is the theme selector
	control := reader.PanelControl(y - top)
	scale, ok := control.Scale()
	if !ok {
		return 0, 0, false
	}
	lo, hi := scale.Positions()
	cell := x - left
	if cell < 0 || cell > hi-lo {
		return 0, 0, false
	}
	return control, lo + cell, true
}

func (v *SettingsView) panel() string {
	s := v.session
	focus := s.PanelFocus()

	rows := []string{
		v.row(focus == reader.ControlTheme, "Theme", v.themeSelector()),
		v.row(focus == reader.ControlFont, "Font size", renderSlider(reader.Font, s.FontScale())),
		v.row(focus == reader.ControlLineHeight, "Line height", renderSlider(reader.LineHeight, s.LineHeightScale())),
		v.row(focus == reader.ControlWidth, "Width", renderSlider(reader.Width, s.WidthScale())),
		"",
		v.resetButton(focus == reader.ControlReset),
	}

	body := styles.DialogTitle.Render(settingsTitle) + "\n" +
		strings.Join(rows, "\n") + "\n\n" +
		styles.Help.Render("↑/↓ select • ←/→ adjust • enter apply • esc close")

	return styles.Dialog.Render(body)
}

func (v *SettingsView) row(focused bool, label, control string) string {
	label = fmt.Sprintf("%-*s", sliderIndent-2, label)
	if focused {
		return styles.HelpKey.Render("▸ "+label) + control
	}
	return styles.MutedText.Render("  "+label) + control
}

// themeSelector marks the stored choice; index 0 notes what it resolves to
func (v *SettingsView) themeSelector() string {
	s := v.session
	parts := make([]string, 0, reader.ThemeCount)
	for _, t := range reader.Themes() {
		name := t.String()
		if t == reader.ThemeLight {
			name = "light (auto)"
			if s.ThemeIndex() == int(reader.ThemeLight) && s.AppliedTheme() != reader.ThemeLight {
				name = "light (auto: " + s.AppliedTheme().String() + ")"
			}
		}
		if int(t) == s.ThemeIndex() {
			parts = append(parts, styles.SecondaryText.Bold(true).Render("● "+name))
		} else {
			parts = append(parts, styles.MutedText.Render("○ "+name))
		}
	}
	return strings.Join(parts, "  ")
}

func (v *SettingsView) resetButton(focused bool) string {
	if focused {
		return "  " + styles.ButtonFocused.Render("Reset")
	}
	return "  " + styles.Button.Render("Reset")
}

// renderSlider draws one cell per discrete position with the current one marked
func renderSlider(scale reader.Scale, value float64) string {
	lo, hi := scale.Positions()
	pos := scale.ScaleToDiscrete(value)

	var b strings.Builder
	for n := lo; n <= hi; n++ {
		switch {
		case n == pos:
			b.WriteString(styles.ProgressFill.Render("●"))
		case n < pos:
			b.WriteString(styles.ProgressFill.Render("─"))
		default:
			b.WriteString(styles.ProgressTrack.Render("─"))
		}
	}
	return b.String() + " " + styles.SecondaryText.Render(scale.Label(value))
}
