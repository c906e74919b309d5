package styles

import "github.com/charmbracelet/lipgloss"

// Theme represents a color scheme for the reader
type Theme struct {
	Name        string
	Description string

	// Core colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color

	// UI element colors
	Border        lipgloss.Color
	Selection     lipgloss.Color
	SelectionText lipgloss.Color
	Track         lipgloss.Color
}

// Built-in themes, in the reader's cycle order
var (
	// LightTheme is paper white, and the theme shown when following a light system
	LightTheme = Theme{
		Name:          "light",
		Description:   "Light theme (follows system)",
		Primary:       lipgloss.Color("#2563EB"),
		Secondary:     lipgloss.Color("#0891B2"),
		Background:    lipgloss.Color("#FFFFFF"),
		Foreground:    lipgloss.Color("#1F2937"),
		Success:       lipgloss.Color("#059669"),
		Warning:       lipgloss.Color("#D97706"),
		Error:         lipgloss.Color("#DC2626"),
		Muted:         lipgloss.Color("#9CA3AF"),
		Border:        lipgloss.Color("#E5E7EB"),
		Selection:     lipgloss.Color("#2563EB"),
		SelectionText: lipgloss.Color("#FFFFFF"),
		Track:         lipgloss.Color("#E5E7EB"),
	}

	// SepiaTheme is a warm low-contrast paper tone
	SepiaTheme = Theme{
		Name:          "sepia",
		Description:   "Sepia theme",
		Primary:       lipgloss.Color("#8B5E34"),
		Secondary:     lipgloss.Color("#A0522D"),
		Background:    lipgloss.Color("#F4ECD8"),
		Foreground:    lipgloss.Color("#5B4636"),
		Success:       lipgloss.Color("#6B8E23"),
		Warning:       lipgloss.Color("#B8860B"),
		Error:         lipgloss.Color("#B22222"),
		Muted:         lipgloss.Color("#A89880"),
		Border:        lipgloss.Color("#D9CBB0"),
		Selection:     lipgloss.Color("#8B5E34"),
		SelectionText: lipgloss.Color("#F4ECD8"),
		Track:         lipgloss.Color("#E4D6B8"),
	}

	// DarkTheme is the night theme
	DarkTheme = Theme{
		Name:          "dark",
		Description:   "Dark theme",
		Primary:       lipgloss.Color("#7C3AED"),
		Secondary:     lipgloss.Color("#06B6D4"),
		Background:    lipgloss.Color("#1F2937"),
		Foreground:    lipgloss.Color("#F9FAFB"),
		Success:       lipgloss.Color("#10B981"),
		Warning:       lipgloss.Color("#F59E0B"),
		Error:         lipgloss.Color("#EF4444"),
		Muted:         lipgloss.Color("#6B7280"),
		Border:        lipgloss.Color("#374151"),
		Selection:     lipgloss.Color("#7C3AED"),
		SelectionText: lipgloss.Color("#F9FAFB"),
		Track:         lipgloss.Color("#374151"),
	}

	// BuiltinThemes is every theme in cycle order
	BuiltinThemes = []Theme{
		LightTheme,
		SepiaTheme,
		DarkTheme,
	}

	// currentTheme holds the active theme
	currentTheme = LightTheme
)

// GetTheme returns a theme by name, or the light theme if not found
func GetTheme(name string) Theme {
	for _, t := range BuiltinThemes {
		if t.Name == name {
			return t
		}
	}
	return LightTheme
}

// GetThemeNames returns a list of all available theme names
func GetThemeNames() []string {
	names := make([]string, len(BuiltinThemes))
	for i, t := range BuiltinThemes {
		names[i] = t.Name
	}
	return names
}

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetCurrentTheme sets the active theme by name. It reports whether the
// theme actually changed.
func SetCurrentTheme(name string) bool {
	next := GetTheme(name)
	if next.Name == currentTheme.Name {
		return false
	}
	currentTheme = next
	ApplyTheme(currentTheme)
	return true
}

// ApplyTheme updates all global styles to use the given theme's colors
func ApplyTheme(theme Theme) {
	// Update color variables
	Primary = theme.Primary
	Secondary = theme.Secondary
	Success = theme.Success
	Warning = theme.Warning
	Error = theme.Error
	Muted = theme.Muted
	Background = theme.Background
	Foreground = theme.Foreground
	Border = theme.Border
	Track = theme.Track

	// Update styles
	App = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Background)

	StatusBar = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 1)

	Help = lipgloss.NewStyle().
		Foreground(theme.Muted)

	HelpKey = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	MutedText = lipgloss.NewStyle().
		Foreground(theme.Muted)

	SecondaryText = lipgloss.NewStyle().
		Foreground(theme.Secondary)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Padding(0, 1)

	ListItem = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Padding(0, 2)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Selection).
		Padding(0, 2).
		Bold(true)

	ListItemDimmed = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 2)

	ReaderContent = lipgloss.NewStyle().
		Foreground(theme.Foreground)

	ChapterTitle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	ReaderHeader = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	ReaderProgress = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Align(lipgloss.Right)

	ProgressFill = lipgloss.NewStyle().
		Foreground(theme.Secondary)

	ProgressTrack = lipgloss.NewStyle().
		Foreground(theme.Track)

	Dialog = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		MarginBottom(1)

	Button = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Border).
		Padding(0, 2).
		MarginRight(1)

	ButtonFocused = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Primary).
		Padding(0, 2).
		MarginRight(1).
		Bold(true)

	ButtonDisabled = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 2).
		MarginRight(1)

	BookTitle = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Bold(true)

	BookAuthor = lipgloss.NewStyle().
		Foreground(theme.Secondary)
}

// init applies the default theme on package load
func init() {
	ApplyTheme(LightTheme)
}
