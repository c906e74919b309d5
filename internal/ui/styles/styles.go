package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Colors and styles are reassigned by ApplyTheme; the values here are
// placeholders until init runs.
var (
	// Colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
	Track      lipgloss.Color

	// Base styles
	App lipgloss.Style

	// Status bar at bottom
	StatusBar lipgloss.Style

	// Help text
	Help    lipgloss.Style
	HelpKey lipgloss.Style

	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style

	// Error message
	ErrorStyle lipgloss.Style

	// List styles
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemDimmed   lipgloss.Style

	// Reader styles
	ReaderContent  lipgloss.Style
	ChapterTitle   lipgloss.Style
	ReaderHeader   lipgloss.Style
	ReaderProgress lipgloss.Style
	ProgressFill   lipgloss.Style
	ProgressTrack  lipgloss.Style

	// Dialog/Modal styles
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Button styles
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style

	// Book info styles
	BookTitle  lipgloss.Style
	BookAuthor lipgloss.Style
)

// TruncateText shortens s to at most width terminal cells, ending in an
// ellipsis when anything was cut.
func TruncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width, "…")
}
