package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all application key bindings
type KeyMap struct {
	// Scrolling
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Actions
	Enter  key.Binding
	Escape key.Binding
	Quit   key.Binding
	Help   key.Binding

	// Reader specific
	NextChapter key.Binding
	PrevChapter key.Binding
	TOC         key.Binding

	// Preferences
	Settings      key.Binding
	RotateTheme   key.Binding
	ThemeLight    key.Binding
	ThemeSepia    key.Binding
	ThemeDark     key.Binding
	FontUp        key.Binding
	FontDown      key.Binding
	LineHeightUp  key.Binding
	LineHeightDn  key.Binding
	WidthUp       key.Binding
	WidthDown     key.Binding
	ResetScales   key.Binding
	PanelAdjustUp key.Binding
	PanelAdjustDn key.Binding
}

// DefaultKeyMap returns the default vim-like key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/^u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d", " "),
			key.WithHelp("PgDn/space", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "bottom"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "select"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		NextChapter: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→/l", "next chapter"),
		),
		PrevChapter: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←/h", "prev chapter"),
		),
		TOC: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "contents"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s", ","),
			key.WithHelp("s", "settings"),
		),
		RotateTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "next theme"),
		),
		ThemeLight: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "light / auto"),
		),
		ThemeSepia: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sepia"),
		),
		ThemeDark: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "dark"),
		),
		FontUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "larger text"),
		),
		FontDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "smaller text"),
		),
		LineHeightUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "more spacing"),
		),
		LineHeightDn: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "less spacing"),
		),
		WidthUp: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "wider"),
		),
		WidthDown: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "narrower"),
		),
		ResetScales: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset text"),
		),
		PanelAdjustUp: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "increase"),
		),
		PanelAdjustDn: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "decrease"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevChapter, k.NextChapter, k.TOC, k.Settings, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.PrevChapter, k.NextChapter, k.TOC, k.Enter, k.Escape},
		{k.Settings, k.RotateTheme, k.ThemeLight, k.ThemeSepia, k.ThemeDark},
		{k.FontUp, k.FontDown, k.LineHeightUp, k.LineHeightDn, k.WidthUp, k.WidthDown, k.ResetScales},
		{k.Help, k.Quit},
	}
}
