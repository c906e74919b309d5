package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/inkreader/internal/config"
	applog "github.com/justyntemme/inkreader/internal/logger"
	"github.com/justyntemme/inkreader/internal/reader"
	"github.com/justyntemme/inkreader/internal/source"
	"github.com/justyntemme/inkreader/internal/ui/styles"
	"github.com/justyntemme/inkreader/internal/ui/terminal"
	"github.com/justyntemme/inkreader/internal/ui/views"
)

// wheelLines is how far one mouse wheel notch scrolls
const wheelLines = 3

// Options wires the app to its collaborators
type Options struct {
	Context context.Context
	Config  *config.Config
	Client  *source.Client
	Store   reader.PreferenceStore
	Logger  *slog.Logger

	// Scheme is the desktop color scheme at startup
	Scheme terminal.ColorScheme
	// Schemes delivers later changes; nil when nothing is watched
	Schemes <-chan terminal.ColorScheme
	// OnClose runs when the app quits
	OnClose func()
}

// App is the main application model
type App struct {
	ctx    context.Context
	config *config.Config
	client *source.Client
	logger *slog.Logger
	keys   KeyMap

	session   *reader.Session
	scheduler *views.FrameScheduler
	schemes   <-chan terminal.ColorScheme

	// View models
	readerView   *views.ReaderView
	tocView      *views.TOCView
	settingsView *views.SettingsView

	help     help.Model
	showHelp bool

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new application instance
func NewApp(opts Options) *App {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = applog.Discard().Logger
	}
	client := opts.Client
	if client == nil {
		client = source.NewClient()
	}

	keys := DefaultKeyMap()
	app := &App{
		ctx:          ctx,
		config:       opts.Config,
		client:       client,
		logger:       logger,
		keys:         keys,
		scheduler:    views.NewFrameScheduler(opts.Config.Frame()),
		schemes:      opts.Schemes,
		readerView:   views.NewReaderView(keys),
		tocView:      views.NewTOCView(),
		settingsView: views.NewSettingsView(),
		help:         help.New(),
		width:        80,
		height:       24,
	}

	app.session = reader.NewSession(reader.Options{
		Context:    ctx,
		Store:      opts.Store,
		Viewport:   app.readerView,
		Scheduler:  app.scheduler,
		Presenter:  app.readerView,
		Logger:     logger,
		SystemDark: opts.Scheme.Dark(),
	})
	if opts.OnClose != nil {
		app.session.OnClose(opts.OnClose)
	}

	app.readerView.SetSession(app.session)
	app.readerView.SetLocation(opts.Config.Document)
	app.tocView.SetSession(app.session)
	app.settingsView.SetSession(app.session)

	return app
}

// Session returns the reading session
func (a *App) Session() *reader.Session {
	return a.session
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		views.FetchDocument(a.ctx, a.client, a.config.Document),
		views.WaitForScheme(a.schemes),
		tea.SetWindowTitle("inkreader"),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Propagate to all views; the settings panel sits below the header
		a.readerView.SetSize(msg.Width, msg.Height)
		a.tocView.SetSize(msg.Width, msg.Height)
		a.settingsView.SetSize(msg.Width, max(msg.Height-1, 1))

	case tea.KeyMsg:
		if cmd := a.handleKey(msg); cmd != nil {
			return a, cmd
		}

	case tea.MouseMsg:
		a.handleMouse(msg)

	case views.FrameMsg:
		a.scheduler.Run()

	case views.DocumentLoadedMsg:
		a.logger.Info("document loaded",
			"location", msg.Document.Location,
			"bytes", msg.Document.Size,
			"blake3", msg.Document.Fingerprint)
		if err := a.config.SetDocument(msg.Document.Location); err != nil {
			a.logger.Warn("failed to remember document", "error", err)
		}
		a.session.LoadBook(msg.Document.Book)

	case views.DocumentFailedMsg:
		a.session.FailLoad(msg.Err)

	case views.SchemeChangedMsg:
		a.logger.Debug("system color scheme changed", "scheme", msg.Scheme.String())
		a.session.SystemSchemeChanged(msg.Scheme.Dark())
		cmds = append(cmds, views.WaitForScheme(a.schemes))
	}

	cmds = append(cmds, a.scheduler.Cmd())
	return a, tea.Batch(cmds...)
}

// handleKey dispatches to the open overlay, or the reading area. A
// non-nil command ends the update.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Global key handling
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.session.Close()
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = !a.showHelp
		return nil

	case key.Matches(msg, a.keys.Escape):
		if a.showHelp {
			a.showHelp = false
			return nil
		}
		a.session.Escape()
		return nil
	}

	if a.showHelp {
		return nil
	}

	switch {
	case a.session.SettingsOpen():
		a.handleSettingsKey(msg)
	case a.session.TOCOpen():
		a.handleTOCKey(msg)
	default:
		a.handleReaderKey(msg)
	}
	return nil
}

// handlePreferenceKey handles theme and text keys, available everywhere
// but the table of contents
func (a *App) handlePreferenceKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, a.keys.RotateTheme):
		a.session.RotateTheme()
	case key.Matches(msg, a.keys.ThemeLight):
		a.session.SelectTheme(int(reader.ThemeLight))
	case key.Matches(msg, a.keys.ThemeSepia):
		a.session.SelectTheme(int(reader.ThemeSepia))
	case key.Matches(msg, a.keys.ThemeDark):
		a.session.SelectTheme(int(reader.ThemeDark))
	case key.Matches(msg, a.keys.FontUp):
		a.session.StepFont(1)
	case key.Matches(msg, a.keys.FontDown):
		a.session.StepFont(-1)
	case key.Matches(msg, a.keys.LineHeightUp):
		a.session.StepLineHeight(1)
	case key.Matches(msg, a.keys.LineHeightDn):
		a.session.StepLineHeight(-1)
	case key.Matches(msg, a.keys.WidthUp):
		a.session.StepWidth(1)
	case key.Matches(msg, a.keys.WidthDown):
		a.session.StepWidth(-1)
	case key.Matches(msg, a.keys.ResetScales):
		a.session.ResetScales()
	case key.Matches(msg, a.keys.Settings):
		a.session.ToggleSettings()
	default:
		return false
	}
	return true
}

func (a *App) handleReaderKey(msg tea.KeyMsg) {
	if a.handlePreferenceKey(msg) {
		return
	}

	switch {
	case key.Matches(msg, a.keys.Up):
		a.scroll(a.readerView.ScrollBy(-1))
	case key.Matches(msg, a.keys.Down):
		a.scroll(a.readerView.ScrollBy(1))
	case key.Matches(msg, a.keys.PageUp):
		a.scroll(a.readerView.ScrollBy(-a.readerView.PageSize()))
	case key.Matches(msg, a.keys.PageDown):
		a.scroll(a.readerView.ScrollBy(a.readerView.PageSize()))
	case key.Matches(msg, a.keys.Home):
		a.scroll(a.readerView.ScrollToTop())
	case key.Matches(msg, a.keys.End):
		a.scroll(a.readerView.ScrollToBottom())
	case key.Matches(msg, a.keys.NextChapter):
		a.session.NextChapter()
	case key.Matches(msg, a.keys.PrevChapter):
		a.session.PrevChapter()
	case key.Matches(msg, a.keys.TOC):
		a.session.ToggleTOC()
		if a.session.TOCOpen() {
			a.tocView.Open()
		}
	}
}

func (a *App) handleTOCKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.tocView.Move(-1)
	case key.Matches(msg, a.keys.Down):
		a.tocView.Move(1)
	case key.Matches(msg, a.keys.PageUp):
		a.tocView.Move(-10)
	case key.Matches(msg, a.keys.PageDown):
		a.tocView.Move(10)
	case key.Matches(msg, a.keys.Enter):
		a.session.SelectTOC(a.tocView.Cursor())
	case key.Matches(msg, a.keys.TOC):
		a.session.ToggleTOC()
	}
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.session.MovePanelFocus(-1)
	case key.Matches(msg, a.keys.Down):
		a.session.MovePanelFocus(1)
	case key.Matches(msg, a.keys.PanelAdjustUp):
		a.session.AdjustFocused(1)
	case key.Matches(msg, a.keys.PanelAdjustDn):
		a.session.AdjustFocused(-1)
	case key.Matches(msg, a.keys.Enter):
		a.session.ActivateFocused()
	default:
		a.handlePreferenceKey(msg)
	}
}

// scroll reports a moved viewport to the session
func (a *App) scroll(moved bool) {
	if moved {
		a.session.Scrolled()
	}
}

func (a *App) handleMouse(msg tea.MouseMsg) {
	overlay := a.activeView() != views.ViewReader

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if !overlay {
			a.scroll(a.readerView.ScrollBy(-wheelLines))
		}
	case tea.MouseButtonWheelDown:
		if !overlay {
			a.scroll(a.readerView.ScrollBy(wheelLines))
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || a.showHelp {
			return
		}
		x0, x1, row := a.readerView.ToggleBounds()
		if msg.Y == row && msg.X >= x0 && msg.X < x1 && !a.session.TOCOpen() {
			a.session.ToggleSettings()
			return
		}
		// The panel is placed one row below the header
		if a.session.SettingsOpen() {
			if control, pos, ok := a.settingsView.SliderAt(msg.X, msg.Y-1); ok {
				a.session.SetSlider(control, pos)
				return
			}
		}
		if a.settingsView.Contains(msg.X, msg.Y-1) {
			a.session.Click(reader.ClickPanel)
		} else {
			a.session.Click(reader.ClickOutside)
		}
	}
}

// activeView returns the topmost surface
func (a *App) activeView() views.ViewType {
	switch {
	case a.showHelp:
		return views.ViewHelp
	case a.session.SettingsOpen():
		return views.ViewSettings
	case a.session.TOCOpen():
		return views.ViewTOC
	default:
		return views.ViewReader
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string
	switch a.activeView() {
	case views.ViewHelp:
		content = a.renderHelp()
	case views.ViewSettings:
		content = a.readerView.HeaderView() + "\n" + a.settingsView.View()
	case views.ViewTOC:
		content = a.tocView.View()
	default:
		content = a.readerView.View()
	}

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		content,
		lipgloss.WithWhitespaceBackground(styles.App.GetBackground()),
	)
}

// renderHelp renders the help overlay
func (a *App) renderHelp() string {
	a.help.ShowAll = true
	a.help.Width = max(a.width-8, 20)
	a.help.Styles.FullKey = styles.HelpKey
	a.help.Styles.FullDesc = styles.Help
	a.help.Styles.FullSeparator = styles.MutedText

	dialog := styles.Dialog.Render(
		styles.DialogTitle.Render("Keyboard Shortcuts") + "\n" +
			a.help.View(a.keys) + "\n\n" +
			styles.MutedText.Render("Mouse: wheel scrolls • click Aa for settings • click outside to close"),
	)

	// Center the help dialog
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		dialog,
	)
}
