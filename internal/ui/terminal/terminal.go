package terminal

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/godbus/dbus/v5"
)

// ColorScheme is the desktop's light/dark preference
type ColorScheme int

const (
	// SchemeUnknown means no preference could be determined
	SchemeUnknown ColorScheme = iota
	// SchemeLight indicates a light preference
	SchemeLight
	// SchemeDark indicates a dark preference
	SchemeDark
)

// XDG desktop portal names for the appearance setting
const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalInterface = "org.freedesktop.portal.Settings"
	portalRead      = portalInterface + ".Read"
	signalMember    = "SettingChanged"

	appearanceNamespace = "org.freedesktop.appearance"
	colorSchemeKey      = "color-scheme"
)

// String returns a human-readable name for the scheme
func (s ColorScheme) String() string {
	switch s {
	case SchemeLight:
		return "light"
	case SchemeDark:
		return "dark"
	default:
		return "unknown"
	}
}

// Dark reports whether the scheme prefers dark
func (s ColorScheme) Dark() bool {
	return s == SchemeDark
}

// schemeFromPortal maps the portal's color-scheme value: 1 prefers dark,
// 2 prefers light, 0 is no preference.
func schemeFromPortal(v any) ColorScheme {
	for {
		variant, ok := v.(dbus.Variant)
		if !ok {
			break
		}
		v = variant.Value()
	}
	n, ok := v.(uint32)
	if !ok {
		return SchemeUnknown
	}
	switch n {
	case 1:
		return SchemeDark
	case 2:
		return SchemeLight
	default:
		return SchemeUnknown
	}
}

// schemeFromSignal extracts the scheme from a SettingChanged signal.
// The second result is false for signals about any other setting.
func schemeFromSignal(sig *dbus.Signal) (ColorScheme, bool) {
	if sig == nil || sig.Name != portalInterface+"."+signalMember || len(sig.Body) < 3 {
		return SchemeUnknown, false
	}
	namespace, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if namespace != appearanceNamespace || key != colorSchemeKey {
		return SchemeUnknown, false
	}
	return schemeFromPortal(sig.Body[2]), true
}

// fallbackScheme asks the terminal for its background color
func fallbackScheme() ColorScheme {
	if lipgloss.HasDarkBackground() {
		return SchemeDark
	}
	return SchemeLight
}

// DetectColorScheme reads the desktop preference over D-Bus, falling back
// to the terminal background when no portal answers.
func DetectColorScheme() ColorScheme {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fallbackScheme()
	}
	defer conn.Close()

	if scheme := readScheme(conn); scheme != SchemeUnknown {
		return scheme
	}
	return fallbackScheme()
}

func readScheme(conn *dbus.Conn) ColorScheme {
	var value dbus.Variant
	call := conn.Object(portalDest, portalPath).Call(portalRead, 0, appearanceNamespace, colorSchemeKey)
	if call.Err != nil {
		return SchemeUnknown
	}
	if err := call.Store(&value); err != nil {
		return SchemeUnknown
	}
	return schemeFromPortal(value)
}

// SchemeWatcher delivers color scheme changes from the desktop portal
type SchemeWatcher struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal
	changes chan ColorScheme
	done    chan struct{}
	once    sync.Once
}

// WatchColorScheme subscribes to the portal's SettingChanged signal. It
// fails when there is no session bus.
func WatchColorScheme() (*SchemeWatcher, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	if err := conn.AddMatchSignal(matchOptions()...); err != nil {
		conn.Close()
		return nil, err
	}

	w := &SchemeWatcher{
		conn:    conn,
		signals: make(chan *dbus.Signal, 8),
		changes: make(chan ColorScheme, 1),
		done:    make(chan struct{}),
	}
	conn.Signal(w.signals)
	go w.run()
	return w, nil
}

func matchOptions() []dbus.MatchOption {
	return []dbus.MatchOption{
		dbus.WithMatchObjectPath(portalPath),
		dbus.WithMatchInterface(portalInterface),
		dbus.WithMatchMember(signalMember),
	}
}

func (w *SchemeWatcher) run() {
	defer close(w.changes)
	for {
		var sig *dbus.Signal
		select {
		case <-w.done:
			return
		case s, ok := <-w.signals:
			if !ok {
				return
			}
			sig = s
		}
		scheme, ok := schemeFromSignal(sig)
		if !ok || scheme == SchemeUnknown {
			continue
		}
		// Only the latest value matters; drop a stale undelivered one.
		select {
		case <-w.changes:
		default:
		}
		w.changes <- scheme
	}
}

// Changes returns the channel scheme changes arrive on. It is closed when
// the watcher closes.
func (w *SchemeWatcher) Changes() <-chan ColorScheme {
	return w.changes
}

// Close unsubscribes and closes the bus connection
func (w *SchemeWatcher) Close() error {
	var err error
	w.once.Do(func() {
		_ = w.conn.RemoveMatchSignal(matchOptions()...)
		w.conn.RemoveSignal(w.signals)
		err = w.conn.Close()
		close(w.done)
	})
	return err
}
