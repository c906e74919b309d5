package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/inkreader/internal/source"
	"github.com/justyntemme/inkreader/internal/ui/terminal"
)

// ViewType represents the surfaces drawn over the reading area
type ViewType int

const (
	ViewReader ViewType = iota
	ViewTOC
	ViewSettings
	ViewHelp
)

// String returns the name of the view
func (v ViewType) String() string {
	switch v {
	case ViewReader:
		return "Reader"
	case ViewTOC:
		return "Table of Contents"
	case ViewSettings:
		return "Settings"
	case ViewHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// View is the interface that all views must implement
type View interface {
	View() string
	SetSize(width, height int)
}

var (
	_ View = (*ReaderView)(nil)
	_ View = (*TOCView)(nil)
	_ View = (*SettingsView)(nil)
)

// Message types for the app loop

// DocumentLoadedMsg is sent when the book document was fetched and validated
type DocumentLoadedMsg struct {
	Document *source.Document
}

// DocumentFailedMsg is sent when the book document could not be loaded
type DocumentFailedMsg struct {
	Err error
}

// SchemeChangedMsg carries a desktop color scheme change
type SchemeChangedMsg struct {
	Scheme terminal.ColorScheme
}

// Helper functions to create commands

// FetchDocument creates a command that loads the document at location
func FetchDocument(ctx context.Context, client *source.Client, location string) tea.Cmd {
	return func() tea.Msg {
		doc, err := client.Fetch(ctx, location)
		if err != nil {
			return DocumentFailedMsg{Err: err}
		}
		return DocumentLoadedMsg{Document: doc}
	}
}

// WaitForScheme creates a command that delivers the next scheme change.
// It yields nil once the channel is closed.
func WaitForScheme(changes <-chan terminal.ColorScheme) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		scheme, ok := <-changes
		if !ok {
			return nil
		}
		return SchemeChangedMsg{Scheme: scheme}
	}
}
