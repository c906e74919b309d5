// Package reader keeps reading state, persisted settings, the rendered
// chapter and the derived indicators (progress, table of contents, nav
// state, scale labels) consistent with each other.
//
// A Session is driven from a single goroutine. Work that would happen on
// the next animation frame is handed to a Scheduler, and everything
// visible is pushed through the Viewport and Presenter interfaces so the
// engine can be tested without a terminal.
package reader

import (
	"context"
	"log/slog"

	"github.com/justyntemme/inkreader/internal/prefs"
	"github.com/justyntemme/inkreader/pkg/models"
)

// PreferenceStore persists settings. Neither method fails observably.
type PreferenceStore interface {
	Load(ctx context.Context) prefs.Settings
	Save(ctx context.Context, settings prefs.Settings)
}

// Viewport is the scrollable surface a chapter is painted into.
// Heights and offsets share one unit (lines in a terminal).
type Viewport interface {
	Reset()
	SetTitle(title string)
	AppendParagraphs(paragraphs []string)
	ScrollOffset() int
	SetScrollOffset(offset int)
	ScrollHeight() int
	ClientHeight() int
	Focus()
}

// Scheduler runs callbacks on the next frame, in request order.
type Scheduler interface {
	RequestFrame(fn func())
}

// Presenter receives presentation values whenever they may have changed.
type Presenter interface {
	Present(p Presentation)
}

// Phase is the document lifecycle.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options configures a Session.
type Options struct {
	Context    context.Context
	Store      PreferenceStore
	Viewport   Viewport
	Scheduler  Scheduler
	Presenter  Presenter
	Logger     *slog.Logger
	SystemDark bool
}

// Session owns the reading state for one document.
type Session struct {
	ctx       context.Context
	store     PreferenceStore
	viewport  Viewport
	scheduler Scheduler
	presenter Presenter
	logger    *slog.Logger

	state      State
	systemDark bool

	phase   Phase
	loadErr error
	book    *models.Book

	// derived indicators
	label   string
	nav     NavState
	toc     []TOCEntry
	percent int

	// renderer
	renderGen uint64
	busy      bool

	scrollPending bool

	tocOpen  bool
	panel    panelState
	cleanups []func()
	closed   bool
}

type presenterFunc func(Presentation)

func (f presenterFunc) Present(p Presentation) { f(p) }

// NewSession loads persisted settings and applies the initial
// presentation. No book is loaded yet.
func NewSession(opts Options) *Session {
	s := &Session{
		ctx:        opts.Context,
		store:      opts.Store,
		viewport:   opts.Viewport,
		scheduler:  opts.Scheduler,
		presenter:  opts.Presenter,
		logger:     opts.Logger,
		systemDark: opts.SystemDark,
		phase:      PhaseLoading,
		label:      defaultLabel,
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	s.logger = s.logger.With(slog.String("component", "reader"))
	if s.presenter == nil {
		s.presenter = presenterFunc(func(Presentation) {})
	}

	if s.store != nil {
		s.state = stateFromSettings(s.store.Load(s.ctx))
	} else {
		s.state = stateFromSettings(prefs.Settings{})
	}
	s.present()
	return s
}

// LoadBook installs book and opens the remembered chapter without
// requesting focus. A nil book is treated as a load failure.
func (s *Session) LoadBook(book *models.Book) {
	if book == nil || book.ChapterCount() == 0 {
		s.FailLoad(nil)
		return
	}
	s.book = book
	s.phase = PhaseReady
	s.loadErr = nil
	s.logger.Info("book loaded",
		"title", book.Title,
		"chapters", book.ChapterCount(),
		"resume_chapter", s.state.CurrentChapter)
	s.buildTOC()
	s.JumpChapter(s.state.CurrentChapter, JumpOptions{Silent: true})
}

// FailLoad moves the session into the terminal error state. Nothing is
// rendered and there is no retry.
func (s *Session) FailLoad(err error) {
	s.phase = PhaseFailed
	s.loadErr = err
	s.book = nil
	s.renderGen++
	s.busy = false
	s.label = defaultLabel
	s.nav = NavState{}
	s.toc = nil
	s.logger.Error("failed to load book", "error", err)
}

// Phase returns the document lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Err returns the load error, if the session failed.
func (s *Session) Err() error { return s.loadErr }

// Book returns the loaded book, or nil.
func (s *Session) Book() *models.Book { return s.book }

// OnClose registers fn to run when the session closes.
func (s *Session) OnClose(fn func()) {
	s.cleanups = append(s.cleanups, fn)
}

// Close cancels any in-flight render and releases registered
// subscriptions. It is safe to call more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.renderGen++
	s.busy = false
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}

func (s *Session) present() {
	s.presenter.Present(s.Presentation())
}

func (s *Session) persist() {
	if s.store == nil {
		return
	}
	s.store.Save(s.ctx, s.state.Settings())
}
