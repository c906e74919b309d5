package reader

const defaultLabel = "Reader"

// NavState is the enabled state of the previous/next controls.
type NavState struct {
	PrevEnabled bool
	NextEnabled bool
}

// JumpOptions modifies JumpChapter.
type JumpOptions struct {
	// Silent opens the chapter without moving focus to it. Used when
	// restoring the remembered chapter on load.
	Silent bool
}

// JumpChapter opens chapter index, clamped into range. Without a book it
// does nothing.
func (s *Session) JumpChapter(index int, opts JumpOptions) {
	if s.book == nil {
		return
	}
	count := s.book.ChapterCount()
	if count == 0 {
		return
	}
	target := clampInt(index, 0, count-1)

	s.state.CurrentChapter = target
	s.persist()

	s.label = s.chapterLabel(target)
	s.nav = NavState{
		PrevEnabled: target > 0,
		NextEnabled: target < count-1,
	}
	s.refreshTOC()

	s.logger.Debug("chapter opened", "index", target, "requested", index, "silent", opts.Silent)

	if !opts.Silent && s.viewport != nil {
		s.viewport.Focus()
	}
	s.renderChapter(target)
}

// NextChapter opens the following chapter.
func (s *Session) NextChapter() {
	if s.book == nil || !s.nav.NextEnabled {
		return
	}
	s.JumpChapter(s.state.CurrentChapter+1, JumpOptions{})
}

// PrevChapter opens the preceding chapter.
func (s *Session) PrevChapter() {
	if s.book == nil || !s.nav.PrevEnabled {
		return
	}
	s.JumpChapter(s.state.CurrentChapter-1, JumpOptions{})
}

// CurrentChapter returns the open chapter index.
func (s *Session) CurrentChapter() int { return s.state.CurrentChapter }

// Nav returns the previous/next control state.
func (s *Session) Nav() NavState { return s.nav }

// ChapterLabel is the title shown for the open chapter.
func (s *Session) ChapterLabel() string { return s.label }

// chapterLabel falls back from the chapter title to the book title.
func (s *Session) chapterLabel(index int) string {
	if ch := s.book.Chapter(index); ch != nil && ch.Title != "" {
		return ch.Title
	}
	if s.book.Title != "" {
		return s.book.Title
	}
	return defaultLabel
}
