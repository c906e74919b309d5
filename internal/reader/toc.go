package reader

// TOCEntry is one table of contents row.
type TOCEntry struct {
	Index   int
	Title   string
	Percent int
	Active  bool
}

func (s *Session) buildTOC() {
	s.toc = make([]TOCEntry, len(s.book.Chapters))
	s.refreshTOC()
}

// refreshTOC updates every entry, not only the open chapter.
func (s *Session) refreshTOC() {
	if s.book == nil {
		return
	}
	if len(s.toc) != len(s.book.Chapters) {
		s.toc = make([]TOCEntry, len(s.book.Chapters))
	}
	for i, ch := range s.book.Chapters {
		s.toc[i] = TOCEntry{
			Index:   i,
			Title:   ch.Title,
			Percent: s.state.Progress[i],
			Active:  i == s.state.CurrentChapter,
		}
	}
}

// TOC returns a copy of the table of contents.
func (s *Session) TOC() []TOCEntry {
	out := make([]TOCEntry, len(s.toc))
	copy(out, s.toc)
	return out
}

// SelectTOC closes the table of contents and opens chapter index.
func (s *Session) SelectTOC(index int) {
	s.tocOpen = false
	s.JumpChapter(index, JumpOptions{})
}

// TOCOpen reports whether the table of contents overlay is shown.
func (s *Session) TOCOpen() bool { return s.tocOpen }

// ToggleTOC shows or hides the table of contents. It stays closed while
// there is no book.
func (s *Session) ToggleTOC() {
	if s.book == nil {
		s.tocOpen = false
		return
	}
	s.tocOpen = !s.tocOpen
	if s.tocOpen {
		s.panel.open = false
	}
}

// CloseTOC hides the table of contents.
func (s *Session) CloseTOC() { s.tocOpen = false }
