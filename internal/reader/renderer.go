package reader

// BatchSize is how many paragraphs are appended per frame.
const BatchSize = 4

// Busy reports whether a chapter render is in progress.
func (s *Session) Busy() bool { return s.busy }

// renderChapter paints chapter index into the viewport a batch per frame.
// Each call takes a new generation; callbacks from an older generation
// find the counter moved on and return without touching the viewport.
func (s *Session) renderChapter(index int) {
	ch := s.book.Chapter(index)
	if ch == nil || s.viewport == nil {
		return
	}

	s.renderGen++
	gen := s.renderGen
	restore, hasRestore := s.state.Progress[index]

	s.scrollPending = false
	s.viewport.Reset()
	s.busy = true
	s.percent = restore
	s.viewport.SetTitle(ch.Title)

	queue := ch.Content
	var step func()
	step = func() {
		if gen != s.renderGen {
			return
		}
		n := min(BatchSize, len(queue))
		if n > 0 {
			s.viewport.AppendParagraphs(queue[:n])
			queue = queue[n:]
		}
		if len(queue) > 0 {
			s.scheduler.RequestFrame(step)
			return
		}
		s.settle(gen, restore, hasRestore)
	}
	s.scheduler.RequestFrame(step)
}

// settle ends a render. A stored position is restored on the frame after
// the last batch; the stored percent is shown as is rather than
// re-measured, so line rounding never rewrites it.
func (s *Session) settle(gen uint64, restore int, hasRestore bool) {
	s.busy = false

	maxScroll := s.viewport.ScrollHeight() - s.viewport.ClientHeight()
	if !hasRestore || restore == 0 || maxScroll <= 0 {
		s.UpdateProgress()
		return
	}

	s.scheduler.RequestFrame(func() {
		if gen != s.renderGen {
			return
		}
		maxScroll := s.viewport.ScrollHeight() - s.viewport.ClientHeight()
		if maxScroll <= 0 {
			s.UpdateProgress()
			return
		}
		offset := (restore*maxScroll + 50) / 100
		s.viewport.SetScrollOffset(offset)
		s.percent = restore
		s.logger.Debug("scroll restored", "chapter", s.state.CurrentChapter, "percent", restore, "offset", offset)
	})
}
