package reader

import "math"

// PercentOf converts a scroll position to a whole percent. Content that
// fits entirely in the viewport counts as fully read.
func PercentOf(offset, scrollHeight, clientHeight int) int {
	maxScroll := scrollHeight - clientHeight
	if maxScroll <= 0 {
		return 100
	}
	ratio := math.Min(math.Max(float64(offset)/float64(maxScroll), 0), 1)
	return int(math.Round(ratio * 100))
}

// Scrolled notes that the viewport moved. Recomputation is coalesced to
// at most one per frame.
func (s *Session) Scrolled() {
	if s.scrollPending || s.book == nil {
		return
	}
	s.scrollPending = true
	s.scheduler.RequestFrame(func() {
		if !s.scrollPending {
			return
		}
		s.scrollPending = false
		s.UpdateProgress()
	})
}

// UpdateProgress measures the viewport and records the open chapter's
// percent when it differs from the stored one. Nothing is measured while
// a render is still appending paragraphs.
func (s *Session) UpdateProgress() {
	if s.book == nil || s.viewport == nil || s.busy {
		return
	}
	percent := PercentOf(s.viewport.ScrollOffset(), s.viewport.ScrollHeight(), s.viewport.ClientHeight())
	s.percent = percent

	index := s.state.CurrentChapter
	if stored, ok := s.state.Progress[index]; ok && stored == percent {
		return
	}
	s.state.Progress[index] = percent
	s.persist()
	s.refreshTOC()
}

// Percent is the progress shown for the open chapter.
func (s *Session) Percent() int { return s.percent }

// ChapterProgress returns the stored percent for chapter index; unvisited
// chapters are 0.
func (s *Session) ChapterProgress(index int) int {
	return s.state.Progress[index]
}

// BookProgress averages chapter progress over the whole book.
func (s *Session) BookProgress() int {
	if s.book == nil || s.book.ChapterCount() == 0 {
		return 0
	}
	total := 0
	for i := range s.book.Chapters {
		total += s.state.Progress[i]
	}
	return int(math.Round(float64(total) / float64(s.book.ChapterCount())))
}
