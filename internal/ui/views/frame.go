package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFrameInterval is roughly one display refresh
const DefaultFrameInterval = 16 * time.Millisecond

// FrameMsg marks a frame boundary
type FrameMsg struct{}

// FrameScheduler queues work for the next frame. Callbacks requested while
// a frame runs land in the frame after it. It is only touched from the
// Bubble Tea update loop.
type FrameScheduler struct {
	interval time.Duration
	queue    []func()
	ticking  bool
}

// NewFrameScheduler creates a scheduler ticking every interval
func NewFrameScheduler(interval time.Duration) *FrameScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameScheduler{interval: interval}
}

// RequestFrame queues fn for the next frame
func (f *FrameScheduler) RequestFrame(fn func()) {
	f.queue = append(f.queue, fn)
}

// Pending returns the number of queued callbacks
func (f *FrameScheduler) Pending() int {
	return len(f.queue)
}

// Cmd returns a tick for the next frame when work is queued and no tick is
// already in flight, and nil otherwise.
func (f *FrameScheduler) Cmd() tea.Cmd {
	if f.ticking || len(f.queue) == 0 {
		return nil
	}
	f.ticking = true
	return tea.Tick(f.interval, func(time.Time) tea.Msg {
		return FrameMsg{}
	})
}

// Run executes the callbacks queued before this frame began
func (f *FrameScheduler) Run() {
	f.ticking = false
	batch := f.queue
	f.queue = nil
	for _, fn := range batch {
		fn()
	}
}
