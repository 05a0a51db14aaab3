// Package input tracks pointer position and scroll offset for decorative
// effects, committing at most one update per refresh.
package input

import (
	"math"
	"time"

	"github.com/san-kum/backdrop/internal/frame"
)

// Pointer is a committed input sample.
type Pointer struct {
	X, Y    float64
	ScrollY float64
}

// Parallax is the vertical offset of a layer moving at rate relative to scroll.
func (p Pointer) Parallax(rate float64) float64 {
	return p.ScrollY * rate
}

// Fade is an opacity that falls from 1 to 0 as the page scrolls.
func (p Pointer) Fade(rate float64) float64 {
	return math.Max(0, 1-p.ScrollY*rate)
}

// Tracker coalesces raw events. The first event after a commit raises the
// pending flag and requests one frame; later events in the same refresh only
// overwrite the raw sample.
type Tracker struct {
	sched     frame.Scheduler
	raw       Pointer
	committed Pointer
	pending   bool
	handle    frame.Handle
	commits   uint64
	closed    bool
	maxScroll float64
}

func NewTracker(sched frame.Scheduler) *Tracker {
	return &Tracker{sched: sched, maxScroll: math.Inf(1)}
}

// SetScrollLimit bounds ScrollY to [0, limit].
func (t *Tracker) SetScrollLimit(limit float64) {
	t.maxScroll = math.Max(0, limit)
}

func (t *Tracker) Move(x, y float64) {
	t.raw.X, t.raw.Y = x, y
	t.schedule()
}

// Scroll sets the absolute scroll offset.
func (t *Tracker) Scroll(y float64) {
	t.raw.ScrollY = math.Min(math.Max(0, y), t.maxScroll)
	t.schedule()
}

// ScrollBy moves the scroll offset by dy.
func (t *Tracker) ScrollBy(dy float64) {
	t.Scroll(t.raw.ScrollY + dy)
}

func (t *Tracker) schedule() {
	if t.pending || t.closed {
		return
	}
	t.pending = true
	t.handle = t.sched.RequestFrame(t.commit)
}

func (t *Tracker) commit(time.Time) {
	t.pending = false
	t.handle = 0
	t.committed = t.raw
	t.commits++
}

// State returns the last committed sample.
func (t *Tracker) State() Pointer { return t.committed }

// Commits reports how many updates have been committed.
func (t *Tracker) Commits() uint64 { return t.commits }

// Close cancels any pending commit and ignores further events.
func (t *Tracker) Close() {
	t.closed = true
	if t.pending {
		t.sched.CancelFrame(t.handle)
		t.pending = false
		t.handle = 0
	}
}
