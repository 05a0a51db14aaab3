package frame

import "time"

// Callback runs on a refresh and receives the refresh time.
type Callback func(now time.Time)

// Handle identifies a pending callback. The zero Handle is never issued.
type Handle uint64

// Scheduler is the subset of Queue used by frame consumers.
type Scheduler interface {
	RequestFrame(cb Callback) Handle
	CancelFrame(h Handle)
}

type pending struct {
	handle Handle
	cb     Callback
}

type Queue struct {
	next    Handle
	pending []pending

	// batch is the set being pumped; cancelling an entry in it nils the callback.
	batch  []pending
	pumped uint64
}

func NewQueue() *Queue {
	return &Queue{pending: make([]pending, 0, 4)}
}

// RequestFrame queues cb for the next Pump.
func (q *Queue) RequestFrame(cb Callback) Handle {
	q.next++
	q.pending = append(q.pending, pending{handle: q.next, cb: cb})
	return q.next
}

// CancelFrame drops a pending callback. Unknown or already-run handles are ignored.
func (q *Queue) CancelFrame(h Handle) {
	if h == 0 {
		return
	}
	for i, p := range q.pending {
		if p.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.batch {
		if q.batch[i].handle == h {
			q.batch[i].cb = nil
			return
		}
	}
}

// Pump runs every callback that was pending when Pump was called, in request
// order, and returns how many ran. Callbacks requested while pumping wait for
// the next Pump.
func (q *Queue) Pump(now time.Time) int {
	if len(q.pending) == 0 {
		return 0
	}
	q.batch = q.pending
	q.pending = make([]pending, 0, len(q.batch))
	q.pumped++

	ran := 0
	for i := range q.batch {
		cb := q.batch[i].cb
		if cb == nil {
			continue
		}
		q.batch[i].cb = nil
		cb(now)
		ran++
	}
	q.batch = nil
	return ran
}

// Pending reports how many callbacks wait for the next Pump.
func (q *Queue) Pending() int { return len(q.pending) }

// Pumps reports how many non-empty pumps have run.
func (q *Queue) Pumps() uint64 { return q.pumped }
