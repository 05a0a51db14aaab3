package metrics

import "github.com/san-kum/backdrop/internal/field"

const historyCapacity = 600

// Links tracks the number of connection lines drawn per frame.
type Links struct {
	name     string
	capacity int
	history  []float64
	sum      float64
	samples  int
	peak     int
}

func NewLinks(capacity int) *Links {
	if capacity <= 0 {
		capacity = historyCapacity
	}
	return &Links{
		name:     "links",
		capacity: capacity,
		history:  make([]float64, 0, capacity),
	}
}

func (l *Links) Name() string { return l.name }

func (l *Links) Observe(f field.Frame) {
	l.history = append(l.history, float64(f.Links))
	if len(l.history) > l.capacity {
		l.history = l.history[1:]
	}
	l.sum += float64(f.Links)
	l.samples++
	if f.Links > l.peak {
		l.peak = f.Links
	}
}

// Value is the mean link count per frame.
func (l *Links) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return l.sum / float64(l.samples)
}

func (l *Links) Reset() {
	l.history = l.history[:0]
	l.sum = 0
	l.samples = 0
	l.peak = 0
}

// History returns the most recent per-frame counts, oldest first.
func (l *Links) History() []float64 { return l.history }

func (l *Links) Peak() int { return l.peak }

// Range reports the smallest and largest count in the history window.
func (l *Links) Range() (lo, hi float64) {
	if len(l.history) == 0 {
		return 0, 0
	}
	lo, hi = l.history[0], l.history[0]
	for _, v := range l.history[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi
}

// Normalized maps the history window onto [0, 1] using its Range. A flat
// window maps to zero.
func (l *Links) Normalized() []float64 {
	lo, hi := l.Range()
	out := make([]float64, len(l.history))
	if hi == lo {
		return out
	}
	for i, v := range l.history {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

// Last is the count of the latest frame.
func (l *Links) Last() int {
	if len(l.history) == 0 {
		return 0
	}
	return int(l.history[len(l.history)-1])
}
