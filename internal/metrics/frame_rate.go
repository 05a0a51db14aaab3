package metrics

import (
	"time"

	"github.com/san-kum/backdrop/internal/field"
)

// FrameRate measures frames per second from frame timestamps.
type FrameRate struct {
	name    string
	first   time.Time
	last    time.Time
	samples int
}

func NewFrameRate() *FrameRate {
	return &FrameRate{name: "fps"}
}

func (r *FrameRate) Name() string { return r.name }

func (r *FrameRate) Observe(f field.Frame) {
	if r.samples == 0 {
		r.first = f.Time
	}
	r.last = f.Time
	r.samples++
}

// Value is the mean frame rate over every observed frame.
func (r *FrameRate) Value() float64 {
	if r.samples < 2 {
		return 0
	}
	span := r.last.Sub(r.first).Seconds()
	if span <= 0 {
		return 0
	}
	return float64(r.samples-1) / span
}

func (r *FrameRate) Reset() {
	r.first, r.last = time.Time{}, time.Time{}
	r.samples = 0
}

// Particles reports the particle count of the latest frame.
type Particles struct {
	name  string
	count int
}

func NewParticles() *Particles {
	return &Particles{name: "particles"}
}

func (p *Particles) Name() string          { return p.name }
func (p *Particles) Observe(f field.Frame) { p.count = f.Particles }
func (p *Particles) Value() float64        { return float64(p.count) }
func (p *Particles) Reset()                { p.count = 0 }
