package field

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/backdrop/internal/frame"
	"github.com/san-kum/backdrop/internal/surface"
)

// State is the lifecycle state of a Field.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	default:
		return "stopped"
	}
}

// Host provides the drawing context and viewport a Field mounts onto.
type Host interface {
	// Surface acquires the drawing context, or fails if it is not available yet.
	Surface() (surface.Surface, error)
	Viewport() (w, h int)
	// OnResize registers fn for viewport changes and returns its removal.
	OnResize(fn func(w, h int)) (remove func())
}

// Frame summarises one rendered refresh.
type Frame struct {
	Seq       uint64
	Time      time.Time
	Particles int
	Links     int
	Width     int
	Height    int
}

type Observer interface {
	OnFrame(f Frame)
}

// Field is the particle backdrop. See the package documentation for its lifecycle.
type Field struct {
	params Params
	rng    *rand.Rand

	state       State
	particles   []Particle
	surface     surface.Surface
	sched       frame.Scheduler
	handle      frame.Handle
	unsubscribe func()

	observers []Observer
	frames    uint64
}

// New validates params and returns a stopped field. A nil rng is seeded from
// the clock.
func New(params Params, rng *rand.Rand) (*Field, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Field{params: params, rng: rng}, nil
}

func (f *Field) AddObserver(o Observer) { f.observers = append(f.observers, o) }

// Mount acquires the host surface, seeds the particles and schedules the first
// frame. If the surface is unavailable nothing is scheduled and the error
// wraps ErrNoSurface. Mounting a running field only re-applies the viewport.
func (f *Field) Mount(host Host, sched frame.Scheduler) error {
	if f.state == Running {
		f.Resize(host.Viewport())
		return nil
	}

	s, err := host.Surface()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoSurface, err)
	}
	if s == nil {
		return ErrNoSurface
	}

	w, h := host.Viewport()
	s.Resize(w, h)
	f.surface = s
	f.sched = sched
	f.seed(float64(w), float64(h))
	f.unsubscribe = host.OnResize(f.Resize)
	f.state = Running
	f.handle = sched.RequestFrame(f.tick)
	return nil
}

// Resize resizes the surface of a running field. Particles are kept; any that
// now lie outside the bounds are wrapped back on the next frame.
func (f *Field) Resize(w, h int) {
	if f.state != Running {
		return
	}
	f.surface.Resize(w, h)
}

// Unmount cancels the pending frame, drops the resize listener and releases
// the surface and particles. It is safe to call on a stopped field.
func (f *Field) Unmount() {
	if f.state != Running {
		return
	}
	f.state = Stopped
	if f.handle != 0 {
		f.sched.CancelFrame(f.handle)
		f.handle = 0
	}
	if f.unsubscribe != nil {
		f.unsubscribe()
		f.unsubscribe = nil
	}
	f.surface = nil
	f.sched = nil
	f.particles = nil
}

func (f *Field) State() State { return f.state }

// Len reports the particle count; zero while stopped.
func (f *Field) Len() int { return len(f.particles) }

// Particles returns a copy of the current particles.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Bounds reports the surface size, or zero while stopped.
func (f *Field) Bounds() (int, int) {
	if f.surface == nil {
		return 0, 0
	}
	return f.surface.Size()
}

// Frames reports how many frames have been drawn since New.
func (f *Field) Frames() uint64 { return f.frames }

func (f *Field) Params() Params { return f.params }

func (f *Field) seed(w, h float64) {
	f.particles = make([]Particle, f.params.Count)
	for i := range f.particles {
		f.particles[i] = newParticle(f.rng, &f.params, w, h)
	}
}

func (f *Field) tick(now time.Time) {
	if f.state != Running {
		return
	}
	f.handle = 0
	f.step(now)
	// an observer may have unmounted or remounted the field
	if f.state == Running && f.handle == 0 {
		f.handle = f.sched.RequestFrame(f.tick)
	}
}

func (f *Field) step(now time.Time) {
	s := f.surface
	w, h := s.Size()
	fw, fh := float64(w), float64(h)

	s.Clear()
	for i := range f.particles {
		f.particles[i].advance(fw, fh)
		f.particles[i].draw(s, &f.params)
	}
	links := f.drawLinks(s, now)

	f.frames++
	fr := Frame{
		Seq:       f.frames,
		Time:      now,
		Particles: len(f.particles),
		Links:     links,
		Width:     w,
		Height:    h,
	}
	for _, o := range f.observers {
		o.OnFrame(fr)
	}
}

func (f *Field) drawLinks(s surface.Surface, now time.Time) int {
	p := &f.params
	paint := surface.Paint{
		Color: colorful.Hsl(LinkHue(now, *p), p.LinkSaturation, p.LinkLightness),
		Width: p.LinkWidth,
		Blur:  p.LinkBlur,
	}
	ps := f.particles
	return VisitLinks(ps, p.LinkDistance, func(i, j int, d float64) {
		paint.Alpha = LinkOpacity(d, p.LinkDistance, p.LinkAlpha)
		s.StrokeLine(ps[i].X, ps[i].Y, ps[j].X, ps[j].Y, paint)
	})
}
