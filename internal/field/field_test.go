package field_test

import (
	"errors"
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/frame"
	"github.com/san-kum/backdrop/internal/surface"
)

type frameLog struct{ frames []field.Frame }

func (l *frameLog) OnFrame(f field.Frame) { l.frames = append(l.frames, f) }

// unmountAfter stops the field from inside its own frame callback.
type unmountAfter struct {
	f *field.Field
	n int
}

func (u *unmountAfter) OnFrame(fr field.Frame) {
	if int(fr.Seq) >= u.n {
		u.f.Unmount()
	}
}

// remountAt unmounts and remounts the field from inside its own frame callback.
type remountAt struct {
	f     *field.Field
	host  field.Host
	sched frame.Scheduler
	seq   uint64
}

func (r *remountAt) OnFrame(fr field.Frame) {
	if fr.Seq == r.seq {
		r.f.Unmount()
		Expect(r.f.Mount(r.host, r.sched)).To(Succeed())
	}
}

func pump(q *frame.Queue, start time.Time, n int) time.Time {
	now := start
	for i := 0; i < n; i++ {
		now = now.Add(16 * time.Millisecond)
		q.Pump(now)
	}
	return now
}

func expectInBounds(f *field.Field) {
	w, h := f.Bounds()
	for _, p := range f.Particles() {
		Expect(p.X).To(BeNumerically(">=", 0))
		Expect(p.X).To(BeNumerically("<", float64(w)))
		Expect(p.Y).To(BeNumerically(">=", 0))
		Expect(p.Y).To(BeNumerically("<", float64(h)))
	}
}

var _ = Describe("Field", func() {
	var (
		f     *field.Field
		rec   *surface.Recorder
		host  *surface.Headless
		queue *frame.Queue
		start time.Time
	)

	BeforeEach(func() {
		var err error
		f, err = field.New(field.DefaultParams(), rand.New(rand.NewSource(7)))
		Expect(err).NotTo(HaveOccurred())
		rec = surface.NewRecorder(0, 0)
		host = surface.NewHeadless(rec, 800, 600)
		queue = frame.NewQueue()
		start = time.Unix(1_700_000_000, 0)
	})

	Describe("New", func() {
		It("rejects counts above the cap", func() {
			p := field.DefaultParams()
			p.Count = field.MaxParticles + 1
			_, err := field.New(p, nil)
			Expect(errors.Is(err, field.ErrTooManyParticles)).To(BeTrue())
		})

		It("rejects out-of-range parameters", func() {
			p := field.DefaultParams()
			p.LinkDistance = 0
			_, err := field.New(p, nil)
			Expect(errors.Is(err, field.ErrParameterBounds)).To(BeTrue())

			p = field.DefaultParams()
			p.OpacitySpan = 0.9
			_, err = field.New(p, nil)
			Expect(errors.Is(err, field.ErrParameterBounds)).To(BeTrue())
		})

		It("cycles the link hue every 2π seconds by default", func() {
			p := field.DefaultParams()
			Expect(p.LinkHuePeriod.Seconds()).To(BeNumerically("~", 2*math.Pi, 1e-9))
			Expect(p.Validate()).To(Succeed())
		})

		It("starts stopped with no particles", func() {
			Expect(f.State()).To(Equal(field.Stopped))
			Expect(f.Len()).To(BeZero())
			Expect(queue.Pending()).To(BeZero())
		})
	})

	Describe("Mount", func() {
		It("sizes the surface to the viewport and seeds the particles", func() {
			Expect(f.Mount(host, queue)).To(Succeed())

			Expect(f.State()).To(Equal(field.Running))
			Expect(f.Len()).To(Equal(field.DefaultCount))
			w, h := rec.Size()
			Expect(w).To(Equal(800))
			Expect(h).To(Equal(600))
			Expect(queue.Pending()).To(Equal(1))
			Expect(host.Listeners()).To(Equal(1))
		})

		It("draws particles within their configured ranges", func() {
			Expect(f.Mount(host, queue)).To(Succeed())
			p := field.DefaultParams()
			for _, pt := range f.Particles() {
				Expect(pt.DX).To(BeNumerically(">=", -p.MaxSpeed))
				Expect(pt.DX).To(BeNumerically("<", p.MaxSpeed))
				Expect(pt.Size).To(BeNumerically(">=", p.SizeMin))
				Expect(pt.Size).To(BeNumerically("<", p.SizeMin+p.SizeSpan))
				Expect(pt.Opacity).To(BeNumerically(">=", p.OpacityMin))
				Expect(pt.Hue).To(BeNumerically(">=", p.HueMin))
				Expect(pt.Hue).To(BeNumerically("<", p.HueMin+p.HueSpan))
			}
		})

		It("does nothing when the drawing context is unavailable", func() {
			host.Fail = true
			err := f.Mount(host, queue)

			Expect(errors.Is(err, field.ErrNoSurface)).To(BeTrue())
			Expect(errors.Is(err, surface.ErrDetached)).To(BeTrue())
			Expect(f.State()).To(Equal(field.Stopped))
			Expect(queue.Pending()).To(BeZero())
			Expect(host.Listeners()).To(BeZero())
			Expect(rec.Calls()).To(BeZero())
		})

		It("is idempotent while running", func() {
			Expect(f.Mount(host, queue)).To(Succeed())
			before := f.Particles()

			Expect(f.Mount(host, queue)).To(Succeed())
			Expect(queue.Pending()).To(Equal(1))
			Expect(host.Listeners()).To(Equal(1))
			Expect(f.Particles()).To(Equal(before))
		})
	})

	Describe("frames", func() {
		BeforeEach(func() {
			Expect(f.Mount(host, queue)).To(Succeed())
		})

		It("keeps every particle inside the bounds", func() {
			pump(queue, start, 500)
			expectInBounds(f)
		})

		It("keeps the particle count fixed", func() {
			pump(queue, start, 200)
			Expect(f.Len()).To(Equal(field.DefaultCount))
			Expect(rec.Circles).To(Equal(200 * field.DefaultCount * 2))
		})

		It("clears then draws a glow and a white core per particle", func() {
			pump(queue, start, 1)
			Expect(rec.Clears).To(Equal(1))

			ops := rec.Ops()
			Expect(len(ops)).To(BeNumerically(">=", 2*field.DefaultCount))
			p := field.DefaultParams()
			for i := 0; i < field.DefaultCount; i++ {
				glow, core := ops[2*i], ops[2*i+1]
				Expect(glow.Kind).To(Equal(surface.OpCircle))
				Expect(glow.R).To(BeNumerically(">=", p.MinRadius))
				Expect(glow.Paint.Blur).To(Equal(p.GlowBlur))
				Expect(core.Paint.Color).To(Equal(surface.White))
				Expect(core.R).To(BeNumerically("~", glow.R*p.CoreScale, 1e-9))
			}
		})

		It("reschedules exactly one frame per refresh", func() {
			pump(queue, start, 10)
			Expect(queue.Pending()).To(Equal(1))
			Expect(f.Frames()).To(Equal(uint64(10)))
		})

		It("reports each frame to observers", func() {
			log := &frameLog{}
			f.AddObserver(log)
			pump(queue, start, 3)

			Expect(log.frames).To(HaveLen(3))
			Expect(log.frames[2].Seq).To(Equal(uint64(3)))
			Expect(log.frames[2].Particles).To(Equal(field.DefaultCount))
			Expect(log.frames[2].Links).To(Equal(len(rec.Ops()) - 2*field.DefaultCount))
		})
	})

	Describe("Resize", func() {
		BeforeEach(func() {
			Expect(f.Mount(host, queue)).To(Succeed())
			pump(queue, start, 5)
		})

		It("resizes the surface without touching the particles", func() {
			before := f.Particles()
			host.SetViewport(1280, 720)

			w, h := rec.Size()
			Expect(w).To(Equal(1280))
			Expect(h).To(Equal(720))
			Expect(f.Particles()).To(Equal(before))
			Expect(f.State()).To(Equal(field.Running))
		})

		It("wraps particles back into a smaller surface on the next frame", func() {
			host.SetViewport(100, 80)
			pump(queue, start, 1)
			Expect(f.Len()).To(Equal(field.DefaultCount))
			expectInBounds(f)
		})

		It("survives a zero-sized viewport", func() {
			host.SetViewport(0, 0)
			Expect(func() { pump(queue, start, 3) }).NotTo(Panic())
			Expect(f.Len()).To(Equal(field.DefaultCount))
		})

		It("is ignored while stopped", func() {
			f.Unmount()
			f.Resize(10, 10)
			w, _ := rec.Size()
			Expect(w).To(Equal(800))
		})
	})

	Describe("Unmount", func() {
		BeforeEach(func() {
			Expect(f.Mount(host, queue)).To(Succeed())
			pump(queue, start, 3)
		})

		It("cancels the pending frame and removes the resize listener", func() {
			f.Unmount()

			Expect(f.State()).To(Equal(field.Stopped))
			Expect(queue.Pending()).To(BeZero())
			Expect(host.Listeners()).To(BeZero())
			Expect(f.Len()).To(BeZero())
		})

		It("stops every further draw call", func() {
			f.Unmount()
			calls := rec.Calls()

			pump(queue, start, 20)
			host.SetViewport(300, 300)
			Expect(rec.Calls()).To(Equal(calls))
		})

		It("can be called from inside a frame", func() {
			f.AddObserver(&unmountAfter{f: f, n: 5})
			pump(queue, start, 10)

			Expect(f.State()).To(Equal(field.Stopped))
			Expect(f.Frames()).To(Equal(uint64(5)))
			Expect(queue.Pending()).To(BeZero())
		})

		It("keeps a single frame chain when remounted from inside a frame", func() {
			f.AddObserver(&remountAt{f: f, host: host, sched: queue, seq: 2})
			pump(queue, start, 5)

			Expect(f.State()).To(Equal(field.Running))
			Expect(queue.Pending()).To(Equal(1))
			Expect(f.Frames()).To(Equal(uint64(5)))

			f.Unmount()
			Expect(queue.Pending()).To(BeZero())
		})

		It("is safe to repeat", func() {
			f.Unmount()
			Expect(f.Unmount).NotTo(Panic())
		})

		It("reseeds on remount", func() {
			f.Unmount()
			Expect(f.Mount(host, queue)).To(Succeed())
			Expect(f.Len()).To(Equal(field.DefaultCount))
			Expect(queue.Pending()).To(Equal(1))
		})
	})
})

var _ = Describe("links", func() {
	It("never connects particles at or beyond the link distance", func() {
		ps := []field.Particle{{X: 0, Y: 0}, {X: 120, Y: 0}, {X: 0, Y: 200}}
		n := field.VisitLinks(ps, 120, nil)
		Expect(n).To(BeZero())
	})

	It("connects every close pair once", func() {
		ps := []field.Particle{{X: 0, Y: 0}, {X: 30, Y: 40}, {X: 60, Y: 80}}
		var pairs [][2]int
		var dists []float64
		n := field.VisitLinks(ps, 120, func(i, j int, d float64) {
			pairs = append(pairs, [2]int{i, j})
			dists = append(dists, d)
		})
		Expect(n).To(Equal(3))
		Expect(pairs).To(ConsistOf([2]int{0, 1}, [2]int{0, 2}, [2]int{1, 2}))
		Expect(dists).To(ContainElement(BeNumerically("~", 50, 1e-9)))
		Expect(dists).To(ContainElement(BeNumerically("~", 100, 1e-9)))
	})

	It("fades opacity linearly with distance", func() {
		Expect(field.LinkOpacity(0, 120, 0.3)).To(BeNumerically("~", 0.3, 1e-12))
		Expect(field.LinkOpacity(60, 120, 0.3)).To(BeNumerically("~", 0.15, 1e-12))
		Expect(field.LinkOpacity(120, 120, 0.3)).To(BeZero())
		Expect(field.LinkOpacity(500, 120, 0.3)).To(BeZero())

		prev := field.LinkOpacity(0, 120, 0.3)
		for d := 1.0; d < 120; d++ {
			cur := field.LinkOpacity(d, 120, 0.3)
			Expect(cur).To(BeNumerically("<", prev))
			prev = cur
		}
	})

	It("cycles the line hue on wall-clock time", func() {
		p := field.DefaultParams()
		t0 := time.Unix(1_700_000_000, 0)

		Expect(field.LinkHue(t0, p)).To(BeNumerically("~", field.LinkHue(t0.Add(p.LinkHuePeriod), p), 1e-6))
		lo, hi := 360.0, 0.0
		for i := 0; i < 100; i++ {
			h := field.LinkHue(t0.Add(time.Duration(i)*p.LinkHuePeriod/100), p)
			Expect(h).To(BeNumerically(">=", p.LinkHueBase-p.LinkHueSwing))
			Expect(h).To(BeNumerically("<=", p.LinkHueBase+p.LinkHueSwing))
			lo, hi = min(lo, h), max(hi, h)
		}
		Expect(hi - lo).To(BeNumerically(">", p.LinkHueSwing))
	})

	It("uses the same hue for every line of a frame regardless of frame count", func() {
		rec := surface.NewRecorder(0, 0)
		host := surface.NewHeadless(rec, 200, 200)
		q := frame.NewQueue()
		p := field.DefaultParams()
		p.Count = 40
		f, err := field.New(p, rand.New(rand.NewSource(3)))
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Mount(host, q)).To(Succeed())

		at := time.Unix(1_700_000_123, 0)
		q.Pump(at)
		var hues []float64
		for _, op := range rec.Ops() {
			if op.Kind == surface.OpLine {
				h, _, _ := op.Paint.Color.Hsl()
				hues = append(hues, h)
			}
		}
		Expect(hues).NotTo(BeEmpty())
		for _, h := range hues {
			Expect(h).To(BeNumerically("~", hues[0], 1e-9))
		}
	})
})

var _ = Describe("Wrap", func() {
	DescribeTable("maps values into [0, limit)",
		func(v, limit, want float64) {
			Expect(field.Wrap(v, limit)).To(BeNumerically("~", want, 1e-9))
		},
		Entry("inside", 5.0, 10.0, 5.0),
		Entry("past the right edge", 10.5, 10.0, 0.5),
		Entry("exactly on the edge", 10.0, 10.0, 0.0),
		Entry("past the left edge", -0.5, 10.0, 9.5),
		Entry("far outside", 35.0, 10.0, 5.0),
		Entry("zero limit", 3.0, 0.0, 0.0),
	)

	It("never returns the limit itself", func() {
		Expect(field.Wrap(-1e-18, 10)).To(BeNumerically("<", 10.0))
	})
})
