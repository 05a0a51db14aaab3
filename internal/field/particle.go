package field

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/backdrop/internal/surface"
)

// Particle is a single drifting, pulsing dot.
type Particle struct {
	X, Y      float64
	DX, DY    float64
	Size      float64
	Opacity   float64
	Phase     float64
	PhaseRate float64
	Hue       float64
	Color     colorful.Color
}

func newParticle(rng *rand.Rand, p *Params, w, h float64) Particle {
	hue := p.HueMin + rng.Float64()*p.HueSpan
	return Particle{
		X:         rng.Float64() * w,
		Y:         rng.Float64() * h,
		DX:        (rng.Float64()*2 - 1) * p.MaxSpeed,
		DY:        (rng.Float64()*2 - 1) * p.MaxSpeed,
		Size:      p.SizeMin + rng.Float64()*p.SizeSpan,
		Opacity:   p.OpacityMin + rng.Float64()*p.OpacitySpan,
		Phase:     rng.Float64() * 2 * math.Pi,
		PhaseRate: p.PhaseRateMin + rng.Float64()*p.PhaseRateSpan,
		Hue:       hue,
		Color:     colorful.Hsl(hue, p.Saturation, p.Lightness),
	}
}

// advance moves the particle one frame and wraps it into [0,w)×[0,h).
func (pt *Particle) advance(w, h float64) {
	pt.X = Wrap(pt.X+pt.DX, w)
	pt.Y = Wrap(pt.Y+pt.DY, h)
	pt.Phase += pt.PhaseRate
}

// Radius is the pulsing disc radius, never below minRadius.
func (pt *Particle) Radius(minRadius float64) float64 {
	return math.Max(minRadius, pt.Size+math.Sin(pt.Phase))
}

// Alpha is the pulsing outer alpha.
func (pt *Particle) Alpha() float64 {
	return pt.Opacity * (0.5 + 0.4*math.Sin(pt.Phase))
}

func (pt *Particle) draw(s surface.Surface, p *Params) {
	r := pt.Radius(p.MinRadius)
	s.FillCircle(pt.X, pt.Y, r, surface.Paint{
		Color: pt.Color,
		Alpha: pt.Alpha(),
		Blur:  p.GlowBlur,
	})
	s.FillCircle(pt.X, pt.Y, r*p.CoreScale, surface.Paint{
		Color: surface.White,
		Alpha: p.CoreAlpha,
	})
}

// Wrap maps v onto [0, limit) toroidally. A non-positive limit collapses to 0.
func Wrap(v, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	v = math.Mod(v, limit)
	if v < 0 {
		v += limit
	}
	// -ε + limit can round up to limit
	if v >= limit {
		v = 0
	}
	return v
}
