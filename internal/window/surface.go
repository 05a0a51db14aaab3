package window

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/backdrop/internal/surface"
)

// ErrNoLayout is returned until ebiten has reported the window size.
var ErrNoLayout = errors.New("window: layout not known")

const glowSize = 64

// Surface draws into an offscreen image that Draw copies to the screen.
// The image is allocated lazily so sizing never touches the GPU.
type Surface struct {
	w, h int
	bg   color.Color
	img  *ebiten.Image
	glow *ebiten.Image
}

func NewSurface(bg color.Color) *Surface {
	return &Surface{bg: bg}
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Resize(w, h int) {
	if w == s.w && h == s.h {
		return
	}
	s.w, s.h = w, h
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}

// Image returns the offscreen target, or nil if the surface is empty.
func (s *Surface) Image() *ebiten.Image {
	if s.img == nil && s.w > 0 && s.h > 0 {
		s.img = ebiten.NewImage(s.w, s.h)
	}
	return s.img
}

func (s *Surface) Clear() {
	if img := s.Image(); img != nil {
		img.Fill(s.bg)
	}
}

func (s *Surface) FillCircle(x, y, r float64, p surface.Paint) {
	img := s.Image()
	if img == nil {
		return
	}
	c := p.NRGBA()
	if p.Blur > 0 {
		if s.glow == nil {
			s.glow = ebiten.NewImageFromImage(radialGradient(glowSize, color.White))
		}
		d := 2 * (r + p.Blur)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(d/glowSize, d/glowSize)
		op.GeoM.Translate(x-d/2, y-d/2)
		op.ColorScale.ScaleWithColor(c)
		op.Blend = ebiten.BlendLighter
		img.DrawImage(s.glow, op)
	}
	vector.DrawFilledCircle(img, float32(x), float32(y), float32(r), c, true)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64, p surface.Paint) {
	img := s.Image()
	if img == nil {
		return
	}
	if p.Blur > 0 {
		halo := p
		halo.Alpha *= 0.25
		vector.StrokeLine(img, float32(x0), float32(y0), float32(x1), float32(y1), float32(p.Width+p.Blur), halo.NRGBA(), true)
	}
	vector.StrokeLine(img, float32(x0), float32(y0), float32(x1), float32(y1), float32(p.Width), p.NRGBA(), true)
}

// radialGradient renders a size×size disc of c fading linearly to transparent
// at the edge.
func radialGradient(size int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r, g, b, _ := c.RGBA()
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-half, float64(y)+0.5-half) / half
			a := math.Max(0, 1-d)
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a * 255)})
		}
	}
	return img
}

// Host exposes the ebiten window as a field host. Its viewport follows Layout.
type Host struct {
	surface   *Surface
	w, h      int
	listeners map[int]func(w, h int)
	nextID    int
}

func NewHost(s *Surface) *Host {
	return &Host{surface: s, listeners: make(map[int]func(int, int))}
}

func (h *Host) Surface() (surface.Surface, error) {
	if h.w <= 0 || h.h <= 0 {
		return nil, ErrNoLayout
	}
	return h.surface, nil
}

func (h *Host) Viewport() (int, int) { return h.w, h.h }

func (h *Host) OnResize(fn func(w, hgt int)) func() {
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() { delete(h.listeners, id) }
}

// layout records the outside size and notifies listeners when it changes.
func (h *Host) layout(w, hgt int) {
	if w == h.w && hgt == h.h {
		return
	}
	h.w, h.h = w, hgt
	for _, fn := range h.listeners {
		fn(w, hgt)
	}
}
