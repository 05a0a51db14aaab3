package gui

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/backdrop/internal/surface"
)

// ErrNoWindow is returned while the raylib window is not open.
var ErrNoWindow = errors.New("gui: window not ready")

// glowFalloff widens a glow texture so its soft edge covers the blur radius.
const glowFalloff = 1.0

// Surface draws immediate-mode into the current raylib frame. It must only be
// used between BeginDrawing and EndDrawing.
type Surface struct {
	w, h int
	bg   rl.Color
	glow rl.Texture2D
}

func NewSurface(bg rl.Color, glow rl.Texture2D) *Surface {
	return &Surface{bg: bg, glow: glow}
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Resize(w, h int) { s.w, s.h = w, h }

func (s *Surface) Clear() { rl.ClearBackground(s.bg) }

func (s *Surface) FillCircle(x, y, r float64, p surface.Paint) {
	c := toColor(p)
	if p.Blur > 0 && s.glow.ID != 0 {
		d := glowDiameter(r, p.Blur)
		src := rl.NewRectangle(0, 0, float32(s.glow.Width), float32(s.glow.Height))
		dst := rl.NewRectangle(float32(x), float32(y), d, d)
		rl.DrawTexturePro(s.glow, src, dst, rl.NewVector2(d/2, d/2), 0, c)
	}
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), c)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64, p surface.Paint) {
	a, b := rl.NewVector2(float32(x0), float32(y0)), rl.NewVector2(float32(x1), float32(y1))
	c := toColor(p)
	if p.Blur > 0 {
		halo := p
		halo.Alpha *= 0.25
		rl.DrawLineEx(a, b, float32(p.Width+p.Blur), toColor(halo))
	}
	rl.DrawLineEx(a, b, float32(max(p.Width, 1)), c)
}

func toColor(p surface.Paint) rl.Color {
	n := p.NRGBA()
	return rl.NewColor(n.R, n.G, n.B, n.A)
}

func glowDiameter(r, blur float64) float32 {
	return float32(2 * (r + blur*glowFalloff))
}

// Host exposes the raylib window as a field host.
type Host struct {
	surface   *Surface
	listeners map[int]func(w, h int)
	nextID    int
}

func NewHost(s *Surface) *Host {
	return &Host{surface: s, listeners: make(map[int]func(int, int))}
}

func (h *Host) Surface() (surface.Surface, error) {
	if !rl.IsWindowReady() {
		return nil, ErrNoWindow
	}
	return h.surface, nil
}

func (h *Host) Viewport() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

func (h *Host) OnResize(fn func(w, hgt int)) func() {
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() { delete(h.listeners, id) }
}

// poll fires resize listeners when raylib reports a window resize.
func (h *Host) poll() {
	if !rl.IsWindowResized() {
		return
	}
	w, hgt := h.Viewport()
	for _, fn := range h.listeners {
		fn(w, hgt)
	}
}
