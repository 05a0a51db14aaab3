package viz

import (
	"errors"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/backdrop/internal/surface"
)

// ErrNoTerminalSize is returned until the terminal has reported its size.
var ErrNoTerminalSize = errors.New("viz: terminal size unknown")

// BrailleSurface draws world-pixel shapes onto a Canvas. One cell covers
// cellW×cellH world pixels, so a sub-pixel covers cellW/2 × cellH/4.
// Blur and stroke width have no terminal equivalent and are ignored.
type BrailleSurface struct {
	canvas       *Canvas
	cellW, cellH int

	spotX, spotY float64
	spotR        float64
	spotOn       bool
}

func NewBrailleSurface(cellW, cellH int) *BrailleSurface {
	return &BrailleSurface{canvas: NewCanvas(0, 0), cellW: cellW, cellH: cellH}
}

func (s *BrailleSurface) Canvas() *Canvas { return s.canvas }

func (s *BrailleSurface) Size() (int, int) {
	return s.canvas.Width * s.cellW, s.canvas.Height * s.cellH
}

// Resize rounds the world size down to whole cells.
func (s *BrailleSurface) Resize(w, h int) {
	cols, rows := w/s.cellW, h/s.cellH
	if cols == s.canvas.Width && rows == s.canvas.Height {
		return
	}
	s.canvas.Resize(cols, rows)
}

func (s *BrailleSurface) Clear() {
	s.canvas.Clear()
	if s.spotOn {
		s.paintSpotlight()
	}
}

func (s *BrailleSurface) sub(x, y float64) (float64, float64) {
	return x / (float64(s.cellW) / 2), y / (float64(s.cellH) / 4)
}

func (s *BrailleSurface) FillCircle(x, y, r float64, p surface.Paint) {
	cx, cy := s.sub(x, y)
	rs := r / (float64(s.cellW) / 2)
	if rs < 0.75 {
		s.canvas.Plot(int(cx), int(cy), p.Color, p.Alpha)
		return
	}
	for py := int(cy - rs); py <= int(cy+rs); py++ {
		for px := int(cx - rs); px <= int(cx+rs); px++ {
			dx, dy := float64(px)+0.5-cx, float64(py)+0.5-cy
			if dx*dx+dy*dy <= rs*rs {
				s.canvas.Plot(px, py, p.Color, p.Alpha)
			}
		}
	}
}

func (s *BrailleSurface) StrokeLine(x0, y0, x1, y1 float64, p surface.Paint) {
	ax, ay := s.sub(x0, y0)
	bx, by := s.sub(x1, y1)
	s.canvas.PlotLine(int(ax), int(ay), int(bx), int(by), p.Color, p.Alpha)
}

// SetTheme sets the colors dots are composited over and the spotlight color.
func (s *BrailleSurface) SetTheme(bg, spot colorful.Color) {
	s.canvas.Background = bg
	s.canvas.TintColor = spot
}

// Spotlight tints the background around world point (x, y) from the next Clear on.
func (s *BrailleSurface) Spotlight(x, y, radius float64) {
	s.spotX, s.spotY, s.spotR = x, y, radius
	s.spotOn = radius > 0
}

func (s *BrailleSurface) paintSpotlight() {
	cw, ch := float64(s.cellW), float64(s.cellH)
	for row := 0; row < s.canvas.Height; row++ {
		for col := 0; col < s.canvas.Width; col++ {
			dx := (float64(col)+0.5)*cw - s.spotX
			dy := (float64(row)+0.5)*ch - s.spotY
			d := math.Hypot(dx, dy)
			if d >= s.spotR {
				continue
			}
			// 20% at the center, fading out at the radius
			amount := 0.2 * (1 - d/s.spotR)
			s.canvas.Tint(col, row, math.Round(amount*20)/20)
		}
	}
}

// TermHost exposes a BrailleSurface as a field host sized in terminal cells.
type TermHost struct {
	surface    *BrailleSurface
	cols, rows int
	listeners  map[int]func(w, h int)
	nextID     int
}

func NewTermHost(s *BrailleSurface) *TermHost {
	return &TermHost{surface: s, listeners: make(map[int]func(int, int))}
}

func (h *TermHost) Surface() (surface.Surface, error) {
	if h.cols <= 0 || h.rows <= 0 {
		return nil, ErrNoTerminalSize
	}
	return h.surface, nil
}

func (h *TermHost) Viewport() (int, int) {
	return h.cols * h.surface.cellW, h.rows * h.surface.cellH
}

func (h *TermHost) OnResize(fn func(w, hgt int)) func() {
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() { delete(h.listeners, id) }
}

// SetCells updates the canvas area in cells and notifies resize listeners.
func (h *TermHost) SetCells(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	if cols == h.cols && rows == h.rows {
		return
	}
	h.cols, h.rows = cols, rows
	w, hgt := h.Viewport()
	for _, fn := range h.listeners {
		fn(w, hgt)
	}
}

func (h *TermHost) Cells() (int, int) { return h.cols, h.rows }
