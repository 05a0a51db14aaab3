// Package surface defines the drawing contract shared by every backdrop
// backend, plus an in-memory recorder used for headless runs.
package surface

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Surface is a resizable 2D drawing target measured in world pixels.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	Clear()
	FillCircle(x, y, r float64, p Paint)
	StrokeLine(x0, y0, x1, y1 float64, p Paint)
}

// Paint describes how a shape is filled or stroked.
type Paint struct {
	Color colorful.Color
	Alpha float64
	Width float64 // stroke width, lines only
	Blur  float64 // halo radius in world pixels; 0 draws a hard edge
}

// White is the core color of every particle.
var White = colorful.Color{R: 1, G: 1, B: 1}

// NRGBA converts the paint to a non-premultiplied color with its alpha applied.
func (p Paint) NRGBA() color.NRGBA {
	r, g, b := p.Color.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(p.Alpha) * 255))}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
