// Package export writes rendered frames to SVG.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/backdrop/internal/surface"
	"github.com/san-kum/backdrop/internal/viz"
)

// FrameToSVG converts the drawing calls of one frame to an SVG document.
// Paints with a blur get a Gaussian halo under the sharp shape.
func FrameToSVG(ops []surface.Op, width, height int, background string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, width, height, width, height))

	blurs := blurLevels(ops)
	if len(blurs) > 0 {
		sb.WriteString("<defs>\n")
		for _, b := range blurs {
			sb.WriteString(fmt.Sprintf(`<filter id="%s" x="-100%%" y="-100%%" width="300%%" height="300%%"><feGaussianBlur stdDeviation="%.1f"/></filter>
`, filterID(b), b/2))
		}
		sb.WriteString("</defs>\n")
	}
	sb.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>
`, background))

	for _, op := range ops {
		fill := op.Paint.Color.Clamped().Hex()
		switch op.Kind {
		case surface.OpCircle:
			if op.Paint.Blur > 0 {
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f" filter="url(#%s)"/>
`, op.X0, op.Y0, op.R, fill, op.Paint.Alpha, filterID(op.Paint.Blur)))
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, op.X0, op.Y0, op.R, fill, op.Paint.Alpha))
		case surface.OpLine:
			filter := ""
			if op.Paint.Blur > 0 {
				filter = fmt.Sprintf(` filter="url(#%s)"`, filterID(op.Paint.Blur))
				sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.1f"%s/>
`, op.X0, op.Y0, op.X1, op.Y1, fill, op.Paint.Alpha, op.Paint.Width+op.Paint.Blur, filter))
			}
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.1f"/>
`, op.X0, op.Y0, op.X1, op.Y1, fill, op.Paint.Alpha, op.Paint.Width))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func blurLevels(ops []surface.Op) []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, op := range ops {
		if b := op.Paint.Blur; b > 0 && !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	sort.Float64s(out)
	return out
}

func filterID(blur float64) string {
	return strings.ReplaceAll(fmt.Sprintf("blur-%g", blur), ".", "_")
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per dot in its
// cell color. Each sub-pixel becomes a scale×scale square.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}
	w, h := canvas.SubSize()
	width, height := float64(w)*scale, float64(h)*scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, canvas.Background.Clamped().Hex()))

	r := scale * 0.4
	canvas.EachDot(func(x, y int, clr colorful.Color) {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, (float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r, clr.Clamped().Hex()))
	})

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots values left to right as a polyline scaled to fit.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV, maxV = min(minV, v), max(maxV, v)
	}

	// Add padding
	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}
	minV -= rangeV * 0.1
	maxV += rangeV * 0.1
	rangeV = maxV - minV

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	step := float64(width) / float64(len(values)-1)
	for i, v := range values {
		x := float64(i) * step
		y := float64(height) - (v-minV)/rangeV*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
