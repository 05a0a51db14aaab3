package field

import (
	"math"
	"time"
)

// LinkOpacity is the line alpha for two particles d apart: alpha at d=0,
// falling linearly to zero at maxDist and beyond.
func LinkOpacity(d, maxDist, alpha float64) float64 {
	if maxDist <= 0 || d >= maxDist {
		return 0
	}
	if d < 0 {
		d = 0
	}
	return (maxDist - d) / maxDist * alpha
}

// VisitLinks calls fn for every unordered pair i<j closer than maxDist and
// returns how many pairs it visited.
func VisitLinks(ps []Particle, maxDist float64, fn func(i, j int, d float64)) int {
	limit := maxDist * maxDist
	n := 0
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			dx := ps[i].X - ps[j].X
			dy := ps[i].Y - ps[j].Y
			d2 := dx*dx + dy*dy
			if d2 >= limit {
				continue
			}
			if fn != nil {
				fn(i, j, math.Sqrt(d2))
			}
			n++
		}
	}
	return n
}

// LinkHue is the line hue at wall-clock time now. It swings around
// LinkHueBase once per LinkHuePeriod regardless of frame rate.
func LinkHue(now time.Time, p Params) float64 {
	period := int64(p.LinkHuePeriod)
	if period <= 0 {
		return p.LinkHueBase
	}
	phase := float64(now.UnixNano()%period) / float64(period)
	return p.LinkHueBase + p.LinkHueSwing*math.Sin(2*math.Pi*phase)
}
