package field

import (
	"fmt"
	"math"
	"time"
)

// MaxParticles caps the particle count. The link pass is quadratic.
const MaxParticles = 500

const (
	DefaultCount        = 60
	DefaultLinkDistance = 120.0

	// DefaultLinkHuePeriod is 2π seconds, rounded to the nanosecond.
	DefaultLinkHuePeriod = 6283185307 * time.Nanosecond
)

// Params tunes particle generation and rendering. Ranges are expressed as a
// minimum plus a span: values are drawn uniformly from [Min, Min+Span).
type Params struct {
	Count int

	MaxSpeed      float64 // velocity per axis is drawn from [-MaxSpeed, MaxSpeed)
	SizeMin       float64
	SizeSpan      float64
	OpacityMin    float64
	OpacitySpan   float64
	PhaseRateMin  float64
	PhaseRateSpan float64
	HueMin        float64
	HueSpan       float64
	Saturation    float64
	Lightness     float64

	MinRadius float64
	GlowBlur  float64
	CoreScale float64
	CoreAlpha float64

	LinkDistance   float64
	LinkAlpha      float64
	LinkWidth      float64
	LinkBlur       float64
	LinkHueBase    float64
	LinkHueSwing   float64
	LinkHuePeriod  time.Duration
	LinkSaturation float64
	LinkLightness  float64
}

func DefaultParams() Params {
	return Params{
		Count:          DefaultCount,
		MaxSpeed:       0.75,
		SizeMin:        1,
		SizeSpan:       3,
		OpacityMin:     0.3,
		OpacitySpan:    0.6,
		PhaseRateMin:   0.01,
		PhaseRateSpan:  0.02,
		HueMin:         200,
		HueSpan:        60,
		Saturation:     0.7,
		Lightness:      0.7,
		MinRadius:      0.8,
		GlowBlur:       15,
		CoreScale:      0.3,
		CoreAlpha:      1,
		LinkDistance:   DefaultLinkDistance,
		LinkAlpha:      0.3,
		LinkWidth:      1.5,
		LinkBlur:       5,
		LinkHueBase:    220,
		LinkHueSwing:   40,
		LinkHuePeriod:  DefaultLinkHuePeriod,
		LinkSaturation: 0.7,
		LinkLightness:  0.8,
	}
}

func (p Params) Validate() error {
	if p.Count > MaxParticles {
		return fmt.Errorf("%w: %d > %d", ErrTooManyParticles, p.Count, MaxParticles)
	}
	if p.Count < 1 {
		return fmt.Errorf("%w: count %d", ErrParameterBounds, p.Count)
	}
	if p.LinkDistance <= 0 {
		return fmt.Errorf("%w: link distance %.2f", ErrParameterBounds, p.LinkDistance)
	}
	if p.LinkHuePeriod <= 0 {
		return fmt.Errorf("%w: link hue period %v", ErrParameterBounds, p.LinkHuePeriod)
	}

	nonNegative := map[string]float64{
		"max speed":       p.MaxSpeed,
		"size min":        p.SizeMin,
		"size span":       p.SizeSpan,
		"opacity span":    p.OpacitySpan,
		"phase rate span": p.PhaseRateSpan,
		"hue span":        p.HueSpan,
		"min radius":      p.MinRadius,
		"glow blur":       p.GlowBlur,
		"core scale":      p.CoreScale,
		"link width":      p.LinkWidth,
		"link blur":       p.LinkBlur,
	}
	for name, v := range nonNegative {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s %.4f", ErrParameterBounds, name, v)
		}
	}

	unit := map[string]float64{
		"opacity min":     p.OpacityMin,
		"opacity max":     p.OpacityMin + p.OpacitySpan,
		"saturation":      p.Saturation,
		"lightness":       p.Lightness,
		"core alpha":      p.CoreAlpha,
		"link alpha":      p.LinkAlpha,
		"link saturation": p.LinkSaturation,
		"link lightness":  p.LinkLightness,
	}
	for name, v := range unit {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s %.4f not in [0,1]", ErrParameterBounds, name, v)
		}
	}
	return nil
}
