package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/backdrop/internal/field"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS      = 60
	DefaultTheme    = "midnight"
	DefaultCellW    = 8
	DefaultCellH    = 16
	DefaultGIFPath  = "backdrop.gif"
	DefaultLogPath  = "backdrop.log"
	DefaultWidth    = 1280
	DefaultHeight   = 720
	MaxFPS          = 240
	DefaultSnapshot = 120
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Seed   int64        `yaml:"seed"`
	Debug  bool         `yaml:"debug"`
	Field  FieldConfig  `yaml:"field"`
	Render RenderConfig `yaml:"render"`
}

type FieldConfig struct {
	Count         int     `yaml:"count"`
	MaxSpeed      float64 `yaml:"max_speed"`
	SizeMin       float64 `yaml:"size_min"`
	SizeMax       float64 `yaml:"size_max"`
	OpacityMin    float64 `yaml:"opacity_min"`
	OpacityMax    float64 `yaml:"opacity_max"`
	HueMin        float64 `yaml:"hue_min"`
	HueMax        float64 `yaml:"hue_max"`
	GlowBlur      float64 `yaml:"glow_blur"`
	CoreAlpha     float64 `yaml:"core_alpha"`
	LinkDistance  float64 `yaml:"link_distance"`
	LinkAlpha     float64 `yaml:"link_alpha"`
	LinkWidth     float64 `yaml:"link_width"`
	LinkHueBase   float64 `yaml:"link_hue_base"`
	LinkHueSwing  float64 `yaml:"link_hue_swing"`
	LinkHuePeriod float64 `yaml:"link_hue_period"` // seconds
}

type RenderConfig struct {
	FPS     int    `yaml:"fps"`
	Theme   string `yaml:"theme"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	CellW   int    `yaml:"cell_width"`
	CellH   int    `yaml:"cell_height"`
	GIFPath string `yaml:"gif_path"`
	LogPath string `yaml:"log_path"`
}

func DefaultConfig() *Config {
	p := field.DefaultParams()
	return &Config{
		Field: FieldConfig{
			Count:         p.Count,
			MaxSpeed:      p.MaxSpeed,
			SizeMin:       p.SizeMin,
			SizeMax:       p.SizeMin + p.SizeSpan,
			OpacityMin:    p.OpacityMin,
			OpacityMax:    p.OpacityMin + p.OpacitySpan,
			HueMin:        p.HueMin,
			HueMax:        p.HueMin + p.HueSpan,
			GlowBlur:      p.GlowBlur,
			CoreAlpha:     p.CoreAlpha,
			LinkDistance:  p.LinkDistance,
			LinkAlpha:     p.LinkAlpha,
			LinkWidth:     p.LinkWidth,
			LinkHueBase:   p.LinkHueBase,
			LinkHueSwing:  p.LinkHueSwing,
			LinkHuePeriod: p.LinkHuePeriod.Seconds(),
		},
		Render: RenderConfig{
			FPS:     DefaultFPS,
			Theme:   DefaultTheme,
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			CellW:   DefaultCellW,
			CellH:   DefaultCellH,
			GIFPath: DefaultGIFPath,
			LogPath: DefaultLogPath,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the field section into field parameters. Fields not exposed
// in the file keep their defaults.
func (c *Config) Params() field.Params {
	p := field.DefaultParams()
	f := c.Field
	p.Count = f.Count
	p.MaxSpeed = f.MaxSpeed
	p.SizeMin, p.SizeSpan = f.SizeMin, f.SizeMax-f.SizeMin
	p.OpacityMin, p.OpacitySpan = f.OpacityMin, f.OpacityMax-f.OpacityMin
	p.HueMin, p.HueSpan = f.HueMin, f.HueMax-f.HueMin
	p.GlowBlur = f.GlowBlur
	p.CoreAlpha = f.CoreAlpha
	p.LinkDistance = f.LinkDistance
	p.LinkAlpha = f.LinkAlpha
	p.LinkWidth = f.LinkWidth
	p.LinkHueBase = f.LinkHueBase
	p.LinkHueSwing = f.LinkHueSwing
	p.LinkHuePeriod = time.Duration(f.LinkHuePeriod * float64(time.Second))
	return p
}

// FrameInterval is the tick period for loops that are not vsync-driven.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Render.FPS)
}

func (c *Config) Validate() error {
	if c.Render.FPS < 1 || c.Render.FPS > MaxFPS {
		return fmt.Errorf("%w: fps %d not in [1,%d]", ErrInvalid, c.Render.FPS, MaxFPS)
	}
	if c.Render.Width < 1 || c.Render.Height < 1 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Render.Width, c.Render.Height)
	}
	if c.Render.CellW < 2 || c.Render.CellH < 4 {
		return fmt.Errorf("%w: cell %dx%d", ErrInvalid, c.Render.CellW, c.Render.CellH)
	}
	return c.Params().Validate()
}
