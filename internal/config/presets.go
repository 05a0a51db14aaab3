package config

import "sort"

// Presets holds named variations of the field section.
var Presets = map[string]func(*Config){
	"landing": func(c *Config) {},
	"calm": func(c *Config) {
		c.Field.Count = 35
		c.Field.MaxSpeed = 0.3
		c.Field.LinkAlpha = 0.2
		c.Field.LinkHuePeriod = 20
	},
	"dense": func(c *Config) {
		c.Field.Count = 160
		c.Field.LinkDistance = 90
		c.Field.LinkAlpha = 0.2
	},
	"constellation": func(c *Config) {
		c.Field.Count = 90
		c.Field.MaxSpeed = 0.15
		c.Field.SizeMin, c.Field.SizeMax = 0.5, 2
		c.Field.LinkDistance = 150
		c.Field.LinkAlpha = 0.4
	},
	"warm": func(c *Config) {
		c.Field.HueMin, c.Field.HueMax = 10, 50
		c.Field.LinkHueBase = 30
		c.Field.LinkHueSwing = 20
	},
}

// GetPreset returns the default config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// Apply overlays the named preset onto cfg.
func (c *Config) Apply(name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(c)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
