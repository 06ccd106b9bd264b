package config

import "sort"

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"storm": preset(func(c *Config) {
		c.Render.SpawnProbability = 0.12
		c.Render.BoltLifeMin = 40
		c.Render.BoltLifeMax = 120
		c.Render.FadeAlpha = 0.15
		c.Thunder = true
	}),
	"drizzle": preset(func(c *Config) {
		c.Render.SpeedMin = 0.5
		c.Render.SpeedMax = 1.5
		c.Render.TextLenMin = 5
		c.Render.TextLenMax = 15
		c.Render.SpawnProbability = 0
		c.Render.FadeAlpha = 0.05
		c.Theme = "ice"
	}),
	"torrent": preset(func(c *Config) {
		c.Render.SpeedMin = 4
		c.Render.SpeedMax = 10
		c.Render.TextLenMin = 20
		c.Render.TextLenMax = 45
		c.Render.FlashIntervalMin = 20
		c.Render.FlashIntervalMax = 80
		c.Render.SpawnProbability = 0.05
	}),
}

func preset(apply func(*Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
